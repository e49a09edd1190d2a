package entities

// VideoResult references one rendered output artifact
type VideoResult struct {
	VideoID   string  `json:"video_id"`
	FilePath  string  `json:"file_path"`
	URL       string  `json:"video_url"`
	ClipCount int     `json:"clip_count"`
	Duration  float64 `json:"duration_seconds"`
}
