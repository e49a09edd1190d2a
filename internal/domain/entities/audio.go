package entities

// AudioSegment is the per-segment result of speech synthesis.
// A segment either carries a playable artifact (FilePath/AudioURL/Duration)
// or an Error message; batches may contain a mix of both.
type AudioSegment struct {
	SegmentIndex int     `json:"segment_index"`
	SourceText   string  `json:"source_text"`
	AudioURL     string  `json:"audio_url,omitempty"`
	FilePath     string  `json:"audio_file_path,omitempty"`
	Duration     float64 `json:"duration_seconds,omitempty"`
	Error        string  `json:"error,omitempty"`
}

// Failed reports whether synthesis failed for this segment
func (a AudioSegment) Failed() bool {
	return a.Error != ""
}

// NewAudioFailure records a per-segment synthesis failure
func NewAudioFailure(index int, text string, err error) AudioSegment {
	return AudioSegment{
		SegmentIndex: index,
		SourceText:   text,
		Error:        err.Error(),
	}
}
