package pipeline

// ScriptRequest asks for narration script generation
type ScriptRequest struct {
	Text      string `json:"text" validate:"required"`
	RequestID string `json:"request_id"`
}

// ScriptPayload carries a script between stage endpoints. Sentences take
// precedence when present; Text is split server-side otherwise.
type ScriptPayload struct {
	OriginalText string   `json:"original_text"`
	Sentences    []string `json:"sentences"`
	Text         string   `json:"text"`
}

// AudioRequest asks for per-segment speech synthesis
type AudioRequest struct {
	Script    ScriptPayload `json:"script"`
	RequestID string        `json:"request_id"`
}

// AssetsRequest asks for keyword extraction and image resolution
type AssetsRequest struct {
	Script    ScriptPayload `json:"script"`
	RequestID string        `json:"request_id"`
}

// AudioSegmentPayload references one synthesized segment by artifact path
type AudioSegmentPayload struct {
	SegmentIndex int     `json:"segment_index"`
	SourceText   string  `json:"source_text"`
	FilePath     string  `json:"file_path"`
	Duration     float64 `json:"duration"`
	Error        string  `json:"error,omitempty"`
}

// AssetPayload references one resolved visual by artifact path
type AssetPayload struct {
	OrderID  int    `json:"order_id"`
	Keyword  string `json:"keyword"`
	FilePath string `json:"file_path"`
}

// TranscriptRequest asks for word-level transcription of audio segments
type TranscriptRequest struct {
	Audio     []AudioSegmentPayload `json:"audio" validate:"required,min=1"`
	RequestID string                `json:"request_id"`
}

// MixRequest asks for final video assembly
type MixRequest struct {
	Audio     []AudioSegmentPayload `json:"audio" validate:"required,min=1"`
	Assets    []AssetPayload        `json:"assets"`
	RequestID string                `json:"request_id"`
}

// AutopilotRequest drives the full pipeline from input text
type AutopilotRequest struct {
	Text      string `json:"text" validate:"required"`
	RequestID string `json:"request_id"`
}
