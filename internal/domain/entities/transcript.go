package entities

// WordTimestamp represents a single word with time offsets in seconds
type WordTimestamp struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// TranscriptRecord is the per-segment transcription result.
// A record either carries Text/Words or an Error message.
type TranscriptRecord struct {
	SegmentIndex int             `json:"segment_index"`
	SourceText   string          `json:"source_text"`
	Text         string          `json:"text,omitempty"`
	Words        []WordTimestamp `json:"words,omitempty"`
	Error        string          `json:"error,omitempty"`
}

// Failed reports whether transcription failed for this segment
func (r TranscriptRecord) Failed() bool {
	return r.Error != ""
}

// TranscriptBatch aggregates per-segment transcription results.
// Succeeded <= Total == len(Records) always holds.
type TranscriptBatch struct {
	Records   []TranscriptRecord `json:"records"`
	Total     int                `json:"total"`
	Succeeded int                `json:"succeeded"`
}
