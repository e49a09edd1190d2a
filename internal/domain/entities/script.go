package entities

// Script is the structured output of script generation
type Script struct {
	OriginalText  string   `json:"original_text"`
	Sentences     []string `json:"sentences"`
	SentenceCount int      `json:"sentence_count"`
}

// ScriptSegment is one sentence-sized unit of narration.
// Indices are 0-based, dense and strictly increasing across a script.
type ScriptSegment struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// NewScript builds a Script from a full text body and its sentences
func NewScript(text string, sentences []string) *Script {
	return &Script{
		OriginalText:  text,
		Sentences:     sentences,
		SentenceCount: len(sentences),
	}
}
