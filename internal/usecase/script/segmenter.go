package script

import (
	"regexp"
	"strings"

	"github.com/rafsal3/VideoGen-MVP-backend/internal/domain/entities"
)

// Sentence boundary: terminal punctuation followed by whitespace
var sentenceBoundary = regexp.MustCompile(`([.!?])\s+`)

// SplitSentences splits free text into sentences on terminal punctuation
// followed by whitespace, trimming each piece and dropping empties. When no
// boundary exists the whole normalized input is returned as one sentence.
func SplitSentences(text string) []string {
	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return nil
	}

	marked := sentenceBoundary.ReplaceAllString(normalized, "$1\x1f")
	parts := strings.Split(marked, "\x1f")

	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// buildSegments assigns dense 0-based indices in narration order
func buildSegments(sentences []string) []entities.ScriptSegment {
	segments := make([]entities.ScriptSegment, 0, len(sentences))
	for _, s := range sentences {
		segments = append(segments, entities.ScriptSegment{
			Index: len(segments),
			Text:  s,
		})
	}
	return segments
}
