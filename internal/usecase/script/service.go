package script

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rafsal3/VideoGen-MVP-backend/internal/domain/entities"
)

// Generator is the script generation collaborator
type Generator interface {
	GenerateScript(ctx context.Context, text string) (string, error)
}

// Service defines script generation and segmentation
type Service interface {
	Generate(ctx context.Context, text string) (*entities.Script, error)
	Segment(script *entities.Script) []entities.ScriptSegment
}

type scriptService struct {
	generator Generator
	logger    *zap.Logger
}

// NewService constructs a script service
func NewService(generator Generator, logger *zap.Logger) Service {
	return &scriptService{generator: generator, logger: logger}
}

// Generate asks the collaborator for a narration script and splits it into
// sentences. An unavailable or empty upstream is fatal to the run.
func (s *scriptService) Generate(ctx context.Context, text string) (*entities.Script, error) {
	raw, err := s.generator.GenerateScript(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("script generation failed: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("script generation returned empty text")
	}

	sentences := SplitSentences(raw)
	if s.logger != nil {
		s.logger.Info("script generated",
			zap.Int("sentence_count", len(sentences)),
		)
	}
	return entities.NewScript(raw, sentences), nil
}

// Segment turns a script into ordered sentence segments. The structured
// sentence list takes precedence; free text is split heuristically. The
// worst case is a single segment carrying the whole body. Segment never
// produces empty-string entries.
func (s *scriptService) Segment(script *entities.Script) []entities.ScriptSegment {
	if script == nil {
		return nil
	}

	sentences := make([]string, 0, len(script.Sentences))
	for _, sentence := range script.Sentences {
		if sentence = strings.TrimSpace(sentence); sentence != "" {
			sentences = append(sentences, sentence)
		}
	}

	if len(sentences) == 0 {
		sentences = SplitSentences(script.OriginalText)
	}
	return buildSegments(sentences)
}
