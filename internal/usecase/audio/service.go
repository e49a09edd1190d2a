package audio

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/rafsal3/VideoGen-MVP-backend/internal/domain/entities"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/infrastructure/media"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/infrastructure/storage"
)

// Synthesizer is the speech synthesis collaborator
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, w io.Writer) error
}

// Service drives script segments through audio synthesis
type Service interface {
	SynthesizeBatch(ctx context.Context, runID string, segments []entities.ScriptSegment) []entities.AudioSegment
}

type audioService struct {
	tts    Synthesizer
	prober media.Prober
	store  *storage.LocalStore
	logger *zap.Logger
}

// NewService constructs an audio service
func NewService(tts Synthesizer, prober media.Prober, store *storage.LocalStore, logger *zap.Logger) Service {
	return &audioService{tts: tts, prober: prober, store: store, logger: logger}
}

// SynthesizeBatch synthesizes one audio artifact per segment, in segment
// order. A collaborator failure is recorded on its segment and never aborts
// the batch: the result always has exactly one entry per input, same order,
// same indices.
func (s *audioService) SynthesizeBatch(ctx context.Context, runID string, segments []entities.ScriptSegment) []entities.AudioSegment {
	results := make([]entities.AudioSegment, 0, len(segments))

	for _, seg := range segments {
		if err := ctx.Err(); err != nil {
			results = append(results, entities.NewAudioFailure(seg.Index, seg.Text, err))
			continue
		}
		results = append(results, s.synthesizeOne(ctx, runID, seg))
	}
	return results
}

func (s *audioService) synthesizeOne(ctx context.Context, runID string, seg entities.ScriptSegment) entities.AudioSegment {
	path := s.store.AudioPath(runID, seg.Index)

	f, err := os.Create(path)
	if err != nil {
		return entities.NewAudioFailure(seg.Index, seg.Text, fmt.Errorf("failed to create artifact: %w", err))
	}

	err = s.tts.Synthesize(ctx, seg.Text, f)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		if s.logger != nil {
			s.logger.Warn("audio synthesis failed",
				zap.String("run_id", runID),
				zap.Int("segment_index", seg.Index),
				zap.Error(err),
			)
		}
		return entities.NewAudioFailure(seg.Index, seg.Text, err)
	}

	// The artifact itself is the authoritative duration source
	probe, err := s.prober.Probe(ctx, path)
	if err != nil {
		os.Remove(path)
		return entities.NewAudioFailure(seg.Index, seg.Text, fmt.Errorf("unplayable artifact: %w", err))
	}

	if s.logger != nil {
		s.logger.Info("audio segment synthesized",
			zap.String("run_id", runID),
			zap.Int("segment_index", seg.Index),
			zap.Float64("duration_seconds", probe.Duration),
		)
	}

	return entities.AudioSegment{
		SegmentIndex: seg.Index,
		SourceText:   seg.Text,
		FilePath:     path,
		AudioURL:     s.store.PublicURL(path),
		Duration:     probe.Duration,
	}
}
