package transcript

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/rafsal3/VideoGen-MVP-backend/internal/domain/entities"
	"github.com/rafsal3/VideoGen-MVP-backend/pkg/ai"
)

// Transcriber is the speech-to-text collaborator
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*ai.TranscriptionResult, error)
}

// Service produces word-level transcripts for synthesized audio segments
type Service interface {
	TranscribeAll(ctx context.Context, segments []entities.AudioSegment) *entities.TranscriptBatch
}

type transcriptService struct {
	transcriber Transcriber
	logger      *zap.Logger
}

// NewService constructs a transcript service
func NewService(transcriber Transcriber, logger *zap.Logger) Service {
	return &transcriptService{transcriber: transcriber, logger: logger}
}

// TranscribeAll transcribes every usable audio segment. Segments that
// already failed synthesis, or whose artifact is missing on disk, are
// recorded as failures without a collaborator call. The batch always
// carries one record per input in the same order.
func (s *transcriptService) TranscribeAll(ctx context.Context, segments []entities.AudioSegment) *entities.TranscriptBatch {
	batch := &entities.TranscriptBatch{
		Records: make([]entities.TranscriptRecord, 0, len(segments)),
		Total:   len(segments),
	}

	for _, seg := range segments {
		record := s.transcribeOne(ctx, seg)
		if !record.Failed() {
			batch.Succeeded++
		}
		batch.Records = append(batch.Records, record)
	}

	if s.logger != nil {
		s.logger.Info("transcription batch completed",
			zap.Int("total", batch.Total),
			zap.Int("succeeded", batch.Succeeded),
		)
	}
	return batch
}

func (s *transcriptService) transcribeOne(ctx context.Context, seg entities.AudioSegment) entities.TranscriptRecord {
	record := entities.TranscriptRecord{
		SegmentIndex: seg.SegmentIndex,
		SourceText:   seg.SourceText,
	}

	if seg.Failed() {
		record.Error = fmt.Sprintf("segment has no audio: %s", seg.Error)
		return record
	}
	if seg.FilePath == "" {
		record.Error = "segment has no audio artifact"
		return record
	}
	if _, err := os.Stat(seg.FilePath); err != nil {
		record.Error = fmt.Sprintf("audio artifact unreadable: %v", err)
		return record
	}

	result, err := s.transcriber.Transcribe(ctx, seg.FilePath)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("transcription failed",
				zap.Int("segment_index", seg.SegmentIndex),
				zap.Error(err),
			)
		}
		record.Error = err.Error()
		return record
	}

	record.Text = result.Text
	record.Words = make([]entities.WordTimestamp, 0, len(result.Words))
	for _, w := range result.Words {
		record.Words = append(record.Words, entities.WordTimestamp{
			Word:  w.Word,
			Start: w.Start,
			End:   w.End,
		})
	}
	return record
}
