package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rafsal3/VideoGen-MVP-backend/internal/domain/entities"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/infrastructure/cache"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/usecase/assets"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/usecase/audio"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/usecase/script"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/usecase/transcript"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/usecase/video"
	"github.com/rafsal3/VideoGen-MVP-backend/pkg/runcontext"
)

// Service orchestrates the full text-to-video pipeline
type Service interface {
	RunAutopilot(ctx context.Context, text, runID string) (*entities.Run, error)
}

type pipelineService struct {
	scripts     script.Service
	audio       audio.Service
	assets      assets.Service
	transcripts transcript.Service
	video       video.Service
	runs        *cache.RunStore
	timeout     time.Duration
	logger      *zap.Logger
}

// NewService constructs the pipeline orchestrator
func NewService(
	scripts script.Service,
	audioSvc audio.Service,
	assetSvc assets.Service,
	transcripts transcript.Service,
	videoSvc video.Service,
	runs *cache.RunStore,
	timeout time.Duration,
	logger *zap.Logger,
) Service {
	return &pipelineService{
		scripts:     scripts,
		audio:       audioSvc,
		assets:      assetSvc,
		transcripts: transcripts,
		video:       videoSvc,
		runs:        runs,
		timeout:     timeout,
		logger:      logger,
	}
}

// RunAutopilot drives one run end to end: script generation, then audio
// synthesis and asset resolution in parallel, then transcription, then
// assembly. Script generation and assembly are the only fatal stages;
// everything between degrades per segment. The returned Run carries every
// intermediate artifact even on failure.
func (s *pipelineService) RunAutopilot(parentCtx context.Context, text, runID string) (*entities.Run, error) {
	run := entities.NewRun(runID)
	s.runs.Put(run)

	ctx, cancel := runcontext.RunBegin(parentCtx, run.ID, s.timeout)
	defer cancel()

	if s.logger != nil {
		s.logger.Info("autopilot started", zap.String("run_id", run.ID))
	}

	generated, err := s.scripts.Generate(runcontext.WithStage(ctx, "script"), text)
	if err != nil {
		run.Fail(err)
		s.runs.Put(run)
		return run, fmt.Errorf("run %s: %w", run.ID, err)
	}
	run.Script = generated
	run.Segments = s.scripts.Segment(generated)
	s.runs.Put(run)

	if len(run.Segments) == 0 {
		err := entities.ErrEmptySegmentList
		run.Fail(err)
		s.runs.Put(run)
		return run, fmt.Errorf("run %s: %w", run.ID, err)
	}

	// Audio and assets have no data dependency on each other
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		run.Audio = s.audio.SynthesizeBatch(runcontext.WithStage(ctx, "audio"), run.ID, run.Segments)
	}()
	go func() {
		defer wg.Done()
		run.Assets = s.assets.GenerateAssets(runcontext.WithStage(ctx, "assets"), run.ID, generated.OriginalText)
	}()
	wg.Wait()
	s.runs.Put(run)

	run.Transcript = s.transcripts.TranscribeAll(runcontext.WithStage(ctx, "transcript"), run.Audio)
	s.runs.Put(run)

	result, err := s.video.Assemble(runcontext.WithStage(ctx, "mix"), run.ID, run.Audio, run.Assets)
	if err != nil {
		run.Fail(err)
		s.runs.Put(run)
		return run, fmt.Errorf("run %s: %w", run.ID, err)
	}
	run.Video = result
	run.Complete()
	s.runs.Put(run)

	if s.logger != nil {
		s.logger.Info("autopilot completed",
			zap.String("run_id", run.ID),
			zap.String("video_id", result.VideoID),
			zap.Int("clip_count", result.ClipCount),
			zap.Duration("elapsed", runcontext.Elapsed(ctx)),
		)
	}
	return run, nil
}
