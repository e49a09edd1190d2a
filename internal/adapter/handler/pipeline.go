package handler

import (
	"context"
	stdErrors "errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rafsal3/VideoGen-MVP-backend/errors"
	dto "github.com/rafsal3/VideoGen-MVP-backend/internal/adapter/dto/pipeline"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/domain/entities"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/infrastructure/cache"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/usecase/assets"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/usecase/audio"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/usecase/pipeline"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/usecase/script"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/usecase/transcript"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/usecase/video"
)

// Pipeline exposes the stage-by-stage and autopilot endpoints
type Pipeline struct {
	scripts     script.Service
	audio       audio.Service
	assets      assets.Service
	transcripts transcript.Service
	video       video.Service
	autopilot   pipeline.Service
	runs        *cache.RunStore
	logger      *zap.Logger
}

// NewPipeline creates the pipeline controller
func NewPipeline(
	scripts script.Service,
	audioSvc audio.Service,
	assetSvc assets.Service,
	transcripts transcript.Service,
	videoSvc video.Service,
	autopilot pipeline.Service,
	runs *cache.RunStore,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		scripts:     scripts,
		audio:       audioSvc,
		assets:      assetSvc,
		transcripts: transcripts,
		video:       videoSvc,
		autopilot:   autopilot,
		runs:        runs,
		logger:      logger,
	}
}

// requestID returns the caller-supplied id or generates one
func requestID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

// scriptFromPayload rebuilds a script entity from a stage request body
func scriptFromPayload(p dto.ScriptPayload) *entities.Script {
	text := p.OriginalText
	if text == "" {
		text = p.Text
	}
	return &entities.Script{
		OriginalText:  text,
		Sentences:     p.Sentences,
		SentenceCount: len(p.Sentences),
	}
}

func audioFromPayload(in []dto.AudioSegmentPayload) []entities.AudioSegment {
	out := make([]entities.AudioSegment, 0, len(in))
	for _, p := range in {
		out = append(out, entities.AudioSegment{
			SegmentIndex: p.SegmentIndex,
			SourceText:   p.SourceText,
			FilePath:     p.FilePath,
			Duration:     p.Duration,
			Error:        p.Error,
		})
	}
	return out
}

func assetsFromPayload(in []dto.AssetPayload) []entities.Asset {
	out := make([]entities.Asset, 0, len(in))
	for _, p := range in {
		out = append(out, entities.Asset{
			OrderID:  p.OrderID,
			Keyword:  p.Keyword,
			Kind:     entities.AssetKindImage,
			FilePath: p.FilePath,
		})
	}
	return out
}

// GenerateScript handles POST /v1/script
func (h *Pipeline) GenerateScript(c echo.Context) error {
	var req dto.ScriptRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("text is required"))
	}

	generated, err := h.scripts.Generate(c.Request().Context(), req.Text)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrScriptGenerationFailed(err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"request_id": requestID(req.RequestID),
		"script":     generated,
	})
}

// GenerateAudio handles POST /v1/audio
func (h *Pipeline) GenerateAudio(c echo.Context) error {
	var req dto.AudioRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	segments := h.scripts.Segment(scriptFromPayload(req.Script))
	if len(segments) == 0 {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("script has no sentences"))
	}

	runID := requestID(req.RequestID)
	results := h.audio.SynthesizeBatch(c.Request().Context(), runID, segments)

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"request_id": runID,
		"audio":      results,
	})
}

// GenerateAssets handles POST /v1/assets
func (h *Pipeline) GenerateAssets(c echo.Context) error {
	var req dto.AssetsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	scriptText := req.Script.OriginalText
	if scriptText == "" {
		scriptText = req.Script.Text
	}
	if scriptText == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("script text is required"))
	}

	runID := requestID(req.RequestID)
	resolved := h.assets.GenerateAssets(c.Request().Context(), runID, scriptText)

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"request_id": runID,
		"assets":     resolved,
	})
}

// GenerateTranscript handles POST /v1/transcript
func (h *Pipeline) GenerateTranscript(c echo.Context) error {
	var req dto.TranscriptRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("audio batch is required"))
	}

	batch := h.transcripts.TranscribeAll(c.Request().Context(), audioFromPayload(req.Audio))

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"request_id": requestID(req.RequestID),
		"transcript": batch,
	})
}

// MixVideo handles POST /v1/mix
func (h *Pipeline) MixVideo(c echo.Context) error {
	var req dto.MixRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("audio batch is required"))
	}

	runID := requestID(req.RequestID)
	result, err := h.video.Assemble(c.Request().Context(), runID, audioFromPayload(req.Audio), assetsFromPayload(req.Assets))
	if err != nil {
		if stdErrors.Is(err, entities.ErrNoUsableSegments) {
			return HandleError(h.logger, c, errors.ErrNoUsableSegments(runID))
		}
		return HandleError(h.logger, c, errors.ErrVideoAssemblyFailed(err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"request_id": runID,
		"video":      result,
	})
}

// Autopilot handles POST /v1/autopilot
func (h *Pipeline) Autopilot(c echo.Context) error {
	var req dto.AutopilotRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("text is required"))
	}

	run, err := h.autopilot.RunAutopilot(c.Request().Context(), req.Text, req.RequestID)
	if err != nil {
		runID := req.RequestID
		if run != nil {
			runID = run.ID
		}
		switch {
		case stdErrors.Is(err, entities.ErrNoUsableSegments):
			return HandleError(h.logger, c, errors.ErrNoUsableSegments(runID))
		case stdErrors.Is(err, context.DeadlineExceeded):
			return HandleError(h.logger, c, errors.ErrDeadlineExceeded(err))
		}
		return HandleError(h.logger, c, errors.ErrAutopilotFailed(runID, err))
	}

	return HandleSuccess(h.logger, c, run)
}

// GetRun handles GET /v1/runs/:id
func (h *Pipeline) GetRun(c echo.Context) error {
	id := c.Param("id")
	run, ok := h.runs.Get(id)
	if !ok {
		return HandleError(h.logger, c, errors.ErrRunNotFound(id))
	}
	return HandleSuccess(h.logger, c, run)
}
