package video

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rafsal3/VideoGen-MVP-backend/internal/domain/entities"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/infrastructure/media"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/infrastructure/storage"
)

// Fallback frame colors. A segment whose asset was matched but whose
// file is unusable gets the blue frame; a segment that never matched an
// asset gets the gray frame.
const (
	colorMissingAsset = "0x4080FF"
	colorNoAsset      = "0x808080"
)

// Publisher mirrors rendered videos to object storage
type Publisher interface {
	PublishVideo(ctx context.Context, runID, localPath string) (string, error)
}

// Service assembles per-segment clips into one rendered video
type Service interface {
	Assemble(ctx context.Context, runID string, audio []entities.AudioSegment, assets []entities.Asset) (*entities.VideoResult, error)
}

type assemblerService struct {
	engine    media.Engine
	store     *storage.LocalStore
	publisher Publisher
	logger    *zap.Logger
}

// NewService constructs a video assembler. publisher may be nil when
// object storage is disabled.
func NewService(engine media.Engine, store *storage.LocalStore, publisher Publisher, logger *zap.Logger) Service {
	return &assemblerService{engine: engine, store: store, publisher: publisher, logger: logger}
}

type clipUnit struct {
	path     string
	duration float64
}

// Assemble renders one clip per usable audio segment in narration order
// and concatenates them. Segments without playable audio are skipped;
// visuals degrade to solid-color frames. Zero usable segments is the
// only fatal outcome.
func (s *assemblerService) Assemble(ctx context.Context, runID string, audio []entities.AudioSegment, assets []entities.Asset) (*entities.VideoResult, error) {
	ordered := make([]entities.AudioSegment, len(audio))
	copy(ordered, audio)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].SegmentIndex < ordered[j].SegmentIndex
	})

	defer s.store.CleanupClips(runID)

	clips := make([]clipUnit, 0, len(ordered))
	for _, seg := range ordered {
		clip, ok := s.renderClip(ctx, runID, seg, assets, len(clips))
		if ok {
			clips = append(clips, clip)
		}
	}

	if len(clips) == 0 {
		return nil, entities.ErrNoUsableSegments
	}

	videoID := uuid.New().String()
	outPath := s.store.VideoPath(videoID)

	clipPaths := make([]string, 0, len(clips))
	var total float64
	for _, c := range clips {
		clipPaths = append(clipPaths, c.path)
		total += c.duration
	}

	if err := s.engine.Concat(ctx, s.store.ConcatListPath(runID), clipPaths, outPath); err != nil {
		return nil, fmt.Errorf("failed to concatenate clips: %w", err)
	}

	url := s.store.PublicURL(outPath)
	if s.publisher != nil {
		if published, err := s.publisher.PublishVideo(ctx, runID, outPath); err == nil {
			url = published
		} else if s.logger != nil {
			s.logger.Warn("video upload failed, serving locally",
				zap.String("run_id", runID),
				zap.Error(err),
			)
		}
	}

	if s.logger != nil {
		s.logger.Info("video assembled",
			zap.String("run_id", runID),
			zap.String("video_id", videoID),
			zap.Int("clip_count", len(clips)),
			zap.Float64("duration_seconds", total),
		)
	}

	return &entities.VideoResult{
		VideoID:   videoID,
		FilePath:  outPath,
		URL:       url,
		ClipCount: len(clips),
		Duration:  total,
	}, nil
}

// renderClip renders one segment into a normalized clip. Unusable audio
// drops the segment; a bad or absent visual falls back to a color frame.
func (s *assemblerService) renderClip(ctx context.Context, runID string, seg entities.AudioSegment, assets []entities.Asset, clipIndex int) (clipUnit, bool) {
	if seg.Failed() || seg.FilePath == "" {
		return clipUnit{}, false
	}
	if _, err := os.Stat(seg.FilePath); err != nil {
		if s.logger != nil {
			s.logger.Warn("audio artifact vanished, skipping segment",
				zap.String("run_id", runID),
				zap.Int("segment_index", seg.SegmentIndex),
			)
		}
		return clipUnit{}, false
	}

	probe, err := s.engine.Probe(ctx, seg.FilePath)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("audio artifact unplayable, skipping segment",
				zap.String("run_id", runID),
				zap.Int("segment_index", seg.SegmentIndex),
				zap.Error(err),
			)
		}
		return clipUnit{}, false
	}
	duration := probe.Duration

	outPath, err := s.store.ClipPath(runID, clipIndex)
	if err != nil {
		return clipUnit{}, false
	}

	asset, matched := firstAssetFor(assets, seg.SegmentIndex+1)
	switch {
	case matched && assetUsable(asset):
		err = s.engine.RenderImageClip(ctx, asset.FilePath, seg.FilePath, outPath, duration)
	case matched:
		err = s.engine.RenderColorClip(ctx, colorMissingAsset, seg.FilePath, outPath, duration)
	default:
		err = s.engine.RenderColorClip(ctx, colorNoAsset, seg.FilePath, outPath, duration)
	}
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("clip render failed, skipping segment",
				zap.String("run_id", runID),
				zap.Int("segment_index", seg.SegmentIndex),
				zap.Error(err),
			)
		}
		return clipUnit{}, false
	}

	return clipUnit{path: outPath, duration: duration}, true
}

// firstAssetFor returns the first asset bound to the given 1-based
// narration position. Earlier entries win on duplicates.
func firstAssetFor(assets []entities.Asset, orderID int) (entities.Asset, bool) {
	for _, a := range assets {
		if a.OrderID == orderID {
			return a, true
		}
	}
	return entities.Asset{}, false
}

func assetUsable(a entities.Asset) bool {
	if a.FilePath == "" {
		return false
	}
	_, err := os.Stat(a.FilePath)
	return err == nil
}
