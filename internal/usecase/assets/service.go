package assets

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/rafsal3/VideoGen-MVP-backend/internal/domain/entities"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/infrastructure/storage"
)

// Analyzer is the keyword extraction collaborator
type Analyzer interface {
	DescribeVisuals(ctx context.Context, script string) (string, error)
}

// ImageSearcher resolves one keyword to downloaded image bytes
type ImageSearcher interface {
	SearchImage(ctx context.Context, keyword string) ([]byte, error)
}

// Publisher mirrors resolved assets to object storage
type Publisher interface {
	PublishAsset(ctx context.Context, runID, localPath string) (string, error)
}

// Service extracts visual keywords from a script and resolves them to
// on-disk image assets. The whole branch is advisory: every failure
// degrades to fewer assets, never to a run failure.
type Service interface {
	ExtractKeywords(ctx context.Context, scriptText string) []entities.VisualKeyword
	Resolve(ctx context.Context, runID string, keywords []entities.VisualKeyword) []entities.Asset
	GenerateAssets(ctx context.Context, runID, scriptText string) []entities.Asset
}

type assetService struct {
	analyzer  Analyzer
	searcher  ImageSearcher
	store     *storage.LocalStore
	publisher Publisher
	pacing    time.Duration
	logger    *zap.Logger
}

// NewService constructs an asset service. publisher may be nil when
// object storage is disabled.
func NewService(analyzer Analyzer, searcher ImageSearcher, store *storage.LocalStore, publisher Publisher, pacing time.Duration, logger *zap.Logger) Service {
	if pacing < time.Second {
		pacing = time.Second
	}
	return &assetService{
		analyzer:  analyzer,
		searcher:  searcher,
		store:     store,
		publisher: publisher,
		pacing:    pacing,
		logger:    logger,
	}
}

// ExtractKeywords asks the analyzer for visual keywords. Any failure,
// from the collaborator or from parsing, yields an empty keyword list.
func (s *assetService) ExtractKeywords(ctx context.Context, scriptText string) []entities.VisualKeyword {
	raw, err := s.analyzer.DescribeVisuals(ctx, scriptText)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("keyword extraction failed", zap.Error(err))
		}
		return nil
	}

	keywords, err := ParseKeywordResponse(raw)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("keyword response unusable", zap.Error(err))
		}
		return nil
	}

	if s.logger != nil {
		s.logger.Info("visual keywords extracted", zap.Int("keyword_count", len(keywords)))
	}
	return keywords
}

// Resolve downloads one image per keyword, pacing provider calls at
// least one second apart. Keywords with no match or a failed download
// are skipped.
func (s *assetService) Resolve(ctx context.Context, runID string, keywords []entities.VisualKeyword) []entities.Asset {
	resolved := make([]entities.Asset, 0, len(keywords))

	for i, kw := range keywords {
		if i > 0 {
			select {
			case <-ctx.Done():
				return resolved
			case <-time.After(s.pacing):
			}
		}

		asset, ok := s.resolveOne(ctx, runID, kw)
		if ok {
			resolved = append(resolved, asset)
		}
	}
	return resolved
}

func (s *assetService) resolveOne(ctx context.Context, runID string, kw entities.VisualKeyword) (entities.Asset, bool) {
	data, err := s.searcher.SearchImage(ctx, kw.Keyword)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("image search failed",
				zap.String("run_id", runID),
				zap.Int("order_id", kw.OrderID),
				zap.String("keyword", kw.Keyword),
				zap.Error(err),
			)
		}
		return entities.Asset{}, false
	}

	path, err := s.store.AssetPath(runID, kw.OrderID, kw.Keyword)
	if err != nil {
		return entities.Asset{}, false
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to write asset",
				zap.String("run_id", runID),
				zap.String("path", path),
				zap.Error(err),
			)
		}
		return entities.Asset{}, false
	}

	url := s.store.PublicURL(path)
	if s.publisher != nil {
		if published, err := s.publisher.PublishAsset(ctx, runID, path); err == nil {
			url = published
		} else if s.logger != nil {
			s.logger.Warn("asset upload failed, serving locally",
				zap.String("run_id", runID),
				zap.Error(err),
			)
		}
	}

	return entities.Asset{
		OrderID:  kw.OrderID,
		Keyword:  kw.Keyword,
		Kind:     entities.AssetKindImage,
		FilePath: path,
		URL:      url,
	}, true
}

// GenerateAssets runs extraction and resolution back to back
func (s *assetService) GenerateAssets(ctx context.Context, runID, scriptText string) []entities.Asset {
	keywords := s.ExtractKeywords(ctx, scriptText)
	if len(keywords) == 0 {
		return nil
	}
	return s.Resolve(ctx, runID, keywords)
}
