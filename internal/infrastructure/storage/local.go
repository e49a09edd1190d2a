package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalStore manages the on-disk workspace for pipeline artifacts.
// Layout under the base directory:
//
//	audio_segment_{index}_{run}_{timestamp}_{nonce}.mp3   synthesized audio
//	assets/{runID}/{order}_{keyword}.jpg          resolved image assets
//	clips/{runID}/clip_{index}.mp4                assembler intermediates
//	video_{id}.mp4                                rendered output
//
// Audio, assets and videos are append-only per run; only the clips
// directory is removed after assembly.
type LocalStore struct {
	baseDir      string
	staticPrefix string
}

// NewLocalStore creates the workspace root if needed
func NewLocalStore(baseDir, staticPrefix string) (*LocalStore, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &LocalStore{
		baseDir:      baseDir,
		staticPrefix: strings.TrimSuffix(staticPrefix, "/"),
	}, nil
}

// BaseDir returns the workspace root
func (s *LocalStore) BaseDir() string {
	return s.baseDir
}

// AudioPath returns a collision-free path for one synthesized segment.
// The name composes run id, segment index, a timestamp and a random
// nonce so concurrent runs and re-invocations never overwrite each
// other, even within the same second.
func (s *LocalStore) AudioPath(runID string, index int) string {
	rid := runID
	if len(rid) > 8 {
		rid = rid[:8]
	}
	timestamp := time.Now().Format("20060102_150405")
	nonce := uuid.NewString()[:8]
	name := fmt.Sprintf("audio_segment_%d_%s_%s_%s.mp3", index, rid, timestamp, nonce)
	return filepath.Join(s.baseDir, name)
}

// AssetPath returns the path for a resolved image asset under the per-run
// namespace, creating the run folder on first use
func (s *LocalStore) AssetPath(runID string, orderID int, keyword string) (string, error) {
	dir := filepath.Join(s.baseDir, "assets", runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create asset directory: %w", err)
	}
	name := fmt.Sprintf("%d_%s.jpg", orderID, SanitizeKeyword(keyword))
	return filepath.Join(dir, name), nil
}

// ClipPath returns the path for one intermediate clip of a run
func (s *LocalStore) ClipPath(runID string, index int) (string, error) {
	dir := filepath.Join(s.baseDir, "clips", runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create clips directory: %w", err)
	}
	return filepath.Join(dir, fmt.Sprintf("clip_%03d.mp4", index)), nil
}

// ConcatListPath returns the path for the assembler's concat manifest
func (s *LocalStore) ConcatListPath(runID string) string {
	return filepath.Join(s.baseDir, "clips", runID, "concat.txt")
}

// VideoPath returns the path for a rendered video artifact
func (s *LocalStore) VideoPath(videoID string) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("video_%s.mp4", videoID))
}

// PublicURL maps a workspace path onto the static serving prefix
func (s *LocalStore) PublicURL(path string) string {
	rel, err := filepath.Rel(s.baseDir, path)
	if err != nil {
		return ""
	}
	return s.staticPrefix + "/" + filepath.ToSlash(rel)
}

// CleanupClips removes a run's intermediate clip directory
func (s *LocalStore) CleanupClips(runID string) {
	os.RemoveAll(filepath.Join(s.baseDir, "clips", runID))
}
