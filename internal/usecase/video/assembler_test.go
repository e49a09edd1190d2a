package video

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rafsal3/VideoGen-MVP-backend/internal/domain/entities"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/infrastructure/media"
	"github.com/rafsal3/VideoGen-MVP-backend/internal/infrastructure/storage"
)

type renderCall struct {
	kind      string
	imagePath string
	color     string
	audioPath string
	duration  float64
}

type fakeEngine struct {
	durations map[string]float64
	calls     []renderCall
	concatTo  string
}

func (f *fakeEngine) Probe(ctx context.Context, path string) (*media.ProbeResult, error) {
	d, ok := f.durations[path]
	if !ok {
		return nil, errors.New("unreadable artifact")
	}
	return &media.ProbeResult{Duration: d}, nil
}

func (f *fakeEngine) RenderImageClip(ctx context.Context, imagePath, audioPath, outPath string, duration float64) error {
	f.calls = append(f.calls, renderCall{kind: "image", imagePath: imagePath, audioPath: audioPath, duration: duration})
	return os.WriteFile(outPath, []byte("clip"), 0o644)
}

func (f *fakeEngine) RenderColorClip(ctx context.Context, hexColor, audioPath, outPath string, duration float64) error {
	f.calls = append(f.calls, renderCall{kind: "color", color: hexColor, audioPath: audioPath, duration: duration})
	return os.WriteFile(outPath, []byte("clip"), 0o644)
}

func (f *fakeEngine) Concat(ctx context.Context, listPath string, clipPaths []string, outPath string) error {
	f.concatTo = outPath
	return os.WriteFile(outPath, []byte("video"), 0o644)
}

func newTestStore(t *testing.T) *storage.LocalStore {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir(), "/static")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestAssemble_SingleSegmentWithImageAsset(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	audioPath := writeFile(t, dir, "seg0.mp3")
	imagePath := writeFile(t, dir, "asset.jpg")

	engine := &fakeEngine{durations: map[string]float64{audioPath: 3.0}}
	svc := NewService(engine, store, nil, nil)

	audio := []entities.AudioSegment{
		{SegmentIndex: 0, SourceText: "Hello.", FilePath: audioPath, Duration: 3.0},
	}
	assets := []entities.Asset{
		{OrderID: 1, Keyword: "greeting", Kind: entities.AssetKindImage, FilePath: imagePath},
	}

	result, err := svc.Assemble(context.Background(), "run-1", audio, assets)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	if result.ClipCount != 1 {
		t.Fatalf("clip count = %d, want 1", result.ClipCount)
	}
	if result.Duration != 3.0 {
		t.Errorf("duration = %v, want 3.0", result.Duration)
	}
	if len(engine.calls) != 1 || engine.calls[0].kind != "image" {
		t.Fatalf("expected one image render, got %+v", engine.calls)
	}
	if engine.calls[0].imagePath != imagePath {
		t.Errorf("rendered wrong asset: %s", engine.calls[0].imagePath)
	}
	if _, err := os.Stat(result.FilePath); err != nil {
		t.Errorf("rendered video missing: %v", err)
	}
	if result.VideoID == "" || result.URL == "" {
		t.Errorf("result missing id or URL: %+v", result)
	}
}

func TestAssemble_SkipsUnusableSegmentKeepsRest(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	audioPath := writeFile(t, dir, "seg1.mp3")

	engine := &fakeEngine{durations: map[string]float64{audioPath: 2.0}}
	svc := NewService(engine, store, nil, nil)

	audio := []entities.AudioSegment{
		entities.NewAudioFailure(0, "Broken.", errors.New("voice down")),
		{SegmentIndex: 1, SourceText: "Fine.", FilePath: audioPath, Duration: 2.0},
	}

	result, err := svc.Assemble(context.Background(), "run-1", audio, nil)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	if result.ClipCount != 1 {
		t.Fatalf("clip count = %d, want 1", result.ClipCount)
	}
	if len(engine.calls) != 1 || engine.calls[0].kind != "color" || engine.calls[0].color != colorNoAsset {
		t.Fatalf("expected one gray color render, got %+v", engine.calls)
	}
}

func TestAssemble_AllSegmentsUnusable(t *testing.T) {
	store := newTestStore(t)
	engine := &fakeEngine{durations: map[string]float64{}}
	svc := NewService(engine, store, nil, nil)

	audio := []entities.AudioSegment{
		entities.NewAudioFailure(0, "A.", errors.New("down")),
		{SegmentIndex: 1, SourceText: "B.", FilePath: "/nonexistent/seg.mp3"},
	}

	_, err := svc.Assemble(context.Background(), "run-1", audio, nil)
	if !errors.Is(err, entities.ErrNoUsableSegments) {
		t.Fatalf("expected ErrNoUsableSegments, got %v", err)
	}
}

func TestAssemble_MatchedAssetWithMissingFileFallsBackBlue(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	audioPath := writeFile(t, dir, "seg0.mp3")

	engine := &fakeEngine{durations: map[string]float64{audioPath: 1.5}}
	svc := NewService(engine, store, nil, nil)

	audio := []entities.AudioSegment{
		{SegmentIndex: 0, SourceText: "Hello.", FilePath: audioPath},
	}
	assets := []entities.Asset{
		{OrderID: 1, Keyword: "gone", Kind: entities.AssetKindImage, FilePath: filepath.Join(dir, "missing.jpg")},
	}

	_, err := svc.Assemble(context.Background(), "run-1", audio, assets)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	if len(engine.calls) != 1 || engine.calls[0].color != colorMissingAsset {
		t.Fatalf("expected blue fallback render, got %+v", engine.calls)
	}
}

func TestAssemble_FirstAssetWinsOnDuplicatePosition(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	audioPath := writeFile(t, dir, "seg0.mp3")
	first := writeFile(t, dir, "first.jpg")
	second := writeFile(t, dir, "second.jpg")

	engine := &fakeEngine{durations: map[string]float64{audioPath: 1.0}}
	svc := NewService(engine, store, nil, nil)

	audio := []entities.AudioSegment{
		{SegmentIndex: 0, SourceText: "Hello.", FilePath: audioPath},
	}
	assets := []entities.Asset{
		{OrderID: 1, FilePath: first},
		{OrderID: 1, FilePath: second},
	}

	_, err := svc.Assemble(context.Background(), "run-1", audio, assets)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	if engine.calls[0].imagePath != first {
		t.Fatalf("expected first asset to win, rendered %s", engine.calls[0].imagePath)
	}
}

func TestAssemble_OrdersClipsBySegmentIndex(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	p0 := writeFile(t, dir, "seg0.mp3")
	p1 := writeFile(t, dir, "seg1.mp3")

	engine := &fakeEngine{durations: map[string]float64{p0: 1.0, p1: 2.0}}
	svc := NewService(engine, store, nil, nil)

	audio := []entities.AudioSegment{
		{SegmentIndex: 1, SourceText: "Second.", FilePath: p1},
		{SegmentIndex: 0, SourceText: "First.", FilePath: p0},
	}

	result, err := svc.Assemble(context.Background(), "run-1", audio, nil)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	if result.ClipCount != 2 {
		t.Fatalf("clip count = %d, want 2", result.ClipCount)
	}
	if engine.calls[0].audioPath != p0 || engine.calls[1].audioPath != p1 {
		t.Fatalf("clips rendered out of narration order: %+v", engine.calls)
	}
}

func TestAssemble_CleansUpIntermediateClips(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()
	audioPath := writeFile(t, dir, "seg0.mp3")

	engine := &fakeEngine{durations: map[string]float64{audioPath: 1.0}}
	svc := NewService(engine, store, nil, nil)

	audio := []entities.AudioSegment{
		{SegmentIndex: 0, SourceText: "Hello.", FilePath: audioPath},
	}
	if _, err := svc.Assemble(context.Background(), "run-1", audio, nil); err != nil {
		t.Fatalf("assemble failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(store.BaseDir(), "clips", "run-1")); !os.IsNotExist(err) {
		t.Fatalf("intermediate clips not cleaned up: %v", err)
	}
}
