package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Canonical output frame
const (
	FrameWidth  = 1920
	FrameHeight = 1080
	FrameRate   = 24
)

// ProbeResult carries the relevant stream metadata of a media file
type ProbeResult struct {
	Duration float64
	Width    int
	Height   int
	Codec    string
}

// Prober reads authoritative duration and stream info from an artifact
type Prober interface {
	Probe(ctx context.Context, path string) (*ProbeResult, error)
}

// Engine renders normalized per-segment clips and concatenates them.
// Every clip it produces shares the canonical frame size, frame rate and
// codec pairing, so concatenation is a stream copy.
type Engine interface {
	Prober
	RenderImageClip(ctx context.Context, imagePath, audioPath, outPath string, duration float64) error
	RenderColorClip(ctx context.Context, hexColor, audioPath, outPath string, duration float64) error
	Concat(ctx context.Context, listPath string, clipPaths []string, outPath string) error
}

// FFmpeg implements Engine by shelling out to ffmpeg/ffprobe
type FFmpeg struct {
	ffmpegBin  string
	ffprobeBin string
	logger     *zap.Logger
}

// NewFFmpeg creates an Engine using the given binaries
func NewFFmpeg(ffmpegBin, ffprobeBin string, logger *zap.Logger) *FFmpeg {
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	if ffprobeBin == "" {
		ffprobeBin = "ffprobe"
	}
	return &FFmpeg{ffmpegBin: ffmpegBin, ffprobeBin: ffprobeBin, logger: logger}
}

type probeFormat struct {
	Duration string `json:"duration"`
}

type probeStream struct {
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type probeOutput struct {
	Format  probeFormat   `json:"format"`
	Streams []probeStream `json:"streams"`
}

// Probe reads duration and stream info via ffprobe
func (f *FFmpeg) Probe(ctx context.Context, path string) (*ProbeResult, error) {
	args := []string{
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}
	out, err := exec.CommandContext(ctx, f.ffprobeBin, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}
	return parseProbeOutput(out)
}

func parseProbeOutput(out []byte) (*ProbeResult, error) {
	var po probeOutput
	if err := json.Unmarshal(out, &po); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	result := &ProbeResult{}
	if po.Format.Duration != "" {
		d, err := strconv.ParseFloat(po.Format.Duration, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", po.Format.Duration, err)
		}
		result.Duration = d
	}
	if result.Duration <= 0 {
		return nil, fmt.Errorf("artifact has no positive duration")
	}

	for _, s := range po.Streams {
		if s.CodecType == "video" {
			result.Width = s.Width
			result.Height = s.Height
			result.Codec = s.CodecName
			break
		}
		if result.Codec == "" {
			result.Codec = s.CodecName
		}
	}
	return result, nil
}

// fitFilter fits a source into the canonical frame preserving aspect ratio
// (height-first to 1080, width capped at 1920) and centers it with padding
func fitFilter() string {
	return fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
		FrameWidth, FrameHeight, FrameWidth, FrameHeight)
}

// colorSource builds the lavfi input for a solid-color frame
func colorSource(hexColor string) string {
	return fmt.Sprintf("color=c=%s:s=%dx%d:r=%d", hexColor, FrameWidth, FrameHeight, FrameRate)
}

func imageClipArgs(imagePath, audioPath, outPath string, duration float64) []string {
	return []string{
		"-y",
		"-loop", "1",
		"-i", imagePath,
		"-i", audioPath,
		"-t", formatDuration(duration),
		"-r", strconv.Itoa(FrameRate),
		"-vf", fitFilter(),
		"-pix_fmt", "yuv420p",
		"-c:v", "libx264",
		"-c:a", "aac",
		"-shortest",
		outPath,
	}
}

func colorClipArgs(hexColor, audioPath, outPath string, duration float64) []string {
	return []string{
		"-y",
		"-f", "lavfi",
		"-i", colorSource(hexColor),
		"-i", audioPath,
		"-t", formatDuration(duration),
		"-pix_fmt", "yuv420p",
		"-c:v", "libx264",
		"-c:a", "aac",
		"-shortest",
		outPath,
	}
}

func concatArgs(listPath, outPath string) []string {
	return []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		outPath,
	}
}

func formatDuration(d float64) string {
	return strconv.FormatFloat(d, 'f', 3, 64)
}

// RenderImageClip binds an image visual to a segment's audio for exactly
// the audio's duration
func (f *FFmpeg) RenderImageClip(ctx context.Context, imagePath, audioPath, outPath string, duration float64) error {
	return f.run(ctx, imageClipArgs(imagePath, audioPath, outPath, duration))
}

// RenderColorClip binds a solid-color visual to a segment's audio
func (f *FFmpeg) RenderColorClip(ctx context.Context, hexColor, audioPath, outPath string, duration float64) error {
	return f.run(ctx, colorClipArgs(hexColor, audioPath, outPath, duration))
}

// Concat joins pre-normalized clips in order via the concat demuxer
func (f *FFmpeg) Concat(ctx context.Context, listPath string, clipPaths []string, outPath string) error {
	if err := writeConcatList(listPath, clipPaths); err != nil {
		return err
	}
	return f.run(ctx, concatArgs(listPath, outPath))
}

// writeConcatList writes a concat demuxer manifest, one clip per line
func writeConcatList(listPath string, clipPaths []string) error {
	var b strings.Builder
	for _, p := range clipPaths {
		escaped := strings.ReplaceAll(p, "'", `'\''`)
		fmt.Fprintf(&b, "file '%s'\n", escaped)
	}
	if err := os.WriteFile(listPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write concat list: %w", err)
	}
	return nil
}

func (f *FFmpeg) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, f.ffmpegBin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		tail := string(out)
		if len(tail) > 512 {
			tail = tail[len(tail)-512:]
		}
		return fmt.Errorf("ffmpeg failed: %w: %s", err, tail)
	}
	if f.logger != nil {
		f.logger.Debug("ffmpeg command completed", zap.Strings("args", args))
	}
	return nil
}
