package ai

import (
	"context"
	"fmt"
	"os"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/rafsal3/VideoGen-MVP-backend/pkg/config"
)

// WordTiming is one transcribed word with offsets in seconds
type WordTiming struct {
	Word  string
	Start float64
	End   float64
}

// TranscriptionResult is the collaborator result for one audio artifact
type TranscriptionResult struct {
	Text  string
	Words []WordTiming
}

// AssemblyAIClient wraps the official AssemblyAI SDK for per-segment
// transcription of local audio artifacts
type AssemblyAIClient struct {
	client *aai.Client
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	return &AssemblyAIClient{
		client: aai.NewClient(apiKey),
	}
}

// Transcribe uploads a local audio file and waits for its transcript.
// Word offsets are converted from milliseconds to seconds.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audioPath string) (*TranscriptionResult, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio artifact: %w", err)
	}
	defer f.Close()

	params := &aai.TranscriptOptionalParams{
		Punctuate:  aai.Bool(true),
		FormatText: aai.Bool(true),
	}

	transcript, err := c.client.Transcripts.TranscribeFromReader(ctx, f, params)
	if err != nil {
		return nil, fmt.Errorf("assemblyai transcription failed: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		msg := "unknown error"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, fmt.Errorf("assemblyai transcription failed: %s", msg)
	}

	result := &TranscriptionResult{}
	if transcript.Text != nil {
		result.Text = *transcript.Text
	}
	for _, w := range transcript.Words {
		wt := WordTiming{}
		if w.Text != nil {
			wt.Word = *w.Text
		}
		if w.Start != nil {
			wt.Start = float64(*w.Start) / 1000.0
		}
		if w.End != nil {
			wt.End = float64(*w.End) / 1000.0
		}
		result.Words = append(result.Words, wt)
	}
	return result, nil
}
