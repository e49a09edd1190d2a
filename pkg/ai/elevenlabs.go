package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rafsal3/VideoGen-MVP-backend/pkg/config"
)

// ElevenLabsClient is a minimal client for the ElevenLabs text-to-speech API
type ElevenLabsClient struct {
	apiKey       string
	baseURL      string
	voiceID      string
	modelID      string
	outputFormat string
	client       *http.Client
}

// NewElevenLabsClient creates an ElevenLabs client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewElevenLabsClient(cfg *config.ElevenLabsConfig) *ElevenLabsClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("ELEVENLABS_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("ELEVENLABS_API_URL")
		if base == "" {
			base = "https://api.elevenlabs.io"
		}
	}

	c := &ElevenLabsClient{
		apiKey:       apiKey,
		baseURL:      base,
		voiceID:      "qwaVDEGNsBllYcZO1ZOJ",
		modelID:      "eleven_multilingual_v2",
		outputFormat: "mp3_44100_128",
		// Synthesis streams the whole MP3 body, give it room
		client: &http.Client{Timeout: 120 * time.Second},
	}
	if cfg != nil {
		if cfg.VoiceID != "" {
			c.voiceID = cfg.VoiceID
		}
		if cfg.ModelID != "" {
			c.modelID = cfg.ModelID
		}
		if cfg.OutputFormat != "" {
			c.outputFormat = cfg.OutputFormat
		}
	}
	return c
}

// SynthesisRequest is the payload for /v1/text-to-speech/{voice_id}
type SynthesisRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id,omitempty"`
}

// Synthesize converts text to speech and streams the audio body into w
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text string, w io.Writer) error {
	payload := SynthesisRequest{
		Text:    text,
		ModelID: c.modelID,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=%s", c.baseURL, c.voiceID, c.outputFormat)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("elevenlabs returned status %d", resp.StatusCode)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to stream audio body: %w", err)
	}
	return nil
}
