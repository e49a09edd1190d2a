package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/rafsal3/VideoGen-MVP-backend/pkg/config"
)

// GeminiClient is a minimal client for the Gemini generateContent API.
// It serves two collaborator roles: script generation and visual keyword
// extraction over a full script.
type GeminiClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGeminiClient creates a Gemini client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGeminiClient(cfg *config.GeminiConfig) *GeminiClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("GEMINI_API_URL")
		if base == "" {
			base = "https://generativelanguage.googleapis.com"
		}
	}

	model := "gemini-2.0-flash"
	if cfg != nil && cfg.Model != "" {
		model = cfg.Model
	}

	return &GeminiClient{
		apiKey:  apiKey,
		baseURL: base,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

// GenerateRequest is the shape for generateContent requests
type GenerateRequest struct {
	Contents []geminiContent `json:"contents"`
}

// GenerateResponse is a minimal response shape
type GenerateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateContent sends a prompt to Gemini and returns the first candidate text.
// Transient upstream failures (429/5xx) are retried with exponential backoff.
func (g *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	reqBody := GenerateRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)

	var text string
	callFn := func() error {
		req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := g.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("gemini returned status %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("gemini returned status %d", resp.StatusCode))
		}

		var gr GenerateResponse
		if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
			return backoff.Permanent(err)
		}
		if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
			return backoff.Permanent(fmt.Errorf("empty response from gemini"))
		}
		text = gr.Candidates[0].Content.Parts[0].Text
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(callFn, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}
	return text, nil
}

// GenerateScript asks Gemini for a short narration script for the given text
func (g *GeminiClient) GenerateScript(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(`You are a news narration writer for short videos.
Write a concise narration script for the following story. Use short,
complete sentences ending with a period. Do not use headings, lists or
any markup, only the narration text.

Story:
%s`, text)

	return g.GenerateContent(ctx, prompt)
}

// DescribeVisuals asks Gemini for image keywords over a full script.
// The raw model text is returned; parsing is the caller's job.
func (g *GeminiClient) DescribeVisuals(ctx context.Context, script string) (string, error) {
	prompt := fmt.Sprintf(`You are an AI assistant helping generate video content.
Extract only the meaningful image-based visual keywords from this script,
one entry per sentence position. Ignore anything that should be text or gif.

Output format (JSON):
[
  {"order_id": 1, "type": "image", "keyword": "example keyword"},
  ...
]

order_id is the 1-based sentence position the keyword illustrates.

Script:
%s`, script)

	return g.GenerateContent(ctx, prompt)
}
