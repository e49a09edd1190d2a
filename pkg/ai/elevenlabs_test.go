package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rafsal3/VideoGen-MVP-backend/pkg/config"
)

func TestSynthesize_StreamsAudio(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v1/text-to-speech/") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("xi-api-key") != "test-key" {
			t.Fatalf("missing api key header")
		}
		var payload SynthesisRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.Text == "" {
			t.Fatalf("empty text in request")
		}
		w.Write([]byte("mp3-bytes"))
	}))
	defer ts.Close()

	client := NewElevenLabsClient(&config.ElevenLabsConfig{APIKey: "test-key", BaseURL: ts.URL})

	var buf bytes.Buffer
	if err := client.Synthesize(context.Background(), "Hello world.", &buf); err != nil {
		t.Fatalf("synthesize failed: %v", err)
	}
	if buf.String() != "mp3-bytes" {
		t.Fatalf("unexpected audio payload %q", buf.String())
	}
}

func TestSynthesize_UpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := NewElevenLabsClient(&config.ElevenLabsConfig{APIKey: "bad-key", BaseURL: ts.URL})

	var buf bytes.Buffer
	if err := client.Synthesize(context.Background(), "Hello.", &buf); err == nil {
		t.Fatalf("expected error on 401")
	}
	if buf.Len() != 0 {
		t.Fatalf("no audio should be written on failure")
	}
}
