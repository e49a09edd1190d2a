package assets

import (
	"errors"
	"testing"

	"github.com/rafsal3/VideoGen-MVP-backend/internal/domain/entities"
)

func TestParseKeywordResponse(t *testing.T) {
	raw := "Here are the keywords:\n```json\n" +
		`[{"order_id":1,"type":"image","keyword":"mountain lake"},` +
		`{"order_id":2,"type":"image","keyword":"city skyline"}]` +
		"\n```\nLet me know if you need more."

	keywords, err := ParseKeywordResponse(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(keywords) != 2 {
		t.Fatalf("expected 2 keywords, got %d", len(keywords))
	}
	if keywords[0].OrderID != 1 || keywords[0].Keyword != "mountain lake" {
		t.Errorf("unexpected first keyword: %+v", keywords[0])
	}
	if keywords[1].OrderID != 2 || keywords[1].Keyword != "city skyline" {
		t.Errorf("unexpected second keyword: %+v", keywords[1])
	}
}

func TestParseKeywordResponse_FiltersInvalidEntries(t *testing.T) {
	raw := `[
		{"order_id":1,"type":"image","keyword":"keep me"},
		{"order_id":2,"type":"video","keyword":"wrong type"},
		{"order_id":3,"type":"image","keyword":"  "},
		{"order_id":0,"type":"image","keyword":"bad position"}
	]`

	keywords, err := ParseKeywordResponse(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(keywords) != 1 || keywords[0].Keyword != "keep me" {
		t.Fatalf("expected only the valid entry, got %+v", keywords)
	}
}

func TestParseKeywordResponse_NoArray(t *testing.T) {
	_, err := ParseKeywordResponse("Sorry, I cannot help with that.")
	if !errors.Is(err, entities.ErrMalformedExtraction) {
		t.Fatalf("expected malformed extraction error, got %v", err)
	}
}

func TestParseKeywordResponse_InvalidJSON(t *testing.T) {
	_, err := ParseKeywordResponse(`[{"order_id": not json}]`)
	if !errors.Is(err, entities.ErrMalformedExtraction) {
		t.Fatalf("expected malformed extraction error, got %v", err)
	}
}
