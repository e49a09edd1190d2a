package assets

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rafsal3/VideoGen-MVP-backend/internal/domain/entities"
)

// Language models wrap JSON in prose or code fences; extract the first
// bracketed array from the raw response.
var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// ParseKeywordResponse extracts visual keywords from a raw model response.
// Entries that are not image-typed, have a blank keyword, or carry an
// out-of-range position are dropped.
func ParseKeywordResponse(raw string) ([]entities.VisualKeyword, error) {
	match := jsonArrayPattern.FindString(raw)
	if match == "" {
		return nil, fmt.Errorf("%w: no JSON array in response", entities.ErrMalformedExtraction)
	}

	var parsed []entities.VisualKeyword
	if err := json.Unmarshal([]byte(match), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrMalformedExtraction, err)
	}

	keywords := make([]entities.VisualKeyword, 0, len(parsed))
	for _, kw := range parsed {
		kw.Keyword = strings.TrimSpace(kw.Keyword)
		if kw.Type != string(entities.AssetKindImage) || kw.Keyword == "" || kw.OrderID < 1 {
			continue
		}
		keywords = append(keywords, kw)
	}
	return keywords, nil
}
