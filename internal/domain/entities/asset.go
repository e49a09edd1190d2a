package entities

// AssetKind enumerates supported visual asset types
type AssetKind string

const (
	AssetKindImage AssetKind = "image"
)

// VisualKeyword is one extracted keyword pointing at a narration position.
// OrderID is 1-based: it refers to the script segment with index OrderID-1.
type VisualKeyword struct {
	OrderID int    `json:"order_id"`
	Type    string `json:"type"`
	Keyword string `json:"keyword"`
}

// Asset is a resolved visual bound to a narration position
type Asset struct {
	OrderID  int       `json:"order_id"`
	Keyword  string    `json:"keyword"`
	Kind     AssetKind `json:"type"`
	FilePath string    `json:"file_path"`
	URL      string    `json:"url,omitempty"`
}
