package content

import (
	"encoding/json"
	"time"
)

// Snapshot is a persisted copy of a fetched entry subtree. Data is an opaque
// pass-through of the raw CMS response; the hash is computed over its
// canonical serialization. At most one snapshot may exist per
// (ContentType, Language) pair, and ContentfulID is unique on its own.
type Snapshot struct {
	ID           int64           `json:"id"`
	ContentfulID string          `json:"contentfulId"`
	ContentType  string          `json:"contentType"`
	Language     string          `json:"language"`
	DataHash     string          `json:"dataHash"`
	Data         json.RawMessage `json:"data"`
	LastModified time.Time       `json:"lastModified"`
}
