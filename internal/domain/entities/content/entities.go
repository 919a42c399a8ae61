// Package content defines the application's core content-related domain entities.
package content

import (
	"net/url"
	"strconv"

	"github.com/willowmedia/contentbridge/internal/domain/entities/richtext"
)

// Entry is a single structured content record fetched from the CMS.
// Fields values may be scalars, assets, links to other entries, or ordered
// sequences of either, depending on the entry's content type schema.
type Entry struct {
	ID          string `json:"id"`
	ContentType string `json:"contentType"`
	Locale      string `json:"locale"`
	Fields      Fields `json:"fields"`
}

// Asset references a remote media resource. The URL is the protocol-relative
// base returned by the CMS; sized variants are derived per call site so that
// width and aspect parameters stay a rendering concern.
type Asset struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ImageURL returns an https URL for the asset constrained to the given width.
func (a *Asset) ImageURL(width int) string {
	if a == nil || a.URL == "" {
		return ""
	}
	params := url.Values{}
	params.Set("w", strconv.Itoa(width))
	return "https:" + a.URL + "?" + params.Encode()
}

// CardImageURL returns an https URL cropped to width x height with face-aware
// fill, the framing used by card components.
func (a *Asset) CardImageURL(width, height int) string {
	if a == nil || a.URL == "" {
		return ""
	}
	params := url.Values{}
	params.Set("w", strconv.Itoa(width))
	params.Set("h", strconv.Itoa(height))
	params.Set("fit", "fill")
	params.Set("f", "faces")
	return "https:" + a.URL + "?" + params.Encode()
}

// Fields is an entry's field set. The accessors centralize optional-field
// defaulting: absent or mistyped values degrade to zero values, never panic.
type Fields map[string]any

// Has reports whether the field is present at all.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// String returns the field as a string, or "" when absent.
func (f Fields) String(key string) string {
	if v, ok := f[key].(string); ok {
		return v
	}
	return ""
}

// StringOr returns the field as a string, or fallback when absent or empty.
func (f Fields) StringOr(key, fallback string) string {
	if v := f.String(key); v != "" {
		return v
	}
	return fallback
}

// Bool returns the field as a bool, or false when absent.
func (f Fields) Bool(key string) bool {
	if v, ok := f[key].(bool); ok {
		return v
	}
	return false
}

// Int returns the field as an int, or 0 when absent. CMS numbers arrive as
// float64 through JSON decoding.
func (f Fields) Int(key string) int {
	switch v := f[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// StringList returns a multi-select field as a string slice, or nil.
func (f Fields) StringList(key string) []string {
	switch v := f[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Contains reports whether a multi-select field includes the given option.
func (f Fields) Contains(key, option string) bool {
	for _, v := range f.StringList(key) {
		if v == option {
			return true
		}
	}
	return false
}

// Entry returns a linked entry field, or nil when absent.
func (f Fields) Entry(key string) *Entry {
	if v, ok := f[key].(*Entry); ok {
		return v
	}
	return nil
}

// Entries returns an ordered sequence of linked entries, or nil. Unresolved
// links inside the sequence are dropped.
func (f Fields) Entries(key string) []*Entry {
	switch v := f[key].(type) {
	case []*Entry:
		return v
	case []any:
		out := make([]*Entry, 0, len(v))
		for _, item := range v {
			if e, ok := item.(*Entry); ok {
				out = append(out, e)
			}
		}
		return out
	}
	return nil
}

// Asset returns a linked asset field, or nil when absent.
func (f Fields) Asset(key string) *Asset {
	if v, ok := f[key].(*Asset); ok {
		return v
	}
	return nil
}

// RichText returns a rich text document field, or nil when absent.
func (f Fields) RichText(key string) *richtext.Node {
	if v, ok := f[key].(*richtext.Node); ok {
		return v
	}
	return nil
}
