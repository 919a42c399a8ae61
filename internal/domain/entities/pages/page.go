// Package pages defines the assembled-page contract handed to the external
// template layer, plus the per-request context rendering depends on.
package pages

import "errors"

// ErrUnrecognizedPageType is returned when a root entry's content type matches
// neither a page prefix nor the connector type. Fatal for that page request.
var ErrUnrecognizedPageType = errors.New("unrecognized page type")

// Connector is the indirection content type whose sole purpose is to
// reference the actual page-root entry (home page routing).
const Connector = "connectHomepage"

// PagePrefix marks content types whose entries are themselves page roots.
const PagePrefix = "page"

// ViewModel is the flattened, template-ready mapping produced per content
// block. Every view-model carries a "component" discriminator key. Produced
// fresh per request and never mutated after construction.
type ViewModel map[string]any

// Component returns the view-model's discriminator tag.
func (vm ViewModel) Component() string {
	if c, ok := vm["component"].(string); ok {
		return c
	}
	return ""
}

// PageContext is the per-request metadata threaded explicitly through mapper
// and renderer calls. No process-wide mutable state stands behind it.
type PageContext struct {
	CampaignID string
	Locale     string
	// Host is the site host serving this request; links to other site hosts
	// get referral tagging, links off the site list get external rel markup.
	Host      string
	SiteHosts []string
	UTMSource string
}

// IsSiteHost reports whether host is one of the site's locale-variant hosts.
func (pc *PageContext) IsSiteHost(host string) bool {
	for _, h := range pc.SiteHosts {
		if h == host {
			return true
		}
	}
	return false
}

// PageInfo is page metadata derived once from the content root's fields,
// before the entries loop runs.
type PageInfo struct {
	Title      string `json:"title"`
	Blurb      string `json:"blurb"`
	Slug       string `json:"slug"`
	CampaignID string `json:"campaign"`
	Locale     string `json:"locale"`
	Theme      string `json:"theme,omitempty"`
	ImageURL   string `json:"image,omitempty"`
}

// Page is the assembler's output structure.
type Page struct {
	PageType string      `json:"pageType"`
	CSS      []string    `json:"pageCss"`
	JS       []string    `json:"pageJs"`
	Info     PageInfo    `json:"info"`
	Entries  []ViewModel `json:"entries"`
	// Skipped counts content items whose type had no registered handler.
	// The items are omitted silently from Entries; the count keeps the
	// forward-compatibility behavior observable.
	Skipped int `json:"-"`
}
