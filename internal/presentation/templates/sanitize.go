package templates

import "github.com/microcosm-cc/bluemonday"

// externalPolicy allows the basic formatting tags external rich text may
// legitimately carry. Everything else, scripts included, is stripped.
var externalPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"a", "abbr", "acronym", "b", "blockquote", "code", "em", "i",
		"li", "ol", "p", "small", "strike", "strong", "ul",
		"h1", "h2", "h3", "h4", "h5", "h6",
	)
	p.AllowAttrs("href").OnElements("a")
	p.RequireParseableURLs(true)
	return p
}()

// SanitizeExternal cleans HTML content sourced from external data before it
// is marked safe for display.
func SanitizeExternal(content string) string {
	return externalPolicy.Sanitize(content)
}
