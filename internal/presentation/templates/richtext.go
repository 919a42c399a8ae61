// Package templates provides rich text rendering and the embedded UI
// fragments dispatched from it.
package templates

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/willowmedia/contentbridge/internal/domain/entities/content"
	"github.com/willowmedia/contentbridge/internal/domain/entities/pages"
	"github.com/willowmedia/contentbridge/internal/domain/entities/richtext"
)

// EntryResolver resolves embedded entry and asset references during
// rendering. Fetch failures propagate unmodified; the renderer retries
// nothing.
type EntryResolver interface {
	EntryByID(ctx context.Context, id string) (*content.Entry, error)
	AssetByID(ctx context.Context, id string) (*content.Asset, error)
}

// Embedded asset images ship a standard source plus a 2x-density variant.
const (
	assetImageWidth       = 688
	assetImageRetinaWidth = 1376
)

// RichTextRenderer walks a rich text document tree and produces an HTML
// string. Rendering is synchronous and purely a function of the node tree
// plus the read-only page context (campaign id, hosts) of the enclosing
// request.
type RichTextRenderer struct {
	resolver EntryResolver
	pc       *pages.PageContext
}

// NewRichTextRenderer creates a renderer bound to one request's page context.
func NewRichTextRenderer(resolver EntryResolver, pc *pages.PageContext) *RichTextRenderer {
	return &RichTextRenderer{resolver: resolver, pc: pc}
}

// Render renders a document node to HTML. A nil node renders as the empty
// string so optional body fields degrade without special casing upstream.
func (r *RichTextRenderer) Render(ctx context.Context, node *richtext.Node) (string, error) {
	if node == nil {
		return "", nil
	}

	switch node.NodeType {
	case richtext.NodeDocument:
		return r.renderContent(ctx, node)
	case richtext.NodeParagraph:
		return r.renderParagraph(ctx, node)
	case richtext.NodeText:
		return html.EscapeString(node.Value), nil
	case richtext.NodeBold:
		return r.renderWrapped(ctx, node, "strong")
	case richtext.NodeItalic:
		return r.renderWrapped(ctx, node, "em")
	case richtext.NodeHyperlink:
		return r.renderHyperlink(ctx, node)
	case richtext.NodeUnorderedList:
		return r.renderList(ctx, node, "ul")
	case richtext.NodeOrderedList:
		return r.renderList(ctx, node, "ol")
	case richtext.NodeListItem:
		return r.renderListItem(ctx, node)
	case richtext.NodeEmbeddedEntry:
		return r.renderEmbeddedEntry(ctx, node)
	case richtext.NodeEmbeddedAssetBlock:
		return r.renderEmbeddedAsset(ctx, node)
	default:
		// Unknown block types render their children so new CMS node types
		// degrade to their text content instead of disappearing.
		return r.renderContent(ctx, node)
	}
}

func (r *RichTextRenderer) renderContent(ctx context.Context, node *richtext.Node) (string, error) {
	var out strings.Builder
	for _, child := range node.Content {
		rendered, err := r.Render(ctx, child)
		if err != nil {
			return "", err
		}
		out.WriteString(rendered)
	}
	return out.String(), nil
}

func (r *RichTextRenderer) renderWrapped(ctx context.Context, node *richtext.Node, tag string) (string, error) {
	inner, err := r.renderContent(ctx, node)
	if err != nil {
		return "", err
	}
	return "<" + tag + ">" + inner + "</" + tag + ">", nil
}

// renderParagraph suppresses empty paragraphs and promotes a paragraph whose
// only meaningful child is a hyperlink to a CTA link.
func (r *RichTextRenderer) renderParagraph(ctx context.Context, node *richtext.Node) (string, error) {
	var nonEmpty []*richtext.Node
	for _, child := range node.Content {
		if !child.IsEmptyText() {
			nonEmpty = append(nonEmpty, child)
		}
	}

	if len(nonEmpty) == 0 {
		return "", nil
	}

	inner, err := r.renderContent(ctx, node)
	if err != nil {
		return "", err
	}

	if len(nonEmpty) == 1 && nonEmpty[0].NodeType == richtext.NodeHyperlink {
		return `<p class="mzp-c-cta-link">` + inner + `</p>`, nil
	}

	return "<p>" + inner + "</p>", nil
}

func (r *RichTextRenderer) renderList(ctx context.Context, node *richtext.Node, tag string) (string, error) {
	inner, err := r.renderContent(ctx, node)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`<%s class="mzp-u-list-styled">%s</%s>`, tag, inner, tag), nil
}

// renderListItem renders a sole text child (or a sole paragraph wrapping one)
// directly, avoiding the doubled wrapping the CMS editor produces.
func (r *RichTextRenderer) renderListItem(ctx context.Context, node *richtext.Node) (string, error) {
	if len(node.Content) == 1 {
		only := node.Content[0]
		if only.NodeType == richtext.NodeText {
			return "<li>" + html.EscapeString(only.Value) + "</li>", nil
		}
		if only.NodeType == richtext.NodeParagraph && len(only.Content) == 1 &&
			only.Content[0].NodeType == richtext.NodeText {
			return "<li>" + html.EscapeString(only.Content[0].Value) + "</li>", nil
		}
	}

	inner, err := r.renderContent(ctx, node)
	if err != nil {
		return "", err
	}
	return "<li>" + inner + "</li>", nil
}

func (r *RichTextRenderer) renderHyperlink(ctx context.Context, node *richtext.Node) (string, error) {
	inner, err := r.renderContent(ctx, node)
	if err != nil {
		return "", err
	}

	href := node.Data.URI
	var extraAttrs string

	target, err := url.Parse(href)
	if err == nil && target.Host != "" {
		switch {
		case r.pc.IsSiteHost(target.Host) && target.Host != r.pc.Host:
			// Cross-locale link within the site: tag for referral analytics
			// unless the author already set campaign parameters.
			if !hasUTMParams(target.Query()) {
				q := target.Query()
				q.Set("utm_source", r.pc.UTMSource)
				q.Set("utm_medium", "referral")
				q.Set("utm_campaign", r.pc.CampaignID)
				target.RawQuery = q.Encode()
				href = target.String()
			}
		case !r.pc.IsSiteHost(target.Host):
			extraAttrs = fmt.Sprintf(` rel="external noopener" data-cta-text="%s"`,
				html.EscapeString(node.PlainText()))
		}
	}

	return fmt.Sprintf(`<a href="%s"%s>%s</a>`, html.EscapeString(href), extraAttrs, inner), nil
}

func hasUTMParams(query url.Values) bool {
	for key := range query {
		if strings.HasPrefix(key, "utm_") {
			return true
		}
	}
	return false
}

// renderEmbeddedEntry dispatches an inline entry reference to its UI
// fragment. Unrecognized content types fall back to the raw tag string so a
// miss is visible in output rather than silently blank.
func (r *RichTextRenderer) renderEmbeddedEntry(ctx context.Context, node *richtext.Node) (string, error) {
	entry, err := r.resolver.EntryByID(ctx, node.TargetID())
	if err != nil {
		return "", fmt.Errorf("failed to resolve embedded entry %s: %w", node.TargetID(), err)
	}

	switch entry.ContentType {
	case "componentLogo":
		return Logo(entry), nil
	case "componentWordmark":
		return Wordmark(entry), nil
	case "componentCtaButton":
		return CTAButton(entry), nil
	default:
		return entry.ContentType, nil
	}
}

func (r *RichTextRenderer) renderEmbeddedAsset(ctx context.Context, node *richtext.Node) (string, error) {
	asset, err := r.resolver.AssetByID(ctx, node.TargetID())
	if err != nil {
		return "", fmt.Errorf("failed to resolve embedded asset %s: %w", node.TargetID(), err)
	}

	return fmt.Sprintf(`<img src="%s" srcset="%s 2x" alt="%s">`,
		asset.ImageURL(assetImageWidth),
		asset.ImageURL(assetImageRetinaWidth),
		html.EscapeString(asset.Title)), nil
}
