package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willowmedia/contentbridge/internal/domain/cms"
	"github.com/willowmedia/contentbridge/internal/domain/entities/content"
	"github.com/willowmedia/contentbridge/internal/domain/entities/pages"
	"github.com/willowmedia/contentbridge/internal/domain/entities/richtext"
)

type fakeClient struct {
	entries map[string]*content.Entry
	assets  map[string]*content.Asset
	byType  map[string][]*content.Entry
	typed   map[string]*content.Entry
}

func (f *fakeClient) Entry(ctx context.Context, id string, opts cms.EntryOptions) (*content.Entry, error) {
	if entry, ok := f.entries[id]; ok {
		return entry, nil
	}
	return nil, fmt.Errorf("entry %s not found", id)
}

func (f *fakeClient) EntriesOfType(ctx context.Context, contentType string, opts cms.EntryOptions) ([]*content.Entry, error) {
	return f.byType[contentType], nil
}

func (f *fakeClient) Asset(ctx context.Context, id string) (*content.Asset, error) {
	if asset, ok := f.assets[id]; ok {
		return asset, nil
	}
	return nil, fmt.Errorf("asset %s not found", id)
}

func (f *fakeClient) EntryByTypeAndLanguage(ctx context.Context, contentType, language string) (*content.Entry, error) {
	if entry, ok := f.typed[contentType+"|"+language]; ok {
		return entry, nil
	}
	return nil, fmt.Errorf("no %s entry for %s", contentType, language)
}

func testMapper(t *testing.T, client *fakeClient) *MapperService {
	if client == nil {
		client = &fakeClient{}
	}
	return NewMapperService(client, testLogger(t))
}

func mapperPageContext() *pages.PageContext {
	return &pages.PageContext{
		CampaignID: "test-campaign",
		Locale:     "en-US",
		Host:       "www.example.org",
		SiteHosts:  []string{"www.example.org"},
		UTMSource:  "www.example.org",
	}
}

func entryOf(contentType string, fields content.Fields) *content.Entry {
	return &content.Entry{ID: contentType + "-test", ContentType: contentType, Fields: fields}
}

func richParagraph(value string) *richtext.Node {
	return &richtext.Node{NodeType: richtext.NodeDocument, Content: []*richtext.Node{
		{NodeType: richtext.NodeParagraph, Content: []*richtext.Node{
			{NodeType: richtext.NodeText, Value: value},
		}},
	}}
}

func TestMapText(t *testing.T) {
	mapper := testMapper(t, nil)

	vm, err := mapper.MapText(context.Background(), mapperPageContext(), richParagraph("Body copy"))
	require.NoError(t, err)

	assert.Equal(t, "text", vm.Component())
	assert.Equal(t, "<p>Body copy</p>", vm["body"])
	assert.Equal(t, "mzp-t-content-md", vm["width_class"])
}

func TestMapHero(t *testing.T) {
	mapper := testMapper(t, nil)

	entry := entryOf("componentHero", content.Fields{
		"heading":      "Take control",
		"tagline":      "Of your data",
		"theme":        "Dark",
		"product_icon": "Firefox Browser",
		"image_side":   "Left",
		"image":        &content.Asset{ID: "a1", URL: "//img.example.net/hero.png"},
		"body":         richParagraph("Hero body"),
		"cta": entryOf("componentCtaButton", content.Fields{
			"action": "/get/",
			"label":  "Get it",
		}),
	})

	vm, err := mapper.MapHero(context.Background(), mapperPageContext(), entry)
	require.NoError(t, err)

	assert.Equal(t, "hero", vm.Component())
	assert.Equal(t, "Take control", vm["title"])
	assert.Equal(t, "Of your data", vm["tagline"])
	assert.Equal(t, "mzp-t-dark", vm["theme_class"])
	assert.Equal(t, "mzp-t-product-firefox", vm["product_class"])
	assert.Equal(t, "mzp-l-reverse", vm["image_class"])
	assert.Equal(t, "https://img.example.net/hero.png?w=800", vm["image"])
	assert.Equal(t, "https://img.example.net/hero.png?w=1600", vm["highres_image"])
	assert.Equal(t, "<p>Hero body</p>", vm["body"])
	assert.Equal(t, true, vm["include_cta"])
	assert.Equal(t, `<a href="/get/" class="mzp-c-button">Get it</a>`, vm["cta"])
}

func TestMapHeroDegradesOnMissingFields(t *testing.T) {
	mapper := testMapper(t, nil)

	vm, err := mapper.MapHero(context.Background(), mapperPageContext(), entryOf("componentHero", content.Fields{}))
	require.NoError(t, err)

	assert.Equal(t, "", vm["title"])
	assert.Equal(t, "", vm["theme_class"])
	assert.Equal(t, "", vm["image"])
	assert.Equal(t, "", vm["image_class"])
	assert.Equal(t, "", vm["body"])
	assert.Equal(t, false, vm["include_cta"])
	assert.Equal(t, "", vm["cta"])
}

func TestMapSectionHeading(t *testing.T) {
	mapper := testMapper(t, nil)

	vm, err := mapper.MapSectionHeading(context.Background(), mapperPageContext(),
		entryOf("componentSectionHeading", content.Fields{"heading": "Features"}))
	require.NoError(t, err)

	assert.Equal(t, "sectionHeading", vm.Component())
	assert.Equal(t, "Features", vm["heading"])
}

func TestMapSplit(t *testing.T) {
	mapper := testMapper(t, nil)

	entry := entryOf("componentSplitBlock", content.Fields{
		"body":                      richParagraph("Split body"),
		"image":                     &content.Asset{ID: "a2", URL: "//img.example.net/split.png"},
		"image_side":                "Left",
		"body_width":                "Narrow",
		"image_pop":                 "Both",
		"image_width":               "Overflow container",
		"body_vertical_alignment":   "Top",
		"body_horizontal_alignment": "Center",
		"mobile_display":            []any{"Center content", "Hide image"},
		"theme":                     "Dark",
	})

	vm, err := mapper.MapSplit(context.Background(), mapperPageContext(), entry)
	require.NoError(t, err)

	assert.Equal(t, "split", vm.Component())
	assert.Equal(t, "mzp-l-split-reversed mzp-l-split-body-narrow mzp-l-split-pop", vm["block_class"])
	assert.Equal(t, "mzp-l-split-v-start mzp-l-split-h-center", vm["body_class"])
	assert.Equal(t, "mzp-l-split-media-overflow", vm["media_class"])
	assert.Equal(t, "mzp-l-split-center-on-sm-md mzp-l-split-hide-media-on-sm-md", vm["mobile_class"])
	assert.Equal(t, "mzp-t-dark", vm["theme_class"])
	assert.Equal(t, true, vm["has_bg"])
	assert.Equal(t, "<p>Split body</p>", vm["body"])
}

func TestMapSplitLightThemeHasNoBackground(t *testing.T) {
	mapper := testMapper(t, nil)

	vm, err := mapper.MapSplit(context.Background(), mapperPageContext(),
		entryOf("componentSplitBlock", content.Fields{"theme": "Light"}))
	require.NoError(t, err)

	assert.Equal(t, "", vm["theme_class"])
	assert.Equal(t, false, vm["has_bg"])
}

func TestMapCallout(t *testing.T) {
	mapper := testMapper(t, nil)

	entry := entryOf("layoutCallout", content.Fields{
		"theme": "Dark (alternative)",
		"component_callout": entryOf("componentCallout", content.Fields{
			"heading":      "Try it today",
			"product_icon": "Mozilla VPN",
			"body":         richParagraph("Callout body"),
			"cta": entryOf("componentCtaButton", content.Fields{
				"action": "/vpn/",
				"label":  "Get VPN",
				"theme":  "Secondary",
			}),
		}),
	})

	vm, err := mapper.MapCallout(context.Background(), mapperPageContext(), entry)
	require.NoError(t, err)

	assert.Equal(t, "callout", vm.Component())
	assert.Equal(t, "mzp-t-dark mzp-t-background-alt", vm["theme_class"])
	assert.Equal(t, "mzp-t-product-vpn", vm["product_class"])
	assert.Equal(t, "Try it today", vm["title"])
	assert.Equal(t, "<p>Callout body</p>", vm["body"])
	assert.Equal(t, `<a href="/vpn/" class="mzp-c-button mzp-t-secondary">Get VPN</a>`, vm["cta"])
}

func TestMapCalloutWithoutContentReference(t *testing.T) {
	mapper := testMapper(t, nil)

	vm, err := mapper.MapCallout(context.Background(), mapperPageContext(),
		entryOf("layoutCallout", content.Fields{"theme": "Dark"}))
	require.NoError(t, err)

	assert.Equal(t, "mzp-t-dark", vm["theme_class"])
	assert.Equal(t, "", vm["title"])
	assert.Equal(t, "", vm["body"])
}

func cardEntry(heading, imageURL string) *content.Entry {
	fields := content.Fields{
		"heading": heading,
		"link":    "/" + heading + "/",
	}
	if imageURL != "" {
		fields["image"] = &content.Asset{ID: heading + "-img", URL: imageURL}
	}
	return entryOf("componentCard", fields)
}

func TestMapCardLayoutDeclaredAspect(t *testing.T) {
	mapper := testMapper(t, nil)

	entry := entryOf("layout3Cards", content.Fields{
		"aspect_ratio": "3:2",
		"content": []any{
			cardEntry("one", "//img.example.net/one.png"),
			cardEntry("two", "//img.example.net/two.png"),
		},
	})

	vm, err := mapper.MapCardLayout(context.Background(), mapperPageContext(), entry)
	require.NoError(t, err)

	assert.Equal(t, "cardLayout", vm.Component())
	assert.Equal(t, "mzp-l-card-third", vm["layout_class"])

	cards := vm["cards"].([]pages.ViewModel)
	require.Len(t, cards, 2)
	assert.Equal(t, "card", cards[0].Component())
	assert.Equal(t, "mzp-has-aspect-3-2", cards[0]["aspect_ratio"])
	assert.Equal(t, "https://img.example.net/one.png?f=faces&fit=fill&h=533&w=800", cards[0]["image_url"])
	assert.Equal(t, "https://img.example.net/one.png?f=faces&fit=fill&h=1067&w=1600", cards[0]["highres_image_url"])
}

func TestMapCardWithoutImageHasNoAspectClass(t *testing.T) {
	mapper := testMapper(t, nil)

	entry := entryOf("layout2Cards", content.Fields{
		"content": []any{cardEntry("bare", "")},
	})

	vm, err := mapper.MapCardLayout(context.Background(), mapperPageContext(), entry)
	require.NoError(t, err)

	cards := vm["cards"].([]pages.ViewModel)
	require.Len(t, cards, 1)
	assert.Equal(t, "", cards[0]["aspect_ratio"])
	assert.Equal(t, "", cards[0]["image_url"])
}

func TestMapCardYouTubeID(t *testing.T) {
	mapper := testMapper(t, nil)

	card := cardEntry("video", "//img.example.net/v.png")
	card.Fields["you_tube"] = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	entry := entryOf("layout2Cards", content.Fields{"content": []any{card}})

	vm, err := mapper.MapCardLayout(context.Background(), mapperPageContext(), entry)
	require.NoError(t, err)

	cards := vm["cards"].([]pages.ViewModel)
	assert.Equal(t, "dQw4w9WgXcQ", cards[0]["youtube_id"])
}

func TestMapCardYouTubeIDDegrades(t *testing.T) {
	mapper := testMapper(t, nil)

	card := cardEntry("video", "")
	card.Fields["you_tube"] = "https://www.youtube.com/embed/noparam"
	entry := entryOf("layout2Cards", content.Fields{"content": []any{card}})

	vm, err := mapper.MapCardLayout(context.Background(), mapperPageContext(), entry)
	require.NoError(t, err)

	cards := vm["cards"].([]pages.ViewModel)
	assert.Equal(t, "", cards[0]["youtube_id"])
}

func TestMapFiveCardLayout(t *testing.T) {
	mapper := testMapper(t, nil)

	entry := entryOf("layout5Cards", content.Fields{
		"aspect_ratio": "3:2",
		"large_card": entryOf("layoutLargeCard", content.Fields{
			"card":  cardEntry("feature", "//img.example.net/small.png"),
			"image": &content.Asset{ID: "big", URL: "//img.example.net/big.png"},
		}),
		"content": []any{
			cardEntry("second", "//img.example.net/second.png"),
			cardEntry("third", "//img.example.net/third.png"),
		},
	})

	vm, err := mapper.MapCardLayout(context.Background(), mapperPageContext(), entry)
	require.NoError(t, err)
	assert.Equal(t, "mzp-l-card-hero", vm["layout_class"])

	cards := vm["cards"].([]pages.ViewModel)
	require.Len(t, cards, 3)

	// Large card leads, carrying the layout's own image at hero size.
	assert.Equal(t, "large_card", cards[0].Component())
	assert.Equal(t, "feature", cards[0]["heading"])
	assert.Equal(t, "https://img.example.net/big.png?f=faces&fit=fill&h=523&w=930", cards[0]["image_url"])
	assert.Equal(t, "https://img.example.net/big.png?f=faces&fit=fill&h=1046&w=1860", cards[0]["highres_image_url"])

	// The card after the large card frames 1:1 regardless of the declared
	// aspect ratio; the rest keep it.
	assert.Equal(t, "mzp-has-aspect-1-1", cards[1]["aspect_ratio"])
	assert.Equal(t, "https://img.example.net/second.png?f=faces&fit=fill&h=800&w=800", cards[1]["image_url"])
	assert.Equal(t, "mzp-has-aspect-3-2", cards[2]["aspect_ratio"])
}

func TestMapFiveCardLayoutMissingCardReference(t *testing.T) {
	mapper := testMapper(t, nil)

	entry := entryOf("layout5Cards", content.Fields{
		"aspect_ratio": "16:9",
		"large_card":   entryOf("layoutLargeCard", content.Fields{}),
		"content":      []any{cardEntry("only", "//img.example.net/only.png")},
	})

	vm, err := mapper.MapCardLayout(context.Background(), mapperPageContext(), entry)
	require.NoError(t, err)

	// Without a resolvable card reference there is no large card and no 1:1
	// override.
	cards := vm["cards"].([]pages.ViewModel)
	require.Len(t, cards, 1)
	assert.Equal(t, "card", cards[0].Component())
	assert.Equal(t, "mzp-has-aspect-16-9", cards[0]["aspect_ratio"])
}

func TestMapPictoLayout(t *testing.T) {
	mapper := testMapper(t, nil)

	entry := entryOf("layoutPictoBlocks", content.Fields{
		"width":           "Large",
		"blocks_per_row":  4,
		"icon_position":   "Side",
		"block_alignment": "Center",
		"theme":           "Dark",
		"icon_size":       "Extra Large",
		"heading_level":   "h2",
		"content": []any{
			entryOf("componentPicto", content.Fields{
				"heading": "Fast",
				"body":    richParagraph("Quick"),
				"icon":    &content.Asset{ID: "i1", URL: "//img.example.net/i1.svg"},
			}),
		},
	})

	vm, err := mapper.MapPictoLayout(context.Background(), mapperPageContext(), entry)
	require.NoError(t, err)

	assert.Equal(t, "pictoLayout", vm.Component())
	assert.Equal(t,
		"mzp-t-content-lg mzp-l-columns mzp-t-columns-four mzp-t-picto-side mzp-t-picto-center mzp-t-dark",
		vm["layout_class"])
	assert.Equal(t, "2", vm["heading_level"])
	assert.Equal(t, 96, vm["image_width"])

	pictos := vm["pictos"].([]pages.ViewModel)
	require.Len(t, pictos, 1)
	assert.Equal(t, "picto", pictos[0].Component())
	assert.Equal(t, "Fast", pictos[0]["heading"])
	assert.Equal(t, "<p>Quick</p>", pictos[0]["body"])
	assert.Equal(t, "https://img.example.net/i1.svg?w=800", pictos[0]["image_url"])
}

func TestMapPictoLayoutDefaults(t *testing.T) {
	mapper := testMapper(t, nil)

	vm, err := mapper.MapPictoLayout(context.Background(), mapperPageContext(),
		entryOf("layoutPictoBlocks", content.Fields{}))
	require.NoError(t, err)

	assert.Equal(t, "mzp-l-columns mzp-t-columns-three", vm["layout_class"])
	assert.Equal(t, "3", vm["heading_level"])
	assert.Equal(t, 64, vm["image_width"])
}

func TestMapTextColumnsRendersDeclaredColumnsOnly(t *testing.T) {
	mapper := testMapper(t, nil)
	handler, ok := mapper.Handler("textTwoColumns")
	require.True(t, ok)

	entry := entryOf("textTwoColumns", content.Fields{
		"width":             "Medium",
		"body_column_one":   richParagraph("first"),
		"body_column_two":   richParagraph("second"),
		"body_column_three": richParagraph("ignored"),
	})

	vm, err := handler.Map(context.Background(), mapperPageContext(), entry)
	require.NoError(t, err)

	assert.Equal(t, "textColumns", vm.Component())
	assert.Equal(t, "mzp-t-content-md mzp-l-columns mzp-t-columns-two", vm["layout_class"])
	assert.Equal(t, []string{"<p>first</p>", "<p>second</p>"}, vm["content"])
}

func TestMapTextColumnsSingleColumn(t *testing.T) {
	mapper := testMapper(t, nil)
	handler, ok := mapper.Handler("textOneColumn")
	require.True(t, ok)

	vm, err := handler.Map(context.Background(), mapperPageContext(),
		entryOf("textOneColumn", content.Fields{"body_column_one": richParagraph("solo")}))
	require.NoError(t, err)

	assert.Equal(t, "", vm["layout_class"])
	assert.Equal(t, []string{"<p>solo</p>"}, vm["content"])
}

func TestHandlerRegistryCoversAllContentTypes(t *testing.T) {
	mapper := testMapper(t, nil)

	for _, contentType := range []string{
		"componentHero", "componentSectionHeading", "componentSplitBlock",
		"layoutCallout", "layout2Cards", "layout3Cards", "layout4Cards",
		"layout5Cards", "layoutPictoBlocks",
		"textOneColumn", "textTwoColumns", "textThreeColumns", "textFourColumns",
	} {
		_, ok := mapper.Handler(contentType)
		assert.True(t, ok, contentType)
	}

	_, ok := mapper.Handler("componentUnknown")
	assert.False(t, ok)
}
