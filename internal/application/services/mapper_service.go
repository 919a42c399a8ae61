// Package services provides application-level orchestration services
package services

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/willowmedia/contentbridge/internal/domain/cms"
	"github.com/willowmedia/contentbridge/internal/domain/entities/content"
	"github.com/willowmedia/contentbridge/internal/domain/entities/pages"
	"github.com/willowmedia/contentbridge/internal/domain/entities/richtext"
	"github.com/willowmedia/contentbridge/internal/infrastructure/observability/logging"
	"github.com/willowmedia/contentbridge/internal/presentation/styles"
	"github.com/willowmedia/contentbridge/internal/presentation/templates"
)

// Image widths per component. Retina variants double the standard width.
const (
	cardImageWidth       = 800
	cardImageRetinaWidth = 1600
	largeCardWidth       = 930
	largeCardRetinaWidth = 1860
	heroImageWidth       = 800
	heroImageRetinaWidth = 1600
	pictoImageWidth      = 800
)

// ContentHandler binds a content type tag to its mapper plus the fixed CSS/JS
// bundle identifiers that type contributes to a page. Annotations depend only
// on the type, never on field values.
type ContentHandler struct {
	Map func(ctx context.Context, pc *pages.PageContext, entry *content.Entry) (pages.ViewModel, error)
	CSS []string
	JS  []string
}

// MapperService converts fetched entries into template-ready view-models,
// one handler per content type.
type MapperService struct {
	client   cms.Client
	logger   *logging.ChanneledLogger
	registry map[string]ContentHandler
}

// NewMapperService creates a new mapper service and builds its handler
// registry.
func NewMapperService(client cms.Client, logger *logging.ChanneledLogger) *MapperService {
	s := &MapperService{client: client, logger: logger}
	s.registry = map[string]ContentHandler{
		"componentHero":           {Map: s.MapHero, CSS: []string{"hero"}},
		"componentSectionHeading": {Map: s.MapSectionHeading, CSS: []string{"section-heading"}},
		"componentSplitBlock":     {Map: s.MapSplit, CSS: []string{"split"}},
		"layoutCallout":           {Map: s.MapCallout, CSS: []string{"callout"}},
		"layout2Cards":            {Map: s.MapCardLayout, CSS: []string{"card"}, JS: []string{"card"}},
		"layout3Cards":            {Map: s.MapCardLayout, CSS: []string{"card"}, JS: []string{"card"}},
		"layout4Cards":            {Map: s.MapCardLayout, CSS: []string{"card"}, JS: []string{"card"}},
		"layout5Cards":            {Map: s.MapCardLayout, CSS: []string{"card"}, JS: []string{"card"}},
		"layoutPictoBlocks":       {Map: s.MapPictoLayout, CSS: []string{"picto"}},
		"textOneColumn":           {Map: s.mapTextColumnsN(1), CSS: []string{"text"}},
		"textTwoColumns":          {Map: s.mapTextColumnsN(2), CSS: []string{"text"}},
		"textThreeColumns":        {Map: s.mapTextColumnsN(3), CSS: []string{"text"}},
		"textFourColumns":         {Map: s.mapTextColumnsN(4), CSS: []string{"text"}},
	}
	return s
}

// Handler looks up the registered handler for a content type tag.
func (s *MapperService) Handler(contentType string) (ContentHandler, bool) {
	h, ok := s.registry[contentType]
	return h, ok
}

// EntryByID resolves an embedded entry reference for the rich text renderer.
func (s *MapperService) EntryByID(ctx context.Context, id string) (*content.Entry, error) {
	return s.client.Entry(ctx, id, cms.EntryOptions{IncludeDepth: 1})
}

// AssetByID resolves an embedded asset reference for the rich text renderer.
func (s *MapperService) AssetByID(ctx context.Context, id string) (*content.Asset, error) {
	return s.client.Asset(ctx, id)
}

func (s *MapperService) renderer(pc *pages.PageContext) *templates.RichTextRenderer {
	return templates.NewRichTextRenderer(s, pc)
}

// renderBody renders an optional rich text field, degrading to "" when the
// field is absent.
func (s *MapperService) renderBody(ctx context.Context, pc *pages.PageContext, node *richtext.Node) (string, error) {
	if node == nil {
		return "", nil
	}
	return s.renderer(pc).Render(ctx, node)
}

// joinClasses joins non-empty class fragments with single spaces.
func joinClasses(classes ...string) string {
	var out []string
	for _, c := range classes {
		if c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(out, " ")
}

// MapText produces the view-model for a page-level rich text body slot.
func (s *MapperService) MapText(ctx context.Context, pc *pages.PageContext, body *richtext.Node) (pages.ViewModel, error) {
	rendered, err := s.renderBody(ctx, pc, body)
	if err != nil {
		return nil, err
	}
	return pages.ViewModel{
		"component":   "text",
		"body":        rendered,
		"width_class": styles.WidthClass("Medium"),
	}, nil
}

// MapHero maps a componentHero entry.
func (s *MapperService) MapHero(ctx context.Context, pc *pages.PageContext, entry *content.Entry) (pages.ViewModel, error) {
	fields := entry.Fields

	body, err := s.renderBody(ctx, pc, fields.RichText("body"))
	if err != nil {
		return nil, err
	}

	image := fields.Asset("image")
	imageClass := ""
	if fields.String("image_side") == "Left" {
		imageClass = "mzp-l-reverse"
	}

	return pages.ViewModel{
		"component":     "hero",
		"theme_class":   styles.ThemeClass(fields.String("theme")),
		"product_class": styles.ProductClass(fields.String("product_icon")),
		"title":         fields.String("heading"),
		"tagline":       fields.String("tagline"),
		"body":          body,
		"image":         image.ImageURL(heroImageWidth),
		"highres_image": image.ImageURL(heroImageRetinaWidth),
		"image_class":   imageClass,
		"include_cta":   fields.Entry("cta") != nil,
		"cta":           templates.CTAButton(fields.Entry("cta")),
	}, nil
}

// MapSectionHeading maps a componentSectionHeading entry.
func (s *MapperService) MapSectionHeading(ctx context.Context, pc *pages.PageContext, entry *content.Entry) (pages.ViewModel, error) {
	return pages.ViewModel{
		"component": "sectionHeading",
		"heading":   entry.Fields.String("heading"),
	}, nil
}

var splitLayoutClass = map[string]string{
	"Even":   "",
	"Narrow": "mzp-l-split-body-narrow",
	"Wide":   "mzp-l-split-body-wide",
}

var splitMediaWidthClass = map[string]string{
	"Fill available width":  "",
	"Fill available height": "mzp-l-split-media-constrain-height",
	"Overflow container":    "mzp-l-split-media-overflow",
}

var splitVAlignClass = map[string]string{
	"Top":    "mzp-l-split-v-start",
	"Center": "mzp-l-split-v-center",
	"Bottom": "mzp-l-split-v-end",
}

var splitHAlignClass = map[string]string{
	"Left":   "mzp-l-split-h-start",
	"Center": "mzp-l-split-h-center",
	"Right":  "mzp-l-split-h-end",
}

var splitPopClass = map[string]string{
	"None":   "",
	"Both":   "mzp-l-split-pop",
	"Top":    "mzp-l-split-pop-top",
	"Bottom": "mzp-l-split-pop-bottom",
}

// MapSplit maps a componentSplitBlock entry.
func (s *MapperService) MapSplit(ctx context.Context, pc *pages.PageContext, entry *content.Entry) (pages.ViewModel, error) {
	fields := entry.Fields

	body, err := s.renderBody(ctx, pc, fields.RichText("body"))
	if err != nil {
		return nil, err
	}

	reversedClass := ""
	if fields.String("image_side") == "Left" {
		reversedClass = "mzp-l-split-reversed"
	}

	blockClass := joinClasses(
		reversedClass,
		splitLayoutClass[fields.String("body_width")],
		splitPopClass[fields.String("image_pop")],
	)
	bodyClass := joinClasses(
		splitVAlignClass[fields.String("body_vertical_alignment")],
		splitHAlignClass[fields.String("body_horizontal_alignment")],
	)
	mediaClass := splitMediaWidthClass[fields.String("image_width")]

	centerClass := ""
	if fields.Contains("mobile_display", "Center content") {
		centerClass = "mzp-l-split-center-on-sm-md"
	}
	hideMediaClass := ""
	if fields.Contains("mobile_display", "Hide image") {
		hideMediaClass = "mzp-l-split-hide-media-on-sm-md"
	}

	image := fields.Asset("image")
	themeClass := styles.ThemeClass(fields.String("theme"))

	return pages.ViewModel{
		"component":     "split",
		"block_class":   blockClass,
		"theme_class":   themeClass,
		"has_bg":        themeClass != "",
		"body_class":    bodyClass,
		"body":          body,
		"media_class":   mediaClass,
		"image":         image.ImageURL(heroImageWidth),
		"highres_image": image.ImageURL(heroImageRetinaWidth),
		"mobile_class":  joinClasses(centerClass, hideMediaClass),
	}, nil
}

// MapCallout maps a layoutCallout entry, indirecting through its
// component_callout reference for the content fields.
func (s *MapperService) MapCallout(ctx context.Context, pc *pages.PageContext, entry *content.Entry) (pages.ViewModel, error) {
	configFields := entry.Fields

	var contentFields content.Fields = content.Fields{}
	if inner := configFields.Entry("component_callout"); inner != nil {
		contentFields = inner.Fields
	}

	body, err := s.renderBody(ctx, pc, contentFields.RichText("body"))
	if err != nil {
		return nil, err
	}

	return pages.ViewModel{
		"component":     "callout",
		"theme_class":   styles.ThemeClass(configFields.String("theme")),
		"product_class": styles.ProductClass(contentFields.String("product_icon")),
		"title":         contentFields.String("heading"),
		"body":          body,
		"cta":           templates.CTAButton(contentFields.Entry("cta")),
	}, nil
}

// youtubeID extracts the video id from a YouTube watch URL, degrading to ""
// when the URL does not parse or has no v parameter.
func youtubeID(youtubeURL string) string {
	if youtubeURL == "" {
		return ""
	}
	u, err := url.Parse(youtubeURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("v")
}

// mapCard maps a componentCard entry at the given aspect ratio.
func (s *MapperService) mapCard(ctx context.Context, pc *pages.PageContext, entry *content.Entry, aspectRatio string) (pages.ViewModel, error) {
	if aspectRatio == "" {
		aspectRatio = "16:9"
	}
	fields := entry.Fields

	body, err := s.renderBody(ctx, pc, fields.RichText("body"))
	if err != nil {
		return nil, err
	}

	var imageURL, highresImageURL string
	if image := fields.Asset("image"); image != nil {
		imageURL = image.CardImageURL(cardImageWidth, styles.Height(cardImageWidth, aspectRatio))
		highresImageURL = image.CardImageURL(cardImageRetinaWidth, styles.Height(cardImageRetinaWidth, aspectRatio))
	}

	aspectClass := ""
	if imageURL != "" {
		aspectClass = styles.AspectRatioClass(aspectRatio)
	}

	return pages.ViewModel{
		"component":         "card",
		"heading":           fields.String("heading"),
		"tag":               fields.String("tag"),
		"link":              fields.String("link"),
		"body":              body,
		"aspect_ratio":      aspectClass,
		"image_url":         imageURL,
		"highres_image_url": highresImageURL,
		"youtube_id":        youtubeID(fields.String("you_tube")),
	}, nil
}

// mapLargeCard maps a layoutLargeCard entry: the nested card's data with the
// layout's own image substituted at hero size and 16:9 framing.
func (s *MapperService) mapLargeCard(ctx context.Context, pc *pages.PageContext, layoutEntry *content.Entry) (pages.ViewModel, error) {
	card := layoutEntry.Fields.Entry("card")
	if card == nil {
		return nil, nil
	}

	vm, err := s.mapCard(ctx, pc, card, "16:9")
	if err != nil {
		return nil, err
	}

	if image := layoutEntry.Fields.Asset("image"); image != nil {
		vm["image_url"] = image.CardImageURL(largeCardWidth, styles.Height(largeCardWidth, "16:9"))
		vm["highres_image_url"] = image.CardImageURL(largeCardRetinaWidth, styles.Height(largeCardRetinaWidth, "16:9"))
	}
	vm["component"] = "large_card"

	return vm, nil
}

// MapCardLayout maps any of the layout2Cards..layout5Cards entries. A 5-card
// layout leads with its large card; the card immediately following the large
// card is framed 1:1 regardless of the layout's declared aspect ratio. The
// override is positional and applies exactly once.
func (s *MapperService) MapCardLayout(ctx context.Context, pc *pages.PageContext, entry *content.Entry) (pages.ViewModel, error) {
	fields := entry.Fields
	layout := entry.ContentType
	aspectRatio := fields.String("aspect_ratio")

	cards := []pages.ViewModel{}
	followsLargeCard := false

	if layout == "layout5Cards" {
		if largeCardEntry := fields.Entry("large_card"); largeCardEntry != nil {
			largeCard, err := s.mapLargeCard(ctx, pc, largeCardEntry)
			if err != nil {
				return nil, err
			}
			if largeCard != nil {
				cards = append(cards, largeCard)
				followsLargeCard = true
			}
		}
	}

	for _, card := range fields.Entries("content") {
		thisAspect := aspectRatio
		if followsLargeCard {
			thisAspect = "1:1"
			followsLargeCard = false
		}
		vm, err := s.mapCard(ctx, pc, card, thisAspect)
		if err != nil {
			return nil, err
		}
		cards = append(cards, vm)
	}

	return pages.ViewModel{
		"component":    "cardLayout",
		"layout_class": styles.LayoutClass(layout),
		"aspect_ratio": aspectRatio,
		"cards":        cards,
	}, nil
}

// mapPicto maps a componentPicto entry.
func (s *MapperService) mapPicto(ctx context.Context, pc *pages.PageContext, entry *content.Entry) (pages.ViewModel, error) {
	fields := entry.Fields

	body, err := s.renderBody(ctx, pc, fields.RichText("body"))
	if err != nil {
		return nil, err
	}

	return pages.ViewModel{
		"component": "picto",
		"heading":   fields.String("heading"),
		"body":      body,
		"image_url": fields.Asset("icon").ImageURL(pictoImageWidth),
	}, nil
}

// MapPictoLayout maps a layoutPictoBlocks entry.
func (s *MapperService) MapPictoLayout(ctx context.Context, pc *pages.PageContext, entry *content.Entry) (pages.ViewModel, error) {
	fields := entry.Fields

	blocksPerRow := "3"
	if n := fields.Int("blocks_per_row"); n > 0 {
		blocksPerRow = strconv.Itoa(n)
	}

	sideClass := ""
	if fields.String("icon_position") == "Side" {
		sideClass = "mzp-t-picto-side"
	}
	centerClass := ""
	if fields.String("block_alignment") == "Center" {
		centerClass = "mzp-t-picto-center"
	}

	layoutClass := joinClasses(
		styles.WidthClass(fields.String("width")),
		styles.ColumnClass(blocksPerRow),
		sideClass,
		centerClass,
		styles.ThemeClass(fields.String("theme")),
	)

	headingLevel := "3"
	if hl := fields.String("heading_level"); len(hl) > 1 {
		headingLevel = hl[1:]
	}

	pictos := []pages.ViewModel{}
	for _, picto := range fields.Entries("content") {
		vm, err := s.mapPicto(ctx, pc, picto)
		if err != nil {
			return nil, err
		}
		pictos = append(pictos, vm)
	}

	return pages.ViewModel{
		"component":     "pictoLayout",
		"layout_class":  layoutClass,
		"heading_level": headingLevel,
		"image_width":   styles.PictoIconSize(fields.String("icon_size")),
		"pictos":        pictos,
	}, nil
}

// mapTextColumnsN returns the handler for an N-column text layout. One
// parameterized mapper serves all four variants; column N's body renders only
// when the variant has that many columns.
func (s *MapperService) mapTextColumnsN(cols int) func(ctx context.Context, pc *pages.PageContext, entry *content.Entry) (pages.ViewModel, error) {
	return func(ctx context.Context, pc *pages.PageContext, entry *content.Entry) (pages.ViewModel, error) {
		return s.mapTextColumns(ctx, pc, cols, entry)
	}
}

func (s *MapperService) mapTextColumns(ctx context.Context, pc *pages.PageContext, cols int, entry *content.Entry) (pages.ViewModel, error) {
	fields := entry.Fields

	layoutClass := joinClasses(
		styles.WidthClass(fields.String("width")),
		styles.ColumnClass(strconv.Itoa(cols)),
		styles.ThemeClass(fields.String("theme")),
	)

	columnFields := []string{"body_column_one", "body_column_two", "body_column_three", "body_column_four"}
	bodies := []string{}
	for i, field := range columnFields {
		if cols <= i {
			break
		}
		body, err := s.renderBody(ctx, pc, fields.RichText(field))
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, body)
	}

	return pages.ViewModel{
		"component":    "textColumns",
		"layout_class": layoutClass,
		"content":      bodies,
	}, nil
}
