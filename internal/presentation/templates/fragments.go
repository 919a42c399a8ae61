package templates

import (
	"bytes"
	"html/template"
	"log"
	"strings"

	"github.com/willowmedia/contentbridge/internal/domain/entities/content"
	"github.com/willowmedia/contentbridge/internal/presentation/styles"
)

var fragmentTemplates = template.Must(template.New("fragments").Parse(
	`{{define "logo"}}<div class="mzp-c-logo mzp-t-logo-{{.Size}}{{with .ProductClass}} {{.}}{{end}}">{{.ProductName}}</div>{{end}}` +
		`{{define "wordmark"}}<div class="mzp-c-wordmark mzp-t-wordmark-{{.Size}}{{with .ProductClass}} {{.}}{{end}}">{{.ProductName}}</div>{{end}}` +
		`{{define "cta"}}<a href="{{.Action}}" class="mzp-c-button{{with .ButtonClass}} {{.}}{{end}}">{{.Label}}</a>{{end}}`,
))

type logoData struct {
	Size         string
	ProductName  string
	ProductClass string
}

type ctaData struct {
	Action      string
	Label       string
	ButtonClass string
}

func executeFragment(name string, data any) string {
	var buf bytes.Buffer
	if err := fragmentTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("ERROR: Failed to execute fragment template '%s': %v", name, err)
		return "<!-- template error -->"
	}
	return buf.String()
}

// Logo renders a product logo fragment from a componentLogo entry.
func Logo(entry *content.Entry) string {
	product := entry.Fields.String("product")
	return executeFragment("logo", logoData{
		Size:         "md",
		ProductName:  product,
		ProductClass: styles.ProductClass(product),
	})
}

// Wordmark renders a product wordmark fragment from a componentWordmark entry.
func Wordmark(entry *content.Entry) string {
	product := entry.Fields.String("product")
	return executeFragment("wordmark", logoData{
		Size:         "md",
		ProductName:  product,
		ProductClass: styles.ProductClass(product),
	})
}

// CTAButton renders a call-to-action button fragment from a
// componentCtaButton entry. The class composes three independently optional
// flags: product theme, secondary styling, and size.
func CTAButton(entry *content.Entry) string {
	if entry == nil {
		return ""
	}
	fields := entry.Fields

	var classes []string
	if fields.Has("product") {
		classes = append(classes, "mzp-t-product")
	}
	if fields.String("theme") == "Secondary" {
		classes = append(classes, "mzp-t-secondary")
	}
	if abbr := styles.WidthAbbr(fields.String("size")); abbr != "" {
		classes = append(classes, "mzp-t-"+abbr)
	}

	return executeFragment("cta", ctaData{
		Action:      fields.String("action"),
		Label:       fields.String("label"),
		ButtonClass: strings.Join(classes, " "),
	})
}
