// Package render turns stored generated pages into complete HTML documents.
// Rendering is a pure function of stored state, site settings and the
// request host; it performs no writes.
package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/pageforge/internal/db"
	"github.com/pageforge/internal/service"
	"gorm.io/gorm"
)

// relatedLimit caps the cross-link block on every rendered page.
const relatedLimit = 4

// Document is a fully composed response body plus the metadata the HTTP
// layer needs to serve it.
type Document struct {
	Title    string
	HTML     string
	NotFound bool
}

// Dispatcher resolves a slug to markup through the variant table.
type Dispatcher struct {
	pages    *service.PageService
	settings *service.SiteSettingService
}

// NewDispatcher creates a Dispatcher backed by the given database handle.
func NewDispatcher(gdb *gorm.DB) *Dispatcher {
	return &Dispatcher{
		pages:    service.NewPageService(gdb),
		settings: service.NewSiteSettingService(gdb),
	}
}

// variantByTemplateKey is the fixed key-to-variant table. Adding a variant
// means adding a body template and one entry here.
var variantByTemplateKey = map[string]string{
	"landing":       variantLanding,
	"local-service": variantLanding,
	"article":       variantArticle,
	"guide":         variantArticle,
	"minimal":       variantMinimal,
}

func variantFor(templateKey string) string {
	if v, ok := variantByTemplateKey[strings.ToLower(strings.TrimSpace(templateKey))]; ok {
		return v
	}
	return variantMinimal
}

// Render produces the document for a slug. An unknown slug yields a stable
// not-found document, never an error: losing a race with a delete must look
// exactly like the page never existing.
func (d *Dispatcher) Render(base, slug string) (*Document, error) {
	page, err := d.pages.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrGeneratedPageNotFound) {
			return d.notFoundDocument(), nil
		}
		return nil, err
	}

	settings, err := d.settings.GetSettings()
	if err != nil {
		return nil, err
	}

	related, err := d.pages.ListRelated(page.TemplateKey, page.Slug, relatedLimit)
	if err != nil {
		return nil, err
	}

	body, err := renderBody(variantFor(page.TemplateKey), page, related)
	if err != nil {
		return nil, err
	}

	title := page.Title + settings.TitleSuffix
	head := headData{
		Title:       title,
		Description: page.MetaDescription,
		Canonical:   strings.TrimRight(base, "/") + "/p/" + page.Slug,
		SiteName:    settings.SiteName,
		Body:        body,
	}
	if len(page.FAQSchema) > 0 {
		schema, err := json.Marshal(page.FAQSchema)
		if err != nil {
			return nil, fmt.Errorf("marshal faq schema for %q: %w", page.Slug, err)
		}
		head.SchemaJSON = template.JS(schema)
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, head); err != nil {
		return nil, fmt.Errorf("render document for %q: %w", page.Slug, err)
	}

	return &Document{Title: title, HTML: buf.String()}, nil
}

func (d *Dispatcher) notFoundDocument() *Document {
	settings, err := d.settings.GetSettings()
	siteName := service.DefaultSiteName
	if err == nil {
		siteName = settings.SiteName
	}

	var buf bytes.Buffer
	head := headData{
		Title:       "Page not found",
		Description: "The page you are looking for does not exist.",
		SiteName:    siteName,
		Body:        notFoundBody,
	}
	if err := documentTemplate.Execute(&buf, head); err != nil {
		// The not-found template is static; a failure here is a bug.
		return &Document{Title: head.Title, HTML: "<h1>Page not found</h1>", NotFound: true}
	}
	return &Document{Title: head.Title, HTML: buf.String(), NotFound: true}
}

type headData struct {
	Title       string
	Description string
	Canonical   string
	SiteName    string
	SchemaJSON  template.JS
	Body        template.HTML
}

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{- if .Description}}
<meta name="description" content="{{.Description}}">
{{- end}}
{{- if .Canonical}}
<link rel="canonical" href="{{.Canonical}}">
{{- end}}
{{- if .SchemaJSON}}
<script type="application/ld+json">{{.SchemaJSON}}</script>
{{- end}}
</head>
<body>
<header><a href="/">{{.SiteName}}</a></header>
<main>
{{.Body}}
</main>
</body>
</html>
`))

var notFoundBody = template.HTML(`<h1>Page not found</h1>
<p>The page you are looking for does not exist or has been removed.</p>
<p><a href="/">Back to the home page</a></p>`)

// relatedOf trims stored pages down to what the cross-link block needs.
func relatedOf(pages []db.GeneratedPage) []relatedLink {
	links := make([]relatedLink, 0, len(pages))
	for _, page := range pages {
		links = append(links, relatedLink{Slug: page.Slug, Title: page.Title})
	}
	return links
}

type relatedLink struct {
	Slug  string
	Title string
}
