package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pageforge/internal/db"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const (
	variantMinimal = "minimal"
	variantLanding = "landing"
	variantArticle = "article"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

type bodyData struct {
	H1           string
	Description  string
	Sections     []string
	SectionsHTML []template.HTML
	FAQ          []db.FAQItem
	Related      []relatedLink
}

var bodyTemplates = template.Must(template.New("bodies").Parse(`
{{define "related"}}
{{- if .Related}}
<aside class="related">
<h2>Related pages</h2>
<ul>
{{- range .Related}}
<li><a href="/p/{{.Slug}}">{{.Title}}</a></li>
{{- end}}
</ul>
</aside>
{{- end}}
{{end}}

{{define "faq-list"}}
{{- if .FAQ}}
<section class="faq">
<h2>Frequently asked questions</h2>
{{- range .FAQ}}
<h3>{{.Question}}</h3>
<p>{{.Answer}}</p>
{{- end}}
</section>
{{- end}}
{{end}}

{{define "minimal"}}<article>
<h1>{{.H1}}</h1>
{{- range .Sections}}
<p>{{.}}</p>
{{- end}}
{{template "faq-list" .}}
{{template "related" .}}
</article>{{end}}

{{define "landing"}}<article class="landing">
<section class="hero">
<h1>{{.H1}}</h1>
{{- if .Description}}
<p class="lede">{{.Description}}</p>
{{- end}}
</section>
{{- if .Sections}}
<section class="cards">
{{- range .Sections}}
<div class="card"><p>{{.}}</p></div>
{{- end}}
</section>
{{- end}}
{{- if .FAQ}}
<section class="faq">
<h2>Frequently asked questions</h2>
{{- range .FAQ}}
<details><summary>{{.Question}}</summary><p>{{.Answer}}</p></details>
{{- end}}
</section>
{{- end}}
{{template "related" .}}
</article>{{end}}

{{define "article"}}<article class="article">
<h1>{{.H1}}</h1>
{{- range .SectionsHTML}}
<section>{{.}}</section>
{{- end}}
{{template "faq-list" .}}
{{template "related" .}}
</article>{{end}}
`))

// renderBody executes the variant's body template. The article variant
// treats section text as markdown and sanitizes the result; the others show
// sections as plain text through the template engine's escaping.
func renderBody(variant string, page *db.GeneratedPage, related []db.GeneratedPage) (template.HTML, error) {
	data := bodyData{
		H1:          page.H1,
		Description: page.MetaDescription,
		Sections:    page.Sections,
		FAQ:         page.FAQ,
		Related:     relatedOf(related),
	}

	if variant == variantArticle {
		data.SectionsHTML = make([]template.HTML, 0, len(page.Sections))
		for _, section := range page.Sections {
			rendered, err := renderMarkdown(section)
			if err != nil {
				return "", err
			}
			data.SectionsHTML = append(data.SectionsHTML, rendered)
		}
	}

	var buf bytes.Buffer
	if err := bodyTemplates.ExecuteTemplate(&buf, variant, data); err != nil {
		return "", fmt.Errorf("render %s body: %w", variant, err)
	}
	return template.HTML(buf.String()), nil
}

func renderMarkdown(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes())), nil
}
