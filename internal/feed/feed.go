// Package feed derives the sitemap and robots directives from the current
// set of stored pages. Both are rebuilt from store state on every request.
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/pageforge/internal/service"
	"gorm.io/gorm"
)

const (
	rootPriority = "1.0"
	pagePriority = "0.8"
)

// Generator builds feeds for the currently stored page set.
type Generator struct {
	pages *service.PageService
}

// NewGenerator creates a feed Generator.
func NewGenerator(gdb *gorm.DB) *Generator {
	return &Generator{pages: service.NewPageService(gdb)}
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap returns the XML sitemap: the site root first, then one entry per
// stored page carrying its update time. The root entry is present even when
// no pages exist yet.
func (g *Generator) Sitemap(base string) ([]byte, error) {
	base = strings.TrimRight(base, "/")

	pages, err := g.pages.ListAll()
	if err != nil {
		return nil, err
	}

	set := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []urlEntry{{
			Loc:        base + "/",
			LastMod:    time.Now().UTC().Format(time.RFC3339),
			ChangeFreq: "daily",
			Priority:   rootPriority,
		}},
	}

	for _, page := range pages {
		set.URLs = append(set.URLs, urlEntry{
			Loc:        base + "/p/" + page.Slug,
			LastMod:    page.UpdatedAt.UTC().Format(time.RFC3339),
			ChangeFreq: "weekly",
			Priority:   pagePriority,
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}

	return append([]byte(xml.Header), body...), nil
}

// Robots returns the crawl policy: content paths open, the admin surface and
// its API closed, with an absolute pointer at the sitemap.
func (g *Generator) Robots(base string) string {
	base = strings.TrimRight(base, "/")

	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /admin/\n")
	b.WriteString("Disallow: /admin/api/\n")
	b.WriteString("\n")
	b.WriteString("Sitemap: " + base + "/sitemap.xml\n")
	return b.String()
}
