package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pageforge/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRenderTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.GeneratedPage{}, &db.SiteSetting{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return gdb
}

func insertPage(t *testing.T, gdb *gorm.DB, page *db.GeneratedPage) {
	t.Helper()
	if err := gdb.Create(page).Error; err != nil {
		t.Fatalf("failed to insert test page: %v", err)
	}
}

func TestRenderComposesHeadAndBody(t *testing.T) {
	gdb := setupRenderTestDB(t)
	insertPage(t, gdb, &db.GeneratedPage{
		Slug:            "plumber-reno",
		Title:           "plumber in Reno",
		MetaDescription: "Find a trusted plumber in Reno.",
		H1:              "Hire a plumber in Reno",
		Sections:        []string{"We cover the whole metro area."},
		TemplateKey:     "unknown-key",
	})

	doc, err := NewDispatcher(gdb).Render("https://example.com", "plumber-reno")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if doc.NotFound {
		t.Fatal("expected document to be found")
	}

	for _, want := range []string{
		"<title>plumber in Reno</title>",
		`<meta name="description" content="Find a trusted plumber in Reno.">`,
		`<link rel="canonical" href="https://example.com/p/plumber-reno">`,
		"<h1>Hire a plumber in Reno</h1>",
		"We cover the whole metro area.",
	} {
		if !strings.Contains(doc.HTML, want) {
			t.Fatalf("document missing %q:\n%s", want, doc.HTML)
		}
	}

	// No FAQ schema stored, so no structured data block.
	if strings.Contains(doc.HTML, "application/ld+json") {
		t.Fatal("expected no structured data block for empty schema")
	}
}

func TestRenderInjectsFAQSchemaWhenPresent(t *testing.T) {
	gdb := setupRenderTestDB(t)
	insertPage(t, gdb, &db.GeneratedPage{
		Slug:        "plumber-reno",
		Title:       "plumber in Reno",
		H1:          "Plumber",
		TemplateKey: "landing",
		FAQ:         []db.FAQItem{{Question: "A?", Answer: "B."}},
		FAQSchema: map[string]any{
			"@context": "https://schema.org",
			"@type":    "FAQPage",
		},
	})

	doc, err := NewDispatcher(gdb).Render("https://example.com", "plumber-reno")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	if !strings.Contains(doc.HTML, `<script type="application/ld+json">`) {
		t.Fatalf("expected structured data block:\n%s", doc.HTML)
	}
	if !strings.Contains(doc.HTML, `"@type":"FAQPage"`) {
		t.Fatalf("expected schema payload:\n%s", doc.HTML)
	}
	// Landing variant renders FAQ entries as an accordion.
	if !strings.Contains(doc.HTML, "<details><summary>A?</summary>") {
		t.Fatalf("expected landing faq markup:\n%s", doc.HTML)
	}
}

func TestRenderLinksRelatedPagesOfSameTemplateKey(t *testing.T) {
	gdb := setupRenderTestDB(t)
	for _, slug := range []string{"a", "b", "c"} {
		insertPage(t, gdb, &db.GeneratedPage{
			Slug:        slug,
			Title:       "page " + slug,
			H1:          "Page " + slug,
			TemplateKey: "landing",
		})
	}
	insertPage(t, gdb, &db.GeneratedPage{
		Slug: "other", Title: "other", H1: "Other", TemplateKey: "guide",
	})

	doc, err := NewDispatcher(gdb).Render("https://example.com", "a")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	if !strings.Contains(doc.HTML, `href="/p/b"`) || !strings.Contains(doc.HTML, `href="/p/c"`) {
		t.Fatalf("expected related links:\n%s", doc.HTML)
	}
	if strings.Contains(doc.HTML, `href="/p/a"`) {
		t.Fatal("related links must exclude the page itself")
	}
	if strings.Contains(doc.HTML, `href="/p/other"`) {
		t.Fatal("related links must share the template key")
	}
}

func TestRenderArticleVariantTreatsSectionsAsMarkdown(t *testing.T) {
	gdb := setupRenderTestDB(t)
	insertPage(t, gdb, &db.GeneratedPage{
		Slug:        "guide-page",
		Title:       "Guide",
		H1:          "Guide",
		Sections:    []string{"## Step one\n\nDo the **first** thing."},
		TemplateKey: "guide",
	})

	doc, err := NewDispatcher(gdb).Render("https://example.com", "guide-page")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	if !strings.Contains(doc.HTML, "<h2") || !strings.Contains(doc.HTML, "<strong>first</strong>") {
		t.Fatalf("expected markdown-rendered sections:\n%s", doc.HTML)
	}
}

func TestRenderUnknownSlugYieldsNotFoundDocument(t *testing.T) {
	gdb := setupRenderTestDB(t)

	doc, err := NewDispatcher(gdb).Render("https://example.com", "nope")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !doc.NotFound {
		t.Fatal("expected not-found document")
	}
	if !strings.Contains(doc.HTML, "Page not found") {
		t.Fatalf("unexpected not-found markup:\n%s", doc.HTML)
	}
}

func TestRenderAppliesTitleSuffixFromSettings(t *testing.T) {
	gdb := setupRenderTestDB(t)
	if err := gdb.Create(&db.SiteSetting{Key: db.SettingKeyTitleSuffix, Value: " | Reno Trades"}).Error; err != nil {
		t.Fatalf("failed to seed setting: %v", err)
	}
	insertPage(t, gdb, &db.GeneratedPage{
		Slug: "plumber", Title: "plumber in Reno", H1: "Plumber", TemplateKey: "minimal",
	})

	doc, err := NewDispatcher(gdb).Render("https://example.com", "plumber")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(doc.HTML, "<title>plumber in Reno | Reno Trades</title>") {
		t.Fatalf("expected suffixed title:\n%s", doc.HTML)
	}
}
