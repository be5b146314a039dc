package main

import (
	"fmt"
	"log"

	"github.com/pageforge/internal/config"
	"github.com/pageforge/internal/db"
	"github.com/pageforge/internal/ingest"
	"github.com/pageforge/internal/service"
)

// Seeds a demo batch so the rendered pages, sitemap and admin listing have
// something to show during local development.
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("failed to initialize database:", err)
	}

	tpl := service.Template{
		TemplateKey:     "local-service",
		Title:           "{keyword} in {city}",
		MetaDescription: "Compare vetted {keyword} providers in {city}. Free quotes.",
		H1:              "Find a reliable {keyword} in {city}",
		Variables:       []string{"keyword", "city"},
		Sections: []string{
			"Every {keyword} in our {city} directory is licensed and insured.",
			"Typical response time in {city} is under two hours.",
		},
		FAQ: []db.FAQItem{
			{Question: "How much does a {keyword} cost in {city}?", Answer: "Most jobs in {city} land between $100 and $400."},
			{Question: "Are your {keyword} providers licensed?", Answer: "Yes, every listed provider is verified."},
		},
	}

	dataset := &ingest.Dataset{
		Headers: []string{"keyword", "city"},
		Rows: []ingest.Row{
			{"keyword": "plumber", "city": "Reno"},
			{"keyword": "plumber", "city": "Sparks"},
			{"keyword": "electrician", "city": "Reno"},
			{"keyword": "roofer", "city": "Carson City"},
		},
	}

	summary, err := service.NewGenerationService(db.DB).Generate(tpl, dataset)
	if err != nil {
		log.Fatal("demo batch failed:", err)
	}

	fmt.Printf("generated %d pages (%d failed)\n", summary.Generated, summary.Failed)
	for _, page := range summary.Pages {
		fmt.Printf("  /p/%s  %s\n", page.Slug, page.Title)
	}
}
