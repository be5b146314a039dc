package db

import "gorm.io/gorm"

// FAQItem is one question/answer pair carried by a generated page.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GeneratedPage is one document produced from a template and a data row.
// Slug is assigned once and never changes; the unique index is the final
// guard against two concurrent batches allocating the same slug.
type GeneratedPage struct {
	gorm.Model
	Slug            string            `gorm:"uniqueIndex;not null"`
	Title           string            `gorm:"not null"`
	MetaDescription string            `gorm:"type:text"`
	H1              string
	Sections        []string          `gorm:"type:text;serializer:json"`
	FAQ             []FAQItem         `gorm:"type:text;serializer:json"`
	FAQSchema       map[string]any    `gorm:"type:text;serializer:json"`
	Vars            map[string]string `gorm:"type:text;serializer:json"`
	TemplateKey     string            `gorm:"index;not null"`
}
