package db

import "gorm.io/gorm"

// DeployedPage links a generated page to a published copy on an external
// host. DeploySlug is allocated with the same collision rules as page slugs.
type DeployedPage struct {
	gorm.Model
	PageSlug   string `gorm:"index;not null"`
	DeploySlug string `gorm:"uniqueIndex;not null"`
	URL        string
	Provider   string `gorm:"size:50"`
}
