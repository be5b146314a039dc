package db

import "gorm.io/gorm"

// SiteSetting stores admin-configurable key/value pairs.
type SiteSetting struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName keeps the table name plural and explicit.
func (SiteSetting) TableName() string {
	return "site_settings"
}

const (
	// SettingKeySiteName is the site name shown in rendered documents.
	SettingKeySiteName = "site_name"
	// SettingKeyTitleSuffix is appended to every rendered page title.
	SettingKeyTitleSuffix = "title_suffix"
)
