package service

import (
	"fmt"
	"strings"

	"github.com/pageforge/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultSiteName is used until an admin configures one.
const DefaultSiteName = "Pageforge"

// SiteSettings describes the admin-configurable rendering context.
type SiteSettings struct {
	SiteName    string `json:"siteName"`
	TitleSuffix string `json:"titleSuffix"`
}

// SiteSettingService reads and updates site settings.
type SiteSettingService struct {
	db *gorm.DB
}

// NewSiteSettingService creates a SiteSettingService instance.
func NewSiteSettingService(gdb *gorm.DB) *SiteSettingService {
	return &SiteSettingService{db: gdb}
}

var settingKeys = []string{
	db.SettingKeySiteName,
	db.SettingKeyTitleSuffix,
}

// GetSettings reads the stored settings, filling defaults where unset.
func (s *SiteSettingService) GetSettings() (SiteSettings, error) {
	result := SiteSettings{SiteName: DefaultSiteName}

	var records []db.SiteSetting
	if err := s.db.Where("key IN ?", settingKeys).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load site settings: %w", err)
	}

	for _, record := range records {
		switch record.Key {
		case db.SettingKeySiteName:
			if strings.TrimSpace(record.Value) != "" {
				result.SiteName = record.Value
			}
		case db.SettingKeyTitleSuffix:
			result.TitleSuffix = record.Value
		}
	}

	return result, nil
}

// UpdateSettings persists the settings, falling back to the default site
// name when none was provided.
func (s *SiteSettingService) UpdateSettings(input SiteSettings) (SiteSettings, error) {
	sanitized := SiteSettings{
		SiteName:    strings.TrimSpace(input.SiteName),
		TitleSuffix: strings.TrimSpace(input.TitleSuffix),
	}
	if sanitized.SiteName == "" {
		sanitized.SiteName = DefaultSiteName
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := upsertSetting(tx, db.SettingKeySiteName, sanitized.SiteName); err != nil {
			return err
		}
		return upsertSetting(tx, db.SettingKeyTitleSuffix, sanitized.TitleSuffix)
	})
	if err != nil {
		return SiteSettings{}, err
	}

	return sanitized, nil
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.SiteSetting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}
