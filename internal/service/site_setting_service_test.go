package service

import "testing"

func TestSiteSettingsDefaults(t *testing.T) {
	svc := NewSiteSettingService(setupServiceTestDB(t))

	settings, err := svc.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings returned error: %v", err)
	}
	if settings.SiteName != DefaultSiteName || settings.TitleSuffix != "" {
		t.Fatalf("unexpected defaults: %+v", settings)
	}
}

func TestSiteSettingsUpdateAndReload(t *testing.T) {
	svc := NewSiteSettingService(setupServiceTestDB(t))

	updated, err := svc.UpdateSettings(SiteSettings{SiteName: "Reno Trades", TitleSuffix: " | Reno Trades"})
	if err != nil {
		t.Fatalf("UpdateSettings returned error: %v", err)
	}
	if updated.SiteName != "Reno Trades" {
		t.Fatalf("unexpected updated settings: %+v", updated)
	}

	reloaded, err := svc.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings returned error: %v", err)
	}
	if reloaded.TitleSuffix != "| Reno Trades" {
		t.Fatalf("unexpected reloaded suffix %q", reloaded.TitleSuffix)
	}
}

func TestSiteSettingsBlankNameFallsBack(t *testing.T) {
	svc := NewSiteSettingService(setupServiceTestDB(t))

	updated, err := svc.UpdateSettings(SiteSettings{SiteName: "  "})
	if err != nil {
		t.Fatalf("UpdateSettings returned error: %v", err)
	}
	if updated.SiteName != DefaultSiteName {
		t.Fatalf("expected fallback site name, got %q", updated.SiteName)
	}
}
