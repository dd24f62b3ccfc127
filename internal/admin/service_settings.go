// Copyright (c) 2026 GroupMela. All rights reserved.

package admin

import (
	"context"
	"encoding/json"

	"github.com/groupmela/admin-api/internal/notify"
	"github.com/groupmela/admin-api/internal/platform/apperr"
	"github.com/groupmela/admin-api/internal/platform/constants"
	"github.com/groupmela/admin-api/internal/platform/validate"
	"github.com/groupmela/admin-api/internal/store"
)

// settingsDocID is the fixed key of the single site-settings document.
const settingsDocID = "site"

// SiteSettings is the public site's configurable surface.
type SiteSettings struct {
	SiteName        string `json:"siteName"`
	SiteDescription string `json:"siteDescription"`
	ContactEmail    string `json:"contactEmail"`
	MaintenanceMode bool   `json:"maintenanceMode"`
}

// defaultSettings fills the document before the operator ever saves it.
func defaultSettings() SiteSettings {
	return SiteSettings{
		SiteName:        "GroupMela",
		SiteDescription: "Discover and join WhatsApp groups",
	}
}

/*
Settings reads the current site settings straight from the store.

Settings are not mirrored: they change rarely, and the operator editing them
wants the stored truth, not a possibly-stale snapshot.

# Parameters
  - context: Context for the store read.

# Returns
  - The stored settings, or the defaults when none were ever saved.
*/
func (service *Service) Settings(context context.Context) (SiteSettings, error) {
	snapshot, err := service.store.Snapshot(context, store.CollSettings)
	if err != nil {
		return SiteSettings{}, storeErr(err, "settings")
	}

	raw, ok := snapshot[settingsDocID]
	if !ok {
		return defaultSettings(), nil
	}

	settings := defaultSettings()
	if err := json.Unmarshal(raw, &settings); err != nil {
		return defaultSettings(), nil
	}
	return settings, nil
}

// UpdateSettings persists the site settings document.
func (service *Service) UpdateSettings(context context.Context, settings SiteSettings) error {
	validator := validate.New().
		Required("siteName", settings.SiteName).
		MaxLen("siteName", settings.SiteName, 80).
		MaxLen("siteDescription", settings.SiteDescription, 300)
	if settings.ContactEmail != "" {
		validator.Email("contactEmail", settings.ContactEmail)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	err := service.store.Merge(context, store.CollSettings, settingsDocID, map[string]any{
		"siteName":        settings.SiteName,
		"siteDescription": settings.SiteDescription,
		"contactEmail":    settings.ContactEmail,
		"maintenanceMode": settings.MaintenanceMode,
	})
	if err != nil {
		return storeErr(err, "settings")
	}

	service.center.Publish("Settings saved successfully!", notify.SeveritySuccess)
	service.log.Info("settings_updated", "site_name", settings.SiteName)
	return nil
}

/*
WipeAll erases every collection in the store: categories, groups, reports,
and settings. It is the console's factory reset.

Two independent guards protect it. The request must be explicitly confirmed,
and the operator must type the literal confirmation phrase; a wrong phrase
aborts silently rather than erroring, so a hesitant operator backs out
without ceremony.

# Parameters
  - context: Context for the store writes.
  - confirmed: Whether the client sent the explicit confirmation flag.
  - phrase: The typed confirmation phrase.

# Returns
  - wiped: Whether the store was actually erased.
  - error: [apperr.ConfirmationRequired] when the flag is missing.
*/
func (service *Service) WipeAll(context context.Context, confirmed bool, phrase string) (bool, error) {
	if !confirmed {
		return false, apperr.ConfirmationRequired("wipe all data")
	}

	if phrase != constants.WipeConfirmationPhrase {
		service.log.Info("wipe_aborted_phrase_mismatch")
		return false, nil
	}

	if err := service.store.DeleteAll(context); err != nil {
		return false, storeErr(err, "store")
	}

	// Only the mirrored collections need a refresh; the wiped settings
	// document is read on demand and falls back to defaults.
	service.afterMutation(context, store.Mirrored()...)
	service.center.Publish("All data cleared", notify.SeverityWarning)
	service.log.Warn("store_wiped")
	return true, nil
}
