package services

import (
	"fmt"

	"community_justice_go/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoadSettings returns the singleton settings row, creating it with
// defaults on first use. The create is an atomic insert-or-ignore on the
// fixed primary key, so concurrent first-time initialization cannot
// produce a second row.
func LoadSettings(db *gorm.DB) (*models.PlatformSettings, error) {
	defaults := models.PlatformSettings{
		ID:             models.SettingsRowID,
		PrimaryColor:   models.DefaultPrimaryColor,
		SecondaryColor: models.DefaultSecondaryColor,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&defaults).Error; err != nil {
		return nil, fmt.Errorf("failed to ensure settings row: %w", err)
	}

	var settings models.PlatformSettings
	if err := db.First(&settings, "id = ?", models.SettingsRowID).Error; err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &settings, nil
}

// SettingsInput carries the editable branding fields
type SettingsInput struct {
	FooterText     string `json:"footer_text" form:"footer_text"`
	PrimaryColor   string `json:"primary_color" form:"primary_color"`
	SecondaryColor string `json:"secondary_color" form:"secondary_color"`
}

// UpdateSettings applies branding changes to the singleton row. Changed
// columns go through a single Updates on the fixed ID so concurrent
// updates cannot overwrite each other's fields.
func UpdateSettings(db *gorm.DB, input *SettingsInput) (*models.PlatformSettings, error) {
	if _, err := LoadSettings(db); err != nil {
		return nil, err
	}

	changes := map[string]any{"footer_text": input.FooterText}
	if input.PrimaryColor != "" {
		changes["primary_color"] = input.PrimaryColor
	}
	if input.SecondaryColor != "" {
		changes["secondary_color"] = input.SecondaryColor
	}

	err := db.Model(&models.PlatformSettings{}).
		Where("id = ?", models.SettingsRowID).
		Updates(changes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return LoadSettings(db)
}

// UpdateSettingsImage stores the storage key of an uploaded branding image
func UpdateSettingsImage(db *gorm.DB, field, key string) (*models.PlatformSettings, error) {
	if _, err := LoadSettings(db); err != nil {
		return nil, err
	}

	var column string
	switch field {
	case "logo":
		column = "logo_key"
	case "header_image":
		column = "header_image_key"
	default:
		return nil, fmt.Errorf("unknown settings image field %q", field)
	}

	err := db.Model(&models.PlatformSettings{}).
		Where("id = ?", models.SettingsRowID).
		Update(column, key).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update settings image: %w", err)
	}
	return LoadSettings(db)
}
