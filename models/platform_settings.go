package models

import (
	"time"

	"gorm.io/gorm"
)

// SettingsRowID is the fixed primary key of the single settings row
const SettingsRowID = 1

// Default branding colors
const (
	DefaultPrimaryColor   = "#0057B7"
	DefaultSecondaryColor = "#FFD700"
)

// PlatformSettings is the singleton branding configuration. Exactly one row
// exists, keyed by SettingsRowID; creation of a second row and deletion of
// the only row are refused at the storage layer.
type PlatformSettings struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UpdatedAt time.Time `json:"updated_at"`

	LogoKey        string `json:"logo_key,omitempty"`
	HeaderImageKey string `json:"header_image_key,omitempty"`
	FooterText     string `gorm:"type:text" json:"footer_text,omitempty"`
	PrimaryColor   string `gorm:"size:7;not null;default:#0057B7" json:"primary_color"`
	SecondaryColor string `gorm:"size:7;not null;default:#FFD700" json:"secondary_color"`
}

// BeforeCreate pins every row to the fixed identifier so the unique primary
// key makes concurrent first-time initialization safe.
func (s *PlatformSettings) BeforeCreate(tx *gorm.DB) error {
	s.ID = SettingsRowID
	return nil
}

// BeforeDelete refuses deletion of the settings row
func (s *PlatformSettings) BeforeDelete(tx *gorm.DB) error {
	return gorm.ErrRecordNotFound // The singleton row is never deleted
}

// TableName specifies the table name
func (PlatformSettings) TableName() string {
	return "platform_settings"
}
