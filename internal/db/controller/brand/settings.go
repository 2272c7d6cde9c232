// Package brand stores the brand guidelines used by every analysis.
package brand

import (
	"errors"

	"gorm.io/gorm"

	"github.com/brandalign/brandalign/internal/db/controller/setting"
	"github.com/brandalign/brandalign/internal/governance"
)

const (
	// SettingKeyBrandSettings is the key used to store the brand guidelines in the database.
	SettingKeyBrandSettings = "brand_settings"
)

// Load returns the stored guidelines, or the default guidelines when none were saved yet.
func Load(db *gorm.DB) (governance.BrandSettings, error) {
	var s governance.BrandSettings

	err := setting.Load(db, SettingKeyBrandSettings, &s)
	if errors.Is(err, setting.ErrSettingNotFound) {
		return governance.DefaultBrandSettings(), nil
	}

	return s, err
}

// Save stores s as the new guidelines and bumps the version.
// The stored version is returned in s.
func Save(db *gorm.DB, s *governance.BrandSettings) error {
	return db.Transaction(func(tx *gorm.DB) error {
		current, err := Load(tx)
		if err != nil {
			return err
		}

		s.Version = current.Version + 1

		return setting.Save(tx, SettingKeyBrandSettings, s)
	})
}

// Seed stores the default guidelines when nothing is stored yet.
func Seed(db *gorm.DB) error {
	_, err := setting.Get(db, SettingKeyBrandSettings)
	if !errors.Is(err, setting.ErrSettingNotFound) {
		return err
	}

	return setting.Save(db, SettingKeyBrandSettings, governance.DefaultBrandSettings())
}
