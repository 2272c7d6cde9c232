package models

import (
	"time"
)

// History is the stored summary of a finished analysis.
type History struct {
	ID        uint64  `gorm:"primaryKey"`
	Filename  string  `gorm:"size:255;not null"`
	AssetType string  `gorm:"size:50;index"`
	Score     float64 `gorm:"not null"`
	Purpose   string  `gorm:"size:50;index"`
	Region    string  `gorm:"size:100"`
	Issues    int     `gorm:"not null"`
	Status    string  `gorm:"size:20;index"`

	// BrandSettingsVersion is the guideline version the analysis ran with.
	BrandSettingsVersion string    `gorm:"size:20"`
	CreatedAt            time.Time `gorm:"index"`
}
