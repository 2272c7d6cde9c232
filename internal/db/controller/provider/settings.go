// Package provider stores the generative model provider chosen by an admin.
package provider

import (
	"errors"

	"gorm.io/gorm"

	"github.com/brandalign/brandalign/internal/config"
	"github.com/brandalign/brandalign/internal/db/controller/setting"
)

const (
	// SettingKeyModelProvider is the key used to store the provider settings in the database.
	SettingKeyModelProvider = "model_provider"
)

type (
	// Settings represents the model provider configuration.
	Settings struct {
		Provider string `form:"provider" json:"provider" validate:"required,oneof=gemini openai"`
		Model    string `form:"model"    json:"model"    validate:"required,max=100"`
		APIKey   string `form:"api_key"  json:"apiKey"   validate:"omitempty,min=8"`
		BaseURL  string `form:"base_url" json:"baseUrl"  validate:"omitempty,url"`
	}
)

// FromConfig returns the provider defaults of the configuration file.
func FromConfig(cfg *config.Model) Settings {
	return Settings{
		Provider: cfg.Provider,
		Model:    cfg.Name,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
	}
}

// Load loads the provider settings from the database.
func (p *Settings) Load(db *gorm.DB) error {
	return setting.Load(db, SettingKeyModelProvider, p)
}

// LoadOrDefault loads the stored settings and fills every empty field from the config defaults.
func (p *Settings) LoadOrDefault(db *gorm.DB, cfg *config.Model) error {
	if err := p.Load(db); err != nil && !errors.Is(err, setting.ErrSettingNotFound) {
		return err
	}

	def := FromConfig(cfg)

	if p.Provider == "" {
		p.Provider = def.Provider
	}

	if p.Model == "" {
		p.Model = def.Model
	}

	if p.APIKey == "" {
		p.APIKey = def.APIKey
	}

	if p.BaseURL == "" {
		p.BaseURL = def.BaseURL
	}

	return nil
}

// Save saves the provider settings to the database.
func (p *Settings) Save(db *gorm.DB) error {
	return setting.Save(db, SettingKeyModelProvider, p)
}

// MaskedAPIKey returns the key with everything but the last four characters hidden.
func (p *Settings) MaskedAPIKey() string {
	const visible = 4

	if len(p.APIKey) <= visible {
		return ""
	}

	masked := make([]byte, len(p.APIKey)-visible)
	for i := range masked {
		masked[i] = '*'
	}

	return string(masked) + p.APIKey[len(p.APIKey)-visible:]
}
