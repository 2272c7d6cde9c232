// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// EnvConfigJSON names the env variable holding a JSON document merged over the TOML config.
const EnvConfigJSON = "BRANDALIGN_CONFIG_JSON"

const (
	defaultShutDownTime   = 5
	defaultModelName      = "gemini-2.5-flash"
	defaultModelTimeout   = 120 * time.Second
	defaultTemperature    = 0.2
	defaultMaxFileSize    = 20 << 20
	defaultSessionExpiry  = 24 * time.Hour
	invalidErrMessage     = "invalid config"
	readMainConfigMessage = "failed to read main config file"
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, readMainConfigMessage)
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, readMainConfigMessage)
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings and fill in defaults.
func validate(c *Config) error {
	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = defaultSessionExpiry
	}

	switch c.DB.GormEngine {
	case "":
		c.DB.GormEngine = EngineSQLite
	case EngineSQLite, EngineMySQL, EnginePostgres:
	default:
		return errors.Wrap(ErrUnknownGormEngine, invalidErrMessage)
	}

	switch c.Model.Provider {
	case "":
		c.Model.Provider = ProviderGemini
	case ProviderGemini, ProviderOpenAI:
	default:
		return errors.Wrap(ErrUnknownModelProvider, invalidErrMessage)
	}

	if c.Model.Name == "" {
		c.Model.Name = defaultModelName
	}

	if c.Model.Temperature == 0 {
		c.Model.Temperature = defaultTemperature
	}

	if c.Model.Timeout == 0 {
		c.Model.Timeout = defaultModelTimeout
	}

	if c.Upload.MaxFileSize == 0 {
		c.Upload.MaxFileSize = defaultMaxFileSize
	}

	return nil
}
