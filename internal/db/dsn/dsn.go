// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"

	"github.com/brandalign/brandalign/internal/config"
)

// Create builds the Data Source Name for the configured engine.
// sqlite uses the file path as is.
func Create(cfg *config.Config) string {
	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			cfg.DB.Host,
			cfg.DB.Port,
			cfg.DB.User,
			cfg.DB.Password,
			cfg.DB.Name,
		)
		if cfg.DB.Extras != "" {
			out += " " + cfg.DB.Extras
		}

		return out
	case config.EngineMySQL:
		return MySQL(cfg)
	default:
		return cfg.DB.Path
	}
}

// MySQL builds a go-sql-driver style DSN.
func MySQL(cfg *config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.Name,
		cfg.DB.Extras,
	)
}

// PostgresURL builds a postgres connection URI as used by the session storage.
func PostgresURL(cfg *config.Config) string {
	out := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.Name,
	)
	if cfg.DB.Extras != "" {
		out += "?" + cfg.DB.Extras
	}

	return out
}
