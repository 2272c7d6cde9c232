package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownGormEngine error if config db.gormEngine is not one of sqlite, mysql or postgres.
	ErrUnknownGormEngine = errors.New("toml config db.gormEngine must be sqlite, mysql or postgres")

	// ErrUnknownModelProvider error if config model.provider is not supported.
	ErrUnknownModelProvider = errors.New("toml config model.provider must be gemini or openai")
)
