package config

import (
	"time"

	"github.com/brandalign/brandalign/internal/logger"
)

// Engine names accepted for DB.GormEngine.
const (
	EngineSQLite   = "sqlite"
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
)

// Provider names accepted for Model.Provider.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	Path       string // sqlite database file, ":memory:" for a throwaway database
	GormEngine string // sqlite, mysql or postgres
}

// Model holds the defaults for the generative model provider.
// Values stored by an admin in the model_provider setting take precedence.
type Model struct {
	Provider    string        // gemini or openai
	Name        string        // model name, e.g. gemini-2.5-flash
	APIKey      string        // fallback api key, usually injected via env API_KEY
	BaseURL     string        // optional endpoint override
	Temperature float32       // sampling temperature for analysis calls
	Timeout     time.Duration // upper bound for a single model call
}

// Upload limits for asset intake.
type Upload struct {
	MaxFileSize int64 // bytes
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Model     Model
	Upload    Upload
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool    // enable static file browsing (for development purposes only)
	DisableRecover bool    // disable recover middleware
	Domain         string  // domain name for the webserver
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	Session        Session // session settings
}
