package dsn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brandalign/brandalign/internal/config"
	"github.com/brandalign/brandalign/internal/db/dsn"
)

func TestCreate(t *testing.T) {
	db := config.DB{
		Host:     "db.local",
		Port:     3306,
		User:     "brand",
		Password: "secret",
		Name:     "brandalign",
		Extras:   "parseTime=true",
		Path:     "./brandalign.db",
	}

	tests := []struct {
		engine string
		want   string
	}{
		{engine: config.EngineMySQL, want: "brand:secret@tcp(db.local:3306)/brandalign?parseTime=true"},
		{engine: config.EnginePostgres, want: "host=db.local port=3306 user=brand password=secret dbname=brandalign parseTime=true"},
		{engine: config.EngineSQLite, want: "./brandalign.db"},
	}

	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			cfg := &config.Config{DB: db}
			cfg.DB.GormEngine = tt.engine
			assert.Equal(t, tt.want, dsn.Create(cfg))
		})
	}
}

func TestPostgresURL(t *testing.T) {
	cfg := &config.Config{DB: config.DB{
		Host: "pg", Port: 5432, User: "u", Password: "p", Name: "n", Extras: "sslmode=disable",
	}}
	assert.Equal(t, "postgres://u:p@pg:5432/n?sslmode=disable", dsn.PostgresURL(cfg))
}
