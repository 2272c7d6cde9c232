package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandalign/brandalign/internal/config"
	"github.com/brandalign/brandalign/internal/db"
	"github.com/brandalign/brandalign/internal/db/models"
)

func TestOpenSQLiteMemory(t *testing.T) {
	cfg := &config.Config{DB: config.DB{GormEngine: config.EngineSQLite, Path: ":memory:"}}

	gdb, err := db.Open(cfg)
	require.NoError(t, err)

	for _, m := range []any{&models.Setting{}, &models.History{}, &models.User{}} {
		assert.True(t, gdb.Migrator().HasTable(m))
	}
}

func TestDialectorUnknownEngine(t *testing.T) {
	_, err := db.Dialector(&config.Config{DB: config.DB{GormEngine: "oracle"}})
	require.ErrorIs(t, err, config.ErrUnknownGormEngine)
}

func TestDialectorNames(t *testing.T) {
	for _, engine := range []string{config.EngineSQLite, config.EngineMySQL, config.EnginePostgres} {
		d, err := db.Dialector(&config.Config{DB: config.DB{GormEngine: engine, Path: ":memory:"}})
		require.NoError(t, err)
		assert.Equal(t, engine, d.Name())
	}
}
