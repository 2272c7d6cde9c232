package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandalign/brandalign/internal/logger"
	adapter "github.com/brandalign/brandalign/internal/logger/adapter/fiber"
)

// accessLine is the json access log line written by the middleware.
type accessLine struct {
	IP        net.IP `json:"IP"`
	Status    int    `json:"status"`
	URI       string `json:"URI"`
	Method    string `json:"method"`
	Host      string `json:"host"`
	RequestID string `json:"request_id"`
}

func consoleConfig() adapter.Config {
	return adapter.Config{
		Config: logger.Log{
			EnableAccessLogToConsole: true,
			Console:                  logger.Console{Enabled: true},
		},
		RequestIDLocal: "requestid",
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		config     adapter.Config
		targetPath string
		want       *accessLine
	}{
		{
			name:       "empty no output at all",
			targetPath: "/",
		},
		{
			name:       "get / log to console json",
			config:     consoleConfig(),
			targetPath: "/",
			want:       &accessLine{Status: fiber.StatusOK, URI: "/"},
		},
		{
			name:       "unnormalised path is logged unchanged",
			config:     consoleConfig(),
			targetPath: "//history",
			want:       &accessLine{Status: fiber.StatusNotFound, URI: "//history"},
		},
		{
			name:       "query string is kept",
			config:     consoleConfig(),
			targetPath: "/?q=launch",
			want:       &accessLine{Status: fiber.StatusOK, URI: "/?q=launch"},
		},
		{
			name:       "query string on unknown route",
			config:     consoleConfig(),
			targetPath: "/api/v1/history//?page=2&q=aerion%20launch",
			want:       &accessLine{Status: fiber.StatusNotFound, URI: "/api/v1/history//?page=2&q=aerion%20launch"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := testMiddlewareHelper(t, tt.targetPath, tt.config)
			require.NoError(t, err)

			if tt.want == nil {
				assert.Empty(t, output)
				return
			}

			require.NotEmpty(t, output)

			var got accessLine
			require.NoError(t, json.Unmarshal([]byte(output), &got))

			assert.Equal(t, "example.com", got.Host)
			assert.Equal(t, fiber.MethodGet, got.Method)
			assert.Equal(t, tt.want.Status, got.Status)
			assert.Equal(t, net.ParseIP("0.0.0.0"), got.IP)
			assert.Equal(t, tt.want.URI, got.URI)
			assert.Equal(t, "req-1", got.RequestID)
		})
	}
}

func TestCheckAliveIsSkipped(t *testing.T) {
	cfg := consoleConfig()
	cfg.Config.DisableCheckAlive = true
	cfg.CheckAliveURI = "/"

	output, err := testMiddlewareHelper(t, "/", cfg)
	require.NoError(t, err)
	assert.Empty(t, output)
}

func testMiddlewareHelper(t *testing.T, targetPath string, adapterConfig adapter.Config) (string, error) {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	// capture stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	os.Stderr = w

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		Immutable:     true,
	})

	app.Use(func(ctx *fiber.Ctx) error {
		ctx.Locals("requestid", "req-1")
		return ctx.Next()
	})
	app.Use(adapter.New(adapterConfig))

	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString("hello test")
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, targetPath, nil), 100000)
	if err != nil {
		_ = w.Close()
		os.Stdout = stdout
		os.Stderr = stderr

		return "", err
	}

	outC := make(chan string)
	// copy the output in a separate goroutine so printing can't block indefinitely
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout
	os.Stderr = stderr
	out := <-outC

	return out, nil
}
