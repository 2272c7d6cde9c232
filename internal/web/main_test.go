package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandalign/brandalign/internal/config"
	"github.com/brandalign/brandalign/internal/web/session"
	"github.com/brandalign/brandalign/internal/web/webtest"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	session.Init(nil)

	cfg := &config.Config{
		Title:  "BrandAlign",
		Upload: config.Upload{MaxFileSize: 1 << 20},
		Webserver: config.Webserver{
			Port:    8080,
			URL:     "http://localhost:8080",
			Session: config.Session{ExpiryTime: time.Hour},
		},
	}

	s, err := New(cfg, webtest.SetupDB(t))
	require.NoError(t, err)

	return s
}

func TestNew_NilArguments(t *testing.T) {
	_, err := New(nil, webtest.SetupDB(t))
	require.Error(t, err)

	_, err = New(&config.Config{}, nil)
	require.Error(t, err)
}

func TestCheckAlive(t *testing.T) {
	s := newTestService(t)

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, CheckAlivePath, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	s.alive.Store(true)

	resp, err = s.App.Test(httptest.NewRequest(http.MethodGet, CheckAlivePath, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestService(t)

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, MetricsPath, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestService(t)

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, CheckAlivePath, nil))
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get("X-Request-ID"), 36)
}

func TestLandingPageFollowsRole(t *testing.T) {
	s := newTestService(t)
	client := webtest.NewClient(t, s.App)

	resp := client.Get("/")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/upload", resp.Header.Get("Location"))

	resp = client.PostForm(RolePath, url.Values{"role": {"ADMIN"}})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/analytics", resp.Header.Get("Location"))

	resp = client.Get("/")
	assert.Equal(t, "/admin/analytics", resp.Header.Get("Location"))
}

func TestPagesRenderWithEmbeddedTemplates(t *testing.T) {
	s := newTestService(t)
	client := webtest.NewClient(t, s.App)

	resp := client.Get("/upload")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Upload Asset")
	assert.Contains(t, string(body), "Switch to Admin")
	assert.NotContains(t, string(body), "/admin/brand")

	client.PostForm(RolePath, url.Values{"role": {"ADMIN"}})

	for _, page := range []string{"/history", "/admin/analytics", "/admin/brand", "/admin/provider", "/admin/user"} {
		resp = client.Get(page)
		assert.Equal(t, http.StatusOK, resp.StatusCode, page)

		body, err = io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "Switch to User", page)
	}
}

func TestStaticFiles(t *testing.T) {
	s := newTestService(t)

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
