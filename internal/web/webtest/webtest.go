// Package webtest holds helpers shared by the handler tests.
package webtest

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/brandalign/brandalign/internal/db"
	"github.com/brandalign/brandalign/internal/genai"
	"github.com/brandalign/brandalign/internal/web/session"
)

// ValidAnalysis is a model reply that satisfies the analysis schema.
const ValidAnalysis = `{
  "overallScore": 72,
  "confidenceScore": 88,
  "categories": {
    "visual": {"score": 80, "layoutComplexity": "Optimal", "metrics": []},
    "cultural": {"score": 65, "toneDrift": 30, "metrics": []},
    "compliance": {"score": 70, "riskAssessment": "Medium", "metrics": [], "claims": []}
  },
  "culturalDeepDive": {"regionDetected": "Global", "suitabilitySummary": "Fine.", "insights": []},
  "issues": [
    {"id": "c1", "category": "Compliance", "subcategory": "Banned Terms", "description": "uses synergy", "suggestion": "remove it", "severity": "High", "priorityScore": 90},
    {"id": "u1", "category": "Cultural", "subcategory": "Tone", "description": "too loud", "suggestion": "calm down", "severity": "Low", "priorityScore": 40},
    {"id": "u2", "category": "Cultural", "subcategory": "Idiom", "description": "idiom", "suggestion": "plain words", "severity": "Medium", "priorityScore": 60}
  ],
  "summary": "Decent. Needs work.",
  "correctedText": "Fixed copy."
}`

// FakeGenerator answers every request with a canned reply.
// Replies are used one by one before falling back to Reply.
type FakeGenerator struct {
	mu      sync.Mutex
	Reply   string
	Replies []string
	Err     error
	Calls   []genai.Request
}

// Name implements genai.Generator.
func (f *FakeGenerator) Name() string { return "fake" }

// Generate implements genai.Generator.
func (f *FakeGenerator) Generate(_ context.Context, req genai.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, req)

	if len(f.Replies) > 0 {
		reply := f.Replies[0]
		f.Replies = f.Replies[1:]

		return reply, f.Err
	}

	return f.Reply, f.Err
}

// CallCount returns how many requests were made.
func (f *FakeGenerator) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.Calls)
}

// SetupDB creates a migrated in-memory SQLite database.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")
	require.NoError(t, db.Migrate(gdb), "failed to migrate test database")

	return gdb
}

// Engine is a view engine that records what was rendered.
type Engine struct {
	mu       sync.Mutex
	Template string
	Binding  fiber.Map
}

// Load implements fiber.Views.
func (e *Engine) Load() error { return nil }

// Render implements fiber.Views.
func (e *Engine) Render(w io.Writer, name string, binding interface{}, _ ...string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Template = name
	e.Binding, _ = binding.(fiber.Map)

	_, err := io.WriteString(w, name)

	return err
}

// Get returns a value of the last rendered binding.
func (e *Engine) Get(key string) interface{} {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.Binding[key]
}

// NewApp creates an app with the session middleware and the recording engine.
func NewApp(engine *Engine) *fiber.App {
	session.Init(nil)

	app := fiber.New(fiber.Config{Views: engine})
	app.Use(session.Middleware(time.Hour))

	return app
}

// Client replays the session cookie across requests.
type Client struct {
	t       *testing.T
	app     *fiber.App
	cookies []*http.Cookie
}

// NewClient creates a client for app.
func NewClient(t *testing.T, app *fiber.App) *Client {
	t.Helper()

	return &Client{t: t, app: app}
}

// Do sends req with the session cookie and returns the response.
// The body is closed when the test ends.
func (c *Client) Do(req *http.Request) *http.Response {
	c.t.Helper()

	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)

	c.t.Cleanup(func() {
		_ = resp.Body.Close()
	})

	if cks := resp.Cookies(); len(cks) > 0 {
		c.cookies = cks
	}

	return resp
}

// Get sends a GET request.
func (c *Client) Get(target string) *http.Response {
	return c.Do(httptest.NewRequest(http.MethodGet, target, nil))
}

// PostForm sends an url encoded form.
func (c *Client) PostForm(target string, values url.Values) *http.Response {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	return c.Do(req)
}

// PostMultipart sends a multipart form with an optional file.
func (c *Client) PostMultipart(target string, values url.Values, filename, contentType string, file []byte) *http.Response {
	c.t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for k, vs := range values {
		for _, v := range vs {
			require.NoError(c.t, w.WriteField(k, v))
		}
	}

	if filename != "" {
		h := make(map[string][]string)
		h["Content-Disposition"] = []string{`form-data; name="file"; filename="` + filename + `"`}
		h["Content-Type"] = []string{contentType}

		part, err := w.CreatePart(h)
		require.NoError(c.t, err)

		_, err = part.Write(file)
		require.NoError(c.t, err)
	}

	require.NoError(c.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())

	return c.Do(req)
}

// Session returns the stored session data of the client.
func (c *Client) Session() *session.Data {
	c.t.Helper()

	data := session.NewData()

	for _, ck := range c.cookies {
		if ck.Name == session.CookieName {
			require.NoError(c.t, data.Read(ck.Value))
		}
	}

	return data
}

// SetSession stores data as the client's session.
func (c *Client) SetSession(data *session.Data) {
	c.t.Helper()

	id, err := session.GenerateSessionID()
	require.NoError(c.t, err)
	require.NoError(c.t, data.Write(id, time.Hour))

	c.cookies = []*http.Cookie{{Name: session.CookieName, Value: id}}
}
