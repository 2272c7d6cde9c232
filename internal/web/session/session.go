// Package session keeps the per-visitor state of the dashboard: the selected role,
// the upload draft and the review of the last analysis.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/rs/zerolog/log"

	"github.com/brandalign/brandalign/internal/governance"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "session"

	localsKey = "sessionData"
)

// Store is the global session store instance.
var Store *session.Store

// Data represents the session data structure.
type Data struct {
	Role   governance.UserRole    `json:"role"`
	Draft  governance.UploadState `json:"draft"`
	Review *governance.Review     `json:"review,omitempty"`
	Tab    governance.Tab         `json:"tab,omitempty"`
	Flash  string                 `json:"flash,omitempty"`
}

// NewData returns the state of a first visit.
func NewData() *Data {
	return &Data{
		Role:  governance.RoleGeneralUser,
		Draft: governance.DefaultUploadState(),
		Tab:   governance.TabAnalysis,
	}
}

// IsAdmin reports whether the visitor is in the admin view mode.
func (s *Data) IsAdmin() bool {
	return s.Role == governance.RoleAdmin
}

// PopFlash returns the one-time message and clears it.
func (s *Data) PopFlash() string {
	msg := s.Flash
	s.Flash = ""

	return msg
}

// Write writes the session data for the given session ID with an expiration duration.
// The uploaded file itself is not persisted, only its metadata.
func (s *Data) Write(sessionID string, exp time.Duration) error {
	persisted := *s
	persisted.Draft.FileBase64 = ""

	out, err := json.Marshal(&persisted)
	if err != nil {
		return err
	}

	return Store.Storage.Set(sessionID, out, exp)
}

// Read reads the session data for the given session ID.
func (s *Data) Read(sessionID string) error {
	_, err := s.load(sessionID)

	return err
}

// load reads the session data and reports whether the store knew the ID.
func (s *Data) load(sessionID string) (bool, error) {
	byteData, err := Store.Storage.Get(sessionID)
	if err != nil {
		return false, err
	}

	if len(byteData) == 0 {
		return false, nil
	}

	return true, json.Unmarshal(byteData, s)
}

// Init initializes the session store with the provided storage backend.
// A nil storage keeps sessions in memory.
func Init(storage fiber.Storage) {
	Store = session.New(session.Config{
		Storage: storage,
	})
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// Middleware loads the session data into the request locals and writes it back
// after the handler chain ran.
func Middleware(exp time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(CookieName)
		data := NewData()
		found := false

		if id != "" {
			var err error
			if found, err = data.load(id); err != nil {
				log.Warn().Err(err).Msg("failed to read session, starting a new one")

				data = NewData()
				found = false
			}
		}

		// only IDs issued here are used, unknown ones get replaced
		if !found {
			var err error
			if id, err = GenerateSessionID(); err != nil {
				return err
			}
		}

		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    id,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Expires:  time.Now().Add(exp),
		})

		c.Locals(localsKey, data)
		c.Locals("Role", data.Role)

		chainErr := c.Next()

		if err := data.Write(id, exp); err != nil {
			log.Error().Err(err).Msg("failed to write session")
		}

		return chainErr
	}
}

// From returns the session data of the request. Outside of Middleware it returns
// fresh data that is not persisted.
func From(c *fiber.Ctx) *Data {
	if data, ok := c.Locals(localsKey).(*Data); ok {
		return data
	}

	return NewData()
}
