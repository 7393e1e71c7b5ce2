// Package middleware provides HTTP middleware for the application.
package middleware

import (
	"time"

	"smartshop/internal/session"

	"github.com/gofiber/fiber/v2"
)

// Locals keys populated by the session middleware.
const (
	LocalsSessionID = "sessionID"
	LocalsSession   = "session"
	LocalsUserID    = "userID"
)

// SessionMiddleware resolves the session cookie into session data.
type SessionMiddleware struct {
	store *session.Store
}

func NewSessionMiddleware(store *session.Store) *SessionMiddleware {
	return &SessionMiddleware{store: store}
}

// Load resolves the cookie if present and stores the session in the
// request context. It never rejects the request: handlers and RequireAuth
// decide what an absent session means.
func (m *SessionMiddleware) Load(c *fiber.Ctx) error {
	id := c.Cookies(session.CookieName)
	if id == "" {
		return c.Next()
	}
	data, err := m.store.Get(c.Context(), id)
	if err != nil {
		// Unknown or expired id: treat as no session.
		return c.Next()
	}
	c.Locals(LocalsSessionID, id)
	c.Locals(LocalsSession, data)
	if data.LoggedIn() {
		c.Locals(LocalsUserID, data.UserID)
	}
	return c.Next()
}

// RequireAuth rejects requests without an authenticated session.
func (m *SessionMiddleware) RequireAuth(c *fiber.Ctx) error {
	if _, ok := c.Locals(LocalsUserID).(uint); !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not logged in"})
	}
	return c.Next()
}

// UserID returns the authenticated user id from the request context.
func UserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(LocalsUserID).(uint); ok {
		return id
	}
	return 0
}

// SessionFromCtx returns the loaded session and its id, when present.
func SessionFromCtx(c *fiber.Ctx) (string, *session.Data, bool) {
	data, ok := c.Locals(LocalsSession).(*session.Data)
	if !ok || data == nil {
		return "", nil, false
	}
	id, _ := c.Locals(LocalsSessionID).(string)
	return id, data, true
}

// SetSessionCookie attaches the session id cookie. The cookie is marked
// transport-secure, script-inaccessible and same-site restricted, with the
// fixed absolute session lifetime.
func SetSessionCookie(c *fiber.Ctx, id string) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    id,
		Expires:  time.Now().Add(session.Lifetime),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/",
	})
}

// ClearSessionCookie expires the session id cookie.
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/",
	})
}
