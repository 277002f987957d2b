package session

import (
	"github.com/gofiber/fiber/v2"

	"github.com/petshopzn/storefront-gateway/internal/domain"
)

const (
	sessionKey   = "session_current"
	sessionIDKey = "session_id"
)

// Middleware resolves the session cookie once per request and exposes the
// result through FromContext. An absent, invalid or stale cookie leaves the
// request unauthenticated; downstream guards decide what that means.
func (m *Manager) Middleware(codec *CookieCodec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value := c.Cookies(codec.Name())
		if value == "" {
			return c.Next()
		}
		sid, err := codec.Parse(value)
		if err != nil {
			return c.Next()
		}
		c.Locals(sessionIDKey, sid)
		if sess := m.Resolve(c.UserContext(), sid); sess != nil {
			c.Locals(sessionKey, sess)
		}
		return c.Next()
	}
}

// FromContext returns the resolved session, or nil when unauthenticated.
func FromContext(c *fiber.Ctx) *domain.Session {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil
	}
	sess, ok := val.(*domain.Session)
	if !ok {
		return nil
	}
	return sess
}

// IDFromContext returns the session id carried by the request cookie, if any.
func IDFromContext(c *fiber.Ctx) string {
	val := c.Locals(sessionIDKey)
	if val == nil {
		return ""
	}
	sid, _ := val.(string)
	return sid
}
