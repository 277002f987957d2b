package session

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/petshopzn/storefront-gateway/internal/config"
)

// CookieCodec signs and validates the session cookie. The cookie carries only
// the opaque session id; token and user live in the store.
type CookieCodec struct {
	name   string
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewCookieCodec builds a codec from session configuration.
func NewCookieCodec(cfg config.SessionConfig) *CookieCodec {
	return &CookieCodec{
		name:   cfg.CookieName,
		secret: []byte(cfg.CookieSecret),
		ttl:    cfg.TTL(),
		secure: cfg.Secure,
	}
}

type cookieClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Name returns the cookie name.
func (cc *CookieCodec) Name() string {
	return cc.name
}

// Issue signs a cookie value for the session id.
func (cc *CookieCodec) Issue(sid string) (string, error) {
	now := time.Now()
	claims := &cookieClaims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sid,
			ExpiresAt: jwt.NewNumericDate(now.Add(cc.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(cc.secret)
}

// Parse validates a cookie value and returns the session id it carries.
func (cc *CookieCodec) Parse(value string) (string, error) {
	parsed, err := jwt.ParseWithClaims(value, &cookieClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return cc.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*cookieClaims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return "", errors.New("invalid cookie claims")
	}
	return claims.SessionID, nil
}

// Set attaches a signed session cookie to the response.
func (cc *CookieCodec) Set(c *fiber.Ctx, value string) {
	c.Cookie(&fiber.Cookie{
		Name:     cc.name,
		Value:    value,
		Expires:  time.Now().Add(cc.ttl),
		HTTPOnly: true,
		Secure:   cc.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// Expire removes the session cookie from the client.
func (cc *CookieCodec) Expire(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     cc.name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   cc.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
