package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/petshopzn/storefront-gateway/internal/guard"
	"github.com/petshopzn/storefront-gateway/internal/session"
	apperrors "github.com/petshopzn/storefront-gateway/pkg/util"
)

// sessionCleaner drops a stored session once the backend reports the bearer
// token stale. Staleness is only discovered here, on a failed upstream call;
// there is no client-side expiry clock.
type sessionCleaner struct {
	sessions *session.Manager
	cookies  *session.CookieCodec
}

// upstream maps an upstream error: a 401 clears the session and redirects to
// login, anything else propagates to the error middleware.
func (s sessionCleaner) upstream(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsUnauthorized(err) {
		s.sessions.Discard(c.UserContext(), session.IDFromContext(c))
		s.cookies.Expire(c)
		return c.Redirect(guard.LoginPath, fiber.StatusFound)
	}
	return err
}

func pathID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", nil)
	}
	return id, nil
}

func token(c *fiber.Ctx) string {
	sess := session.FromContext(c)
	if !sess.Authenticated() {
		return ""
	}
	return sess.Token
}
