package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/petshopzn/storefront-gateway/internal/api/dto"
	"github.com/petshopzn/storefront-gateway/internal/domain"
	"github.com/petshopzn/storefront-gateway/internal/guard"
	"github.com/petshopzn/storefront-gateway/internal/nav"
	"github.com/petshopzn/storefront-gateway/internal/session"
)

// AuthHandler exposes login, register, logout and the session view.
type AuthHandler struct {
	sessions *session.Manager
	cookies  *session.CookieCodec
}

// NewAuthHandler constructs handler.
func NewAuthHandler(sessions *session.Manager, cookies *session.CookieCodec) *AuthHandler {
	return &AuthHandler{sessions: sessions, cookies: cookies}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	sid, sess, err := h.sessions.Login(c.UserContext(), domain.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return h.established(c, sid, sess)
}

// Register handles POST /register. The session from the register response is
// used directly; no follow-up login call.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	sid, sess, err := h.sessions.Register(c.UserContext(), domain.Registration{
		Name:                 req.Name,
		Email:                req.Email,
		Phone:                req.Phone,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		RoleIDs:              req.RoleIDs,
	})
	if err != nil {
		return err
	}
	return h.established(c, sid, sess)
}

// Logout handles POST /logout. The stored session and cookie are cleared no
// matter what the backend says.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess := session.FromContext(c)
	tok := ""
	if sess.Authenticated() {
		tok = sess.Token
	}
	h.sessions.Logout(c.UserContext(), session.IDFromContext(c), tok)
	h.cookies.Expire(c)
	return c.Redirect(guard.LoginPath, fiber.StatusFound)
}

// Session handles GET /session: the current user plus the menu the role may
// see.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	sess := session.FromContext(c)
	resp := dto.SessionResponse{Menu: nav.VisibleEntries(sess.Role())}
	if sess.Authenticated() {
		resp.User = sess.User
	}
	return c.JSON(fiber.Map{"data": resp})
}

func (h *AuthHandler) established(c *fiber.Ctx, sid string, sess *domain.Session) error {
	value, err := h.cookies.Issue(sid)
	if err != nil {
		return err
	}
	h.cookies.Set(c, value)
	return c.JSON(fiber.Map{
		"data": dto.SessionResponse{
			User: sess.User,
			Menu: nav.VisibleEntries(sess.User.Role),
		},
	})
}
