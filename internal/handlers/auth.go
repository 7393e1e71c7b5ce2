package handlers

import (
	"errors"

	"smartshop/internal/middleware"
	"smartshop/internal/models"
	"smartshop/internal/services/auth"
	"smartshop/internal/session"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler serves the page-flow endpoints: registration, login, logout
// and the OTP flow. These accept form-encoded bodies and answer with
// redirects and flash messages rather than JSON.
type AuthHandler struct {
	authService auth.Service
	sessions    *session.Store
}

func NewAuthHandler(authService auth.Service, sessions *session.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	input := models.RegisterInput{
		Name:     c.FormValue("fullname"),
		Email:    c.FormValue("email"),
		Phone:    c.FormValue("mobile"),
		Password: c.FormValue("password"),
	}

	if _, err := h.authService.Register(input); err != nil {
		var vErr *auth.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).SendString(vErr.Message)
		}
		if errors.Is(err, auth.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).SendString("Email already registered!")
		}
		return c.Status(fiber.StatusInternalServerError).SendString("Registration failed")
	}

	return c.Redirect("/login", fiber.StatusFound)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.authService.Login(email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).SendString("Invalid credentials!")
		}
		return c.Status(fiber.StatusInternalServerError).SendString("Login failed")
	}

	// A fresh session id on every login; any pre-login session (e.g. the
	// OTP flow) is discarded.
	if id, _, ok := middleware.SessionFromCtx(c); ok {
		_ = h.sessions.Delete(c.Context(), id)
	}
	id, err := h.sessions.Create(c.Context(), &session.Data{
		UserID:   user.ID,
		UserName: user.Name,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Login failed")
	}
	middleware.SetSessionCookie(c, id)

	return c.Redirect("/home", fiber.StatusFound)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if id, _, ok := middleware.SessionFromCtx(c); ok {
		_ = h.sessions.Delete(c.Context(), id)
	}
	middleware.ClearSessionCookie(c)
	return c.Redirect("/", fiber.StatusFound)
}

func (h *AuthHandler) SendOTP(c *fiber.Ctx) error {
	id, sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		sess = &session.Data{}
	}

	phone := c.FormValue("phone")
	if phone == "" {
		sess.Flash("Phone number required")
		return h.persistAndRedirect(c, id, sess, "/")
	}

	switch err := h.authService.SendOTP(c.Context(), sess, phone); {
	case errors.Is(err, auth.ErrOTPRateLimited):
		sess.Flash("Please wait 60 seconds before requesting another OTP")
	case errors.Is(err, auth.ErrDeliveryFailed):
		sess.Flash("Failed to send OTP")
	case err != nil:
		sess.Flash("Failed to send OTP")
	default:
		sess.Flash("OTP sent successfully")
	}

	return h.persistAndRedirect(c, id, sess, "/")
}

func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	id, sess, ok := middleware.SessionFromCtx(c)
	if !ok {
		sess = &session.Data{}
	}

	if err := h.authService.VerifyOTP(sess, c.FormValue("otp")); err != nil {
		if errors.Is(err, auth.ErrOTPExpired) {
			sess.Flash("OTP has expired")
		} else {
			sess.Flash("Invalid OTP")
		}
		return h.persistAndRedirect(c, id, sess, "/register")
	}

	return h.persistAndRedirect(c, id, sess, "/login")
}

// persistAndRedirect saves the (possibly new) session, sets the cookie for
// fresh sessions and issues the redirect.
func (h *AuthHandler) persistAndRedirect(c *fiber.Ctx, id string, sess *session.Data, location string) error {
	if id == "" {
		newID, err := h.sessions.Create(c.Context(), sess)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Session error")
		}
		middleware.SetSessionCookie(c, newID)
	} else if err := h.sessions.Save(c.Context(), id, sess); err != nil && !errors.Is(err, session.ErrNotFound) {
		return c.Status(fiber.StatusInternalServerError).SendString("Session error")
	}
	return c.Redirect(location, fiber.StatusFound)
}
