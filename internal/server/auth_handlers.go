package server

import (
	"time"

	"atelier/internal/middleware"
	"atelier/internal/models"
	"atelier/internal/service"

	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionUser is the minimal identity payload returned by session endpoints.
type sessionUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	cookie := &fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.config.Env == "production",
	}
	if ttl := s.config.SessionTTL(); ttl > 0 {
		cookie.Expires = time.Now().Add(ttl)
	}
	c.Cookie(cookie)
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.config.Env == "production",
		Expires:  time.Now().Add(-time.Hour),
	})
}

// Register creates a new account and opens a session for it.
func (s *Server) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}

	token, err := s.sessions.Create(c.UserContext(), user.ID)
	if err != nil {
		return s.respondInternal(c, err)
	}
	s.setSessionCookie(c, token)

	middleware.Logger.InfoContext(c.UserContext(), "user registered", "user_id", user.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": user,
	})
}

// Login verifies credentials and opens a session.
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	token, err := s.sessions.Create(c.UserContext(), user.ID)
	if err != nil {
		return s.respondInternal(c, err)
	}
	s.setSessionCookie(c, token)

	middleware.Logger.InfoContext(c.UserContext(), "user logged in", "user_id", user.ID)

	return c.JSON(fiber.Map{
		"user": user,
	})
}

// GetSession reports the identity behind the session cookie, or 401 when
// there is none.
func (s *Server) GetSession(c *fiber.Ctx) error {
	userID, ok := s.optionalUserID(c)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("No active session"))
	}

	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		// The account behind the session is gone; the session is dead too.
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("No active session"))
	}

	return c.JSON(fiber.Map{
		"user": sessionUser{ID: user.ID, Email: user.Email},
	})
}

// RefreshSession extends the current session to a full TTL.
func (s *Server) RefreshSession(c *fiber.Ctx) error {
	token := c.Cookies(SessionCookie)

	ok, err := s.sessions.Refresh(c.UserContext(), token)
	if err != nil {
		return s.respondInternal(c, err)
	}
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("Invalid or expired session"))
	}
	s.setSessionCookie(c, token)

	return c.JSON(fiber.Map{"status": "refreshed"})
}

// Logout revokes the session and clears the cookie. Logging out without a
// session is not an error.
func (s *Server) Logout(c *fiber.Ctx) error {
	token := c.Cookies(SessionCookie)
	if token != "" {
		if err := s.sessions.Destroy(c.UserContext(), token); err != nil {
			return s.respondInternal(c, err)
		}
	}
	s.clearSessionCookie(c)

	return c.JSON(fiber.Map{"status": "logged out"})
}
