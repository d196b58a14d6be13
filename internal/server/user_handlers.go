package server

import (
	"atelier/internal/models"
	"atelier/internal/service"

	"github.com/gofiber/fiber/v2"
)

type updateProfileRequest struct {
	Name             string `json:"name"`
	ProfilePicture   string `json:"profile_picture"`
	Description      string `json:"description"`
	CommissionStatus *bool  `json:"commission_status"`
}

// GetMyProfile returns the authenticated user's own profile view.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	view, err := s.profileService.GetProfile(c.UserContext(), user.ID, user)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(view)
}

// UpdateMyProfile applies partial updates to the authenticated user's profile.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:           s.currentUserID(c),
		Name:             req.Name,
		ProfilePicture:   req.ProfilePicture,
		Description:      req.Description,
		CommissionStatus: req.CommissionStatus,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(user)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type changeEmailRequest struct {
	Email string `json:"email"`
}

// ChangeMyPassword rotates the authenticated user's password after verifying
// the current one.
func (s *Server) ChangeMyPassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.userService.ChangePassword(c.UserContext(), s.currentUserID(c), req.OldPassword, req.NewPassword); err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": "password changed"})
}

// ChangeMyEmail moves the account to a new email address.
func (s *Server) ChangeMyEmail(c *fiber.Ctx) error {
	var req changeEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.ChangeEmail(c.UserContext(), s.currentUserID(c), req.Email)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetAllUsers lists users with pagination.
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	users, err := s.userService.ListUsers(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(models.SummarizeAll(users))
}

// GetProfile returns a user's public profile. The response is shaped by the
// viewer: anonymous viewers get no follow flags, and email visibility
// follows the configured policy.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var viewer *models.User
	if viewerID, ok := s.optionalUserID(c); ok {
		if u, err := s.userRepo.GetByID(c.UserContext(), viewerID); err == nil {
			viewer = u
		}
	}

	view, err := s.profileService.GetProfile(c.UserContext(), userID, viewer)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(view)
}

// GetProfileByName resolves a profile by handle instead of numeric ID.
func (s *Server) GetProfileByName(c *fiber.Ctx) error {
	name := c.Params("name")

	user, err := s.userRepo.GetByName(c.UserContext(), name)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", name))
	}

	var viewer *models.User
	if viewerID, ok := s.optionalUserID(c); ok {
		if u, err := s.userRepo.GetByID(c.UserContext(), viewerID); err == nil {
			viewer = u
		}
	}

	view, err := s.profileService.GetProfile(c.UserContext(), user.ID, viewer)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(view)
}

// GetUserPosts lists a user's posts, newest first.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 20)
	posts, err := s.postService.ListPostsByUser(c.UserContext(), userID, p.Limit, p.Offset, s.currentUserID(c))
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// PromoteToAdmin grants the admin role. Admin only.
func (s *Server) PromoteToAdmin(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.SetRole(c.UserContext(), targetID, models.RoleAdmin)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(user)
}

// DemoteFromAdmin revokes the admin role. Admin only.
func (s *Server) DemoteFromAdmin(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.SetRole(c.UserContext(), targetID, models.RoleUser)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(user)
}
