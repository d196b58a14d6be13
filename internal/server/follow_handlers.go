package server

import (
	"atelier/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser creates a follow edge from the authenticated user to :id.
// Following a user who is already followed succeeds without a new edge.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	created, err := s.followService.Follow(c.UserContext(), s.currentUserID(c), targetID)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	if !created {
		return c.JSON(fiber.Map{"status": "already following"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "following"})
}

// UnfollowUser removes the follow edge from the authenticated user to :id.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Unfollow(c.UserContext(), s.currentUserID(c), targetID); err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": "unfollowed"})
}

// GetMyFollowers lists the authenticated user's followers.
func (s *Server) GetMyFollowers(c *fiber.Ctx) error {
	viewer, err := s.currentUser(c)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	users, err := s.followService.GetFollowers(c.UserContext(), viewer, viewer.ID)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"followers": models.SummarizeAll(users)})
}

// GetMyFollowing lists the users the authenticated user follows.
func (s *Server) GetMyFollowing(c *fiber.Ctx) error {
	viewer, err := s.currentUser(c)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	users, err := s.followService.GetFollowing(c.UserContext(), viewer, viewer.ID)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"following": models.SummarizeAll(users)})
}

// GetFollowers lists the users who follow :id. Restricted to the owner of
// the list and admins.
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	ownerID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewer, err := s.currentUser(c)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	users, err := s.followService.GetFollowers(c.UserContext(), viewer, ownerID)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(models.SummarizeAll(users))
}

// GetFollowing lists the users :id follows. Restricted to the owner of the
// list and admins.
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	ownerID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewer, err := s.currentUser(c)
	if err != nil {
		return s.respondServiceError(c, err)
	}

	users, err := s.followService.GetFollowing(c.UserContext(), viewer, ownerID)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(models.SummarizeAll(users))
}
