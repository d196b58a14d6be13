package service

import (
	"context"

	"atelier/internal/models"
	"atelier/internal/repository"
)

// FollowService provides follow graph business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// CanViewFollowGraph is the single access policy for follower and following
// lists: the owner of the graph and admins may see it, nobody else.
func CanViewFollowGraph(viewer *models.User, ownerID uint) bool {
	if viewer == nil {
		return false
	}
	return viewer.ID == ownerID || viewer.IsAdmin()
}

// Follow records that followerID follows targetID. Returns true when a new
// edge was created and false when the edge already existed; repeating the
// call is not an error.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID uint) (bool, error) {
	if followerID == targetID {
		return false, models.NewValidationError("Cannot follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return false, err
	}

	return s.followRepo.Create(ctx, followerID, targetID)
}

// Unfollow removes the follow edge from followerID to targetID.
// Unfollowing a user who was never followed is an error.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return models.NewValidationError("Cannot unfollow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	removed, err := s.followRepo.Delete(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewValidationError("Not following this user")
	}
	return nil
}

// GetFollowers returns the users who follow ownerID. The viewer must pass
// the CanViewFollowGraph policy.
func (s *FollowService) GetFollowers(ctx context.Context, viewer *models.User, ownerID uint) ([]models.User, error) {
	if !CanViewFollowGraph(viewer, ownerID) {
		return nil, models.NewForbiddenError("You cannot view this user's followers")
	}
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowers(ctx, ownerID)
}

// GetFollowing returns the users ownerID follows. The viewer must pass the
// CanViewFollowGraph policy.
func (s *FollowService) GetFollowing(ctx context.Context, viewer *models.User, ownerID uint) ([]models.User, error) {
	if !CanViewFollowGraph(viewer, ownerID) {
		return nil, models.NewForbiddenError("You cannot view this user's following list")
	}
	if _, err := s.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowing(ctx, ownerID)
}

// IsFollowing reports whether followerID follows targetID.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, targetID)
}
