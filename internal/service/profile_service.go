package service

import (
	"context"

	"atelier/internal/cache"
	"atelier/internal/models"
	"atelier/internal/repository"
)

// ProfileService assembles the public view of a user: account fields,
// follow counts, recent posts and the viewer-relative follow flags.
type ProfileService struct {
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	postRepo    repository.PostRepository
	exposeEmail bool
}

// NewProfileService returns a new ProfileService. exposeEmail controls
// whether profiles include the account email for arbitrary viewers; the
// profile owner and admins always see it.
func NewProfileService(userRepo repository.UserRepository, followRepo repository.FollowRepository, postRepo repository.PostRepository, exposeEmail bool) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		followRepo:  followRepo,
		postRepo:    postRepo,
		exposeEmail: exposeEmail,
	}
}

const profilePostsLimit = 20

// GetProfile builds the profile of userID as seen by viewer. A nil viewer
// is an anonymous request: the follow flags stay nil rather than reading
// as "not following". Views are cached per viewer; follow edge changes and
// profile edits invalidate them.
func (s *ProfileService) GetProfile(ctx context.Context, userID uint, viewer *models.User) (*models.ProfileView, error) {
	var viewerID uint
	if viewer != nil {
		viewerID = viewer.ID
	}
	return cache.Aside(ctx, cache.ProfileKey(userID, viewerID), cache.ProfileTTL,
		func(ctx context.Context) (*models.ProfileView, error) {
			return s.buildProfile(ctx, userID, viewer)
		})
}

func (s *ProfileService) buildProfile(ctx context.Context, userID uint, viewer *models.User) (*models.ProfileView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &models.ProfileView{
		ID:               user.ID,
		Name:             user.Name,
		Role:             user.Role,
		ProfilePicture:   user.ProfilePicture,
		Description:      user.Description,
		CommissionStatus: user.CommissionStatus,
	}

	if s.canSeeEmail(viewer, user.ID) {
		view.Email = user.Email
	}

	view.FollowersCount, err = s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	view.FollowingCount, err = s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	var viewerID uint
	if viewer != nil {
		viewerID = viewer.ID
	}

	if viewer != nil && viewer.ID != userID {
		followed, err := s.followRepo.IsFollowing(ctx, viewer.ID, userID)
		if err != nil {
			return nil, err
		}
		follows, err := s.followRepo.IsFollowing(ctx, userID, viewer.ID)
		if err != nil {
			return nil, err
		}
		view.IsFollowedByViewer = &followed
		view.IsFollowingViewer = &follows
	}

	view.Posts, err = s.postRepo.GetByUserID(ctx, userID, profilePostsLimit, 0, viewerID)
	if err != nil {
		return nil, err
	}

	return view, nil
}

func (s *ProfileService) canSeeEmail(viewer *models.User, ownerID uint) bool {
	if s.exposeEmail {
		return true
	}
	if viewer == nil {
		return false
	}
	return viewer.ID == ownerID || viewer.IsAdmin()
}
