package service

import (
	"context"
	"strings"

	"atelier/internal/models"
	"atelier/internal/repository"
)

// PostService provides post and engagement business logic.
type PostService struct {
	postRepo repository.PostRepository
	isAdmin  func(ctx context.Context, userID uint) bool
}

// NewPostService returns a new PostService. isAdmin reports whether the
// given user holds the admin role; owners and admins may modify a post.
func NewPostService(postRepo repository.PostRepository, isAdmin func(ctx context.Context, userID uint) bool) *PostService {
	if isAdmin == nil {
		isAdmin = func(context.Context, uint) bool { return false }
	}
	return &PostService{postRepo: postRepo, isAdmin: isAdmin}
}

// CreatePostInput carries the fields for a new post.
type CreatePostInput struct {
	UserID   uint
	Caption  string
	ImageURL string
}

const maxCaptionLen = 2000

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	caption := strings.TrimSpace(in.Caption)
	if caption == "" {
		return nil, models.NewValidationError("Caption is required")
	}
	if len(caption) > maxCaptionLen {
		return nil, models.NewValidationError("Caption too long (max 2000 characters)")
	}

	post := &models.Post{
		UserID:   in.UserID,
		Caption:  caption,
		ImageURL: strings.TrimSpace(in.ImageURL),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.postRepo.List(ctx, limit, offset, currentUserID)
}

func (s *PostService) ListPostsByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
}

// UpdatePostInput carries the editable fields of a post.
type UpdatePostInput struct {
	PostID   uint
	UserID   uint
	Caption  string
	ImageURL *string
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}

	if post.UserID != in.UserID && !s.isAdmin(ctx, in.UserID) {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	if in.Caption != "" {
		caption := strings.TrimSpace(in.Caption)
		if caption == "" {
			return nil, models.NewValidationError("Caption cannot be blank")
		}
		if len(caption) > maxCaptionLen {
			return nil, models.NewValidationError("Caption too long (max 2000 characters)")
		}
		post.Caption = caption
	}
	if in.ImageURL != nil {
		post.ImageURL = strings.TrimSpace(*in.ImageURL)
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, in.PostID, in.UserID)
}

func (s *PostService) DeletePost(ctx context.Context, postID, userID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}

	if post.UserID != userID && !s.isAdmin(ctx, userID) {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	return s.postRepo.Delete(ctx, postID)
}

// LikePost records a like. Liking an already liked post succeeds without
// creating a second like.
func (s *PostService) LikePost(ctx context.Context, userID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return err
	}
	_, err := s.postRepo.Like(ctx, userID, postID)
	return err
}

// UnlikePost removes a like. Unliking a post that was never liked is an
// error.
func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return err
	}
	removed, err := s.postRepo.Unlike(ctx, userID, postID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewValidationError("Post not liked")
	}
	return nil
}

// SharePost records a share event. Shares accumulate; sharing twice counts
// twice.
func (s *PostService) SharePost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	if err := s.postRepo.Share(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID, userID)
}
