package service

import (
	"context"
	"strings"
	"testing"

	"atelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminChecker(adminIDs ...uint) func(context.Context, uint) bool {
	return func(_ context.Context, userID uint) bool {
		for _, id := range adminIDs {
			if id == userID {
				return true
			}
		}
		return false
	}
}

func TestPostServiceCreatePost(t *testing.T) {
	t.Run("trims caption", func(t *testing.T) {
		var created *models.Post
		posts := noopPostRepo()
		posts.createFn = func(_ context.Context, p *models.Post) error {
			p.ID = 10
			created = p
			return nil
		}
		svc := NewPostService(posts, nil)

		_, err := svc.CreatePost(context.Background(), CreatePostInput{
			UserID:  1,
			Caption: "  hello world  ",
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "hello world", created.Caption)
	})

	t.Run("blank caption", func(t *testing.T) {
		svc := NewPostService(noopPostRepo(), nil)
		_, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 1, Caption: "   "})
		assertValidationError(t, err)
	})

	t.Run("caption too long", func(t *testing.T) {
		svc := NewPostService(noopPostRepo(), nil)
		_, err := svc.CreatePost(context.Background(), CreatePostInput{
			UserID: 1, Caption: strings.Repeat("x", maxCaptionLen+1),
		})
		assertValidationError(t, err)
	})
}

func TestPostServiceUpdatePostOwnership(t *testing.T) {
	ownedBy := func(ownerID uint) *postRepoStub {
		posts := noopPostRepo()
		posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: ownerID, Caption: "original"}, nil
		}
		return posts
	}

	t.Run("owner can edit", func(t *testing.T) {
		svc := NewPostService(ownedBy(1), nil)
		_, err := svc.UpdatePost(context.Background(), UpdatePostInput{PostID: 10, UserID: 1, Caption: "edited"})
		assert.NoError(t, err)
	})

	t.Run("stranger cannot edit", func(t *testing.T) {
		svc := NewPostService(ownedBy(1), nil)
		_, err := svc.UpdatePost(context.Background(), UpdatePostInput{PostID: 10, UserID: 2, Caption: "edited"})
		assertAppErrorCode(t, err, models.CodeForbidden)
	})

	t.Run("admin can edit", func(t *testing.T) {
		svc := NewPostService(ownedBy(1), adminChecker(99))
		_, err := svc.UpdatePost(context.Background(), UpdatePostInput{PostID: 10, UserID: 99, Caption: "edited"})
		assert.NoError(t, err)
	})
}

func TestPostServiceDeletePostOwnership(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1}, nil
	}

	t.Run("stranger cannot delete", func(t *testing.T) {
		svc := NewPostService(posts, nil)
		err := svc.DeletePost(context.Background(), 10, 2)
		assertAppErrorCode(t, err, models.CodeForbidden)
	})

	t.Run("owner can delete", func(t *testing.T) {
		svc := NewPostService(posts, nil)
		assert.NoError(t, svc.DeletePost(context.Background(), 10, 1))
	})
}

func TestPostServiceLikeIdempotent(t *testing.T) {
	posts := noopPostRepo()
	posts.likeFn = func(context.Context, uint, uint) (bool, error) { return false, nil }
	svc := NewPostService(posts, nil)

	// Liking an already liked post is a success, not an error.
	assert.NoError(t, svc.LikePost(context.Background(), 1, 10))
}

func TestPostServiceLikeMissingPost(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}
	svc := NewPostService(posts, nil)

	err := svc.LikePost(context.Background(), 1, 404)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestPostServiceUnlikeWithoutLike(t *testing.T) {
	posts := noopPostRepo()
	posts.unlikeFn = func(context.Context, uint, uint) (bool, error) { return false, nil }
	svc := NewPostService(posts, nil)

	err := svc.UnlikePost(context.Background(), 1, 10)
	assertValidationError(t, err)
}

func TestPostServiceShareAccumulates(t *testing.T) {
	shareCalls := 0
	posts := noopPostRepo()
	posts.shareFn = func(context.Context, uint, uint) error {
		shareCalls++
		return nil
	}
	svc := NewPostService(posts, nil)

	_, err := svc.SharePost(context.Background(), 1, 10)
	require.NoError(t, err)
	_, err = svc.SharePost(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, shareCalls, "shares are not deduplicated")
}

func TestPostServiceListClampsLimit(t *testing.T) {
	var gotLimit, gotOffset int
	posts := noopPostRepo()
	posts.listFn = func(_ context.Context, limit, offset int, _ uint) ([]*models.Post, error) {
		gotLimit, gotOffset = limit, offset
		return nil, nil
	}
	svc := NewPostService(posts, nil)

	_, err := svc.ListPosts(context.Background(), 1000, -5, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, gotLimit)
	assert.Equal(t, 0, gotOffset)
}
