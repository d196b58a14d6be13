package service

import (
	"context"
	"testing"

	"atelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowServiceFollowSelf(t *testing.T) {
	svc := NewFollowService(noopFollowRepo(), noopUserRepo())
	_, err := svc.Follow(context.Background(), 3, 3)
	assertValidationError(t, err)
}

func TestFollowServiceFollowMissingTarget(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	svc := NewFollowService(noopFollowRepo(), users)
	_, err := svc.Follow(context.Background(), 1, 2)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestFollowServiceFollowIdempotent(t *testing.T) {
	follows := noopFollowRepo()
	follows.createFn = func(context.Context, uint, uint) (bool, error) { return false, nil }
	svc := NewFollowService(follows, noopUserRepo())

	created, err := svc.Follow(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, created, "repeat follow should succeed without a new edge")
}

func TestFollowServiceUnfollowWithoutEdge(t *testing.T) {
	follows := noopFollowRepo()
	follows.deleteFn = func(context.Context, uint, uint) (bool, error) { return false, nil }
	svc := NewFollowService(follows, noopUserRepo())

	err := svc.Unfollow(context.Background(), 1, 2)
	assertValidationError(t, err)
}

func TestFollowServiceUnfollow(t *testing.T) {
	var gotFollower, gotFollowing uint
	follows := noopFollowRepo()
	follows.deleteFn = func(_ context.Context, followerID, followingID uint) (bool, error) {
		gotFollower, gotFollowing = followerID, followingID
		return true, nil
	}
	svc := NewFollowService(follows, noopUserRepo())

	require.NoError(t, svc.Unfollow(context.Background(), 1, 2))
	assert.Equal(t, uint(1), gotFollower)
	assert.Equal(t, uint(2), gotFollowing)
}

func TestCanViewFollowGraph(t *testing.T) {
	tests := []struct {
		name    string
		viewer  *models.User
		ownerID uint
		want    bool
	}{
		{"anonymous", nil, 1, false},
		{"owner", &models.User{ID: 1, Role: models.RoleUser}, 1, true},
		{"other user", &models.User{ID: 2, Role: models.RoleUser}, 1, false},
		{"admin", &models.User{ID: 2, Role: models.RoleAdmin}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanViewFollowGraph(tt.viewer, tt.ownerID))
		})
	}
}

func TestFollowServiceGetFollowersForbidden(t *testing.T) {
	svc := NewFollowService(noopFollowRepo(), noopUserRepo())

	_, err := svc.GetFollowers(context.Background(), &models.User{ID: 2, Role: models.RoleUser}, 1)
	assertAppErrorCode(t, err, models.CodeForbidden)

	_, err = svc.GetFollowing(context.Background(), nil, 1)
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func TestFollowServiceGetFollowersAsAdmin(t *testing.T) {
	follows := noopFollowRepo()
	follows.listFollowersFn = func(context.Context, uint) ([]models.User, error) {
		return []models.User{{ID: 5, Name: "mona"}}, nil
	}
	svc := NewFollowService(follows, noopUserRepo())

	users, err := svc.GetFollowers(context.Background(), &models.User{ID: 99, Role: models.RoleAdmin}, 1)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "mona", users[0].Name)
}
