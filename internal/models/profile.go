// Package models contains data structures for the application's domain models.
package models

import "time"

// ProfileView is the response shape for a user profile. Email is only
// populated when the visibility policy allows the viewer to see it.
// The two follow flags are pointers: nil means "unknown" (anonymous viewer),
// never "false".
type ProfileView struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email,omitempty"`
	Role             string `json:"role"`
	ProfilePicture   string `json:"profile_picture"`
	Description      string `json:"description"`
	CommissionStatus bool   `json:"commission_status"`

	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`

	IsFollowedByViewer *bool `json:"is_followed_by_viewer,omitempty"`
	IsFollowingViewer  *bool `json:"is_following_viewer,omitempty"`

	Posts []*Post `json:"posts,omitempty"`
}

// UserSummary is the projection used for user listings (follower and
// following lists, the admin user index). It deliberately carries no
// email address; that field is governed by the profile visibility policy
// and never belongs in bulk listings.
type UserSummary struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Role             string    `json:"role"`
	ProfilePicture   string    `json:"profile_picture"`
	Description      string    `json:"description"`
	CommissionStatus bool      `json:"commission_status"`
	CreatedAt        time.Time `json:"created_at"`
}

// Summarize converts a user record into its listing projection.
func Summarize(u *User) UserSummary {
	return UserSummary{
		ID:               u.ID,
		Name:             u.Name,
		Role:             u.Role,
		ProfilePicture:   u.ProfilePicture,
		Description:      u.Description,
		CommissionStatus: u.CommissionStatus,
		CreatedAt:        u.CreatedAt,
	}
}

// SummarizeAll maps a slice of users into listing projections. It always
// returns a non-nil slice so handlers serialize an empty list, not null.
func SummarizeAll(users []User) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, Summarize(&u))
	}
	return out
}
