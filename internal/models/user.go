// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Admins may view any user's follow graph.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a user in the Atelier application.
type User struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Name             string         `gorm:"unique;not null" json:"name"`
	Email            string         `gorm:"unique;not null" json:"email"`
	Password         string         `gorm:"not null" json:"-"`
	Role             string         `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	ProfilePicture   string         `json:"profile_picture"`
	Description      string         `json:"description"`
	CommissionStatus bool           `json:"commission_status"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
	Posts            []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
