package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	Id          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Bio         string     `json:"bio"`
	AvatarUrl   string     `json:"avatarUrl"`
	JobTitle    string     `json:"jobTitle"`
	Location    string     `json:"location"`
	Website     string     `json:"website"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// PublicUserResponse is what other users get to see.
type PublicUserResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarUrl string    `json:"avatarUrl"`
	JobTitle  string    `json:"jobTitle"`
}

type ProfileStats struct {
	Workspaces int64 `json:"workspaces"`
	Notes      int64 `json:"notes"`
	Documents  int64 `json:"documents"`
	Cards      int64 `json:"cards"`
}

type ProfileResponse struct {
	UserResponse
	Stats ProfileStats `json:"stats"`
}

// UpdateProfileRequest changes only the fields present in the body.
type UpdateProfileRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=50"`
	Bio       *string `json:"bio" validate:"omitempty,max=500"`
	AvatarUrl *string `json:"avatarUrl" validate:"omitempty,max=500"`
	JobTitle  *string `json:"jobTitle" validate:"omitempty,max=100"`
	Location  *string `json:"location" validate:"omitempty,max=100"`
	Website   *string `json:"website" validate:"omitempty,max=255"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=128"`
}
