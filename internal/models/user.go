package models

import "time"

// User represents a visitor profile (PostgreSQL). The ID is the opaque,
// stable identifier issued by the external identity provider; the service
// trusts it and never issues tokens of its own.
type User struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	DisplayName   string    `json:"display_name"`
	Bio           string    `json:"bio,omitempty"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	PublicProfile bool      `json:"public_profile" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`
}

// UpdateUserRequest defines the request body for updating a profile.
type UpdateUserRequest struct {
	DisplayName   string `json:"display_name,omitempty" validate:"omitempty,min=1,max=80"`
	Bio           string `json:"bio,omitempty" validate:"omitempty,max=500"`
	AvatarURL     string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	PublicProfile *bool  `json:"public_profile,omitempty"`
}
