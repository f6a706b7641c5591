package dto

import (
	"github.com/storynest/storynest-backend/internal/core/domain"
)

// UserResponse is the public projection of a user. Password and token
// material never appear here.
type UserResponse struct {
	UserID          string  `json:"userID"`
	Email           string  `json:"email"`
	FirstName       *string `json:"firstName,omitempty"`
	LastName        *string `json:"lastName,omitempty"`
	ProfileImageURL *string `json:"profileImageURL,omitempty"`
	EmailVerified   bool    `json:"emailVerified"`
	Tier            string  `json:"tier"`
	StoryCount      int     `json:"storyCount"`
}

// ToUserResponse converts a domain.User to its public projection.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:          user.UserID,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		ProfileImageURL: user.ProfileImageURL,
		EmailVerified:   user.EmailVerified,
		Tier:            string(user.Tier),
		StoryCount:      user.StoryCount,
	}
}

// UpdateUserRequest defines the data allowed for updating a profile.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	ProfileImageURL *string `json:"profileImageURL"`
}
