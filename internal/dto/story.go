package dto

import (
	"time"

	"github.com/storynest/storynest-backend/internal/core/domain"
)

// CreateStoryRequest carries the metadata for a new story record.
type CreateStoryRequest struct {
	Title    string  `json:"title" binding:"required,max=200"`
	Synopsis *string `json:"synopsis"`
	IsPublic bool    `json:"isPublic"`
}

// UpdateStoryRequest defines the mutable story fields.
type UpdateStoryRequest struct {
	Title    *string `json:"title"`
	Synopsis *string `json:"synopsis"`
	IsPublic *bool   `json:"isPublic"`
}

// StoryResponse is the public projection of a story.
type StoryResponse struct {
	StoryID   string    `json:"storyID"`
	OwnerID   string    `json:"ownerID"`
	Title     string    `json:"title"`
	Synopsis  *string   `json:"synopsis,omitempty"`
	IsPublic  bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToStoryResponse converts a domain.Story to its response DTO.
func ToStoryResponse(story *domain.Story) StoryResponse {
	return StoryResponse{
		StoryID:   story.StoryID,
		OwnerID:   story.OwnerID,
		Title:     story.Title,
		Synopsis:  story.Synopsis,
		IsPublic:  story.IsPublic,
		CreatedAt: story.CreatedAt,
		UpdatedAt: story.UpdatedAt,
	}
}

// ListStoriesParams defines query parameters for listing stories.
type ListStoriesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListStoriesResponse wraps the list of stories.
type ListStoriesResponse struct {
	Stories []StoryResponse `json:"stories"`
}
