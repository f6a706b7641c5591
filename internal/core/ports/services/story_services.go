package services

import (
	"context"

	"github.com/storynest/storynest-backend/internal/core/domain"
	"github.com/storynest/storynest-backend/internal/dto"
)

// StorySvcFacade manages story metadata and enforces ownership access rules.
type StorySvcFacade interface {
	// CreateStory persists a new story owned by the requester and bumps
	// their usage counter.
	CreateStory(ctx context.Context, owner *domain.User, req dto.CreateStoryRequest) (*domain.Story, error)

	// GetStory retrieves a story the requester may access; otherwise
	// apperrors.ErrForbidden.
	GetStory(ctx context.Context, requester *domain.User, storyID string) (*domain.Story, error)

	// ListStories retrieves stories visible to the requester.
	ListStories(ctx context.Context, requester *domain.User, limit int, offset int) ([]domain.Story, error)

	// UpdateStory applies metadata changes; owner or admin only.
	UpdateStory(ctx context.Context, requester *domain.User, storyID string, req dto.UpdateStoryRequest) (*domain.Story, error)

	// DeleteStory removes a story; owner or admin only.
	DeleteStory(ctx context.Context, requester *domain.User, storyID string) error
}
