package repositories

import (
	"context"

	"github.com/storynest/storynest-backend/internal/core/domain"
)

// StoryReader defines read operations for story metadata
type StoryReader interface {
	// FindStoryByID retrieves a story by ID, or apperrors.ErrNotFound.
	FindStoryByID(ctx context.Context, storyID string) (*domain.Story, error)

	// FindStoriesForUser retrieves a paginated list of stories visible to
	// the user: their own plus public ones.
	FindStoriesForUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Story, error)
}

// StoryWriter defines write operations for story metadata
type StoryWriter interface {
	// SaveStory persists a new story.
	SaveStory(ctx context.Context, story domain.Story) error

	// UpdateStory updates an existing story's metadata.
	UpdateStory(ctx context.Context, story domain.Story) error

	// DeleteStory removes a story row.
	DeleteStory(ctx context.Context, storyID string) error
}

// StoryRepositoryFacade combines all story-related repository interfaces
type StoryRepositoryFacade interface {
	StoryReader
	StoryWriter
}
