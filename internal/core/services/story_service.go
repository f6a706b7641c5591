package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/storynest/storynest-backend/internal/apperrors"
	"github.com/storynest/storynest-backend/internal/core/domain"
	portsrepo "github.com/storynest/storynest-backend/internal/core/ports/repositories"
	portssvc "github.com/storynest/storynest-backend/internal/core/ports/services"
	"github.com/storynest/storynest-backend/internal/dto"
	"github.com/storynest/storynest-backend/internal/middleware"
)

// storyService implements StorySvcFacade. Access decisions defer to the
// domain.CanAccess predicate so the same rule covers every resource type.
type storyService struct {
	storyRepo portsrepo.StoryRepositoryFacade
	userSvc   portssvc.UserWriterSvc
}

// NewStoryService creates a new instance of storyService.
func NewStoryService(storyRepo portsrepo.StoryRepositoryFacade, userSvc portssvc.UserWriterSvc) portssvc.StorySvcFacade {
	return &storyService{storyRepo: storyRepo, userSvc: userSvc}
}

var _ portssvc.StorySvcFacade = (*storyService)(nil)

func (s *storyService) CreateStory(ctx context.Context, owner *domain.User, req dto.CreateStoryRequest) (*domain.Story, error) {
	now := time.Now()
	story := domain.Story{
		StoryID:   uuid.NewString(),
		OwnerID:   owner.UserID,
		Title:     req.Title,
		Synopsis:  req.Synopsis,
		IsPublic:  req.IsPublic,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storyRepo.SaveStory(ctx, story); err != nil {
		return nil, fmt.Errorf("failed to save story: %w", err)
	}

	// Usage counter is advisory; a failed bump must not fail the create.
	if err := s.userSvc.IncrementStoryCount(ctx, owner.UserID); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to increment story count",
			slog.String("user_id", owner.UserID), slog.String("error", err.Error()))
	}

	return &story, nil
}

func (s *storyService) GetStory(ctx context.Context, requester *domain.User, storyID string) (*domain.Story, error) {
	story, err := s.storyRepo.FindStoryByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccess(requester, story) {
		return nil, apperrors.ErrForbidden
	}
	return story, nil
}

func (s *storyService) ListStories(ctx context.Context, requester *domain.User, limit int, offset int) ([]domain.Story, error) {
	return s.storyRepo.FindStoriesForUser(ctx, requester.UserID, limit, offset)
}

// UpdateStory requires ownership (or admin); public visibility grants read
// access only, so it is not enough here.
func (s *storyService) UpdateStory(ctx context.Context, requester *domain.User, storyID string, req dto.UpdateStoryRequest) (*domain.Story, error) {
	story, err := s.storyRepo.FindStoryByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story.OwnerID != requester.UserID && !requester.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	if req.Title != nil {
		story.Title = *req.Title
	}
	if req.Synopsis != nil {
		story.Synopsis = req.Synopsis
	}
	if req.IsPublic != nil {
		story.IsPublic = *req.IsPublic
	}
	story.UpdatedAt = time.Now()

	if err := s.storyRepo.UpdateStory(ctx, *story); err != nil {
		return nil, fmt.Errorf("failed to update story: %w", err)
	}
	return story, nil
}

func (s *storyService) DeleteStory(ctx context.Context, requester *domain.User, storyID string) error {
	story, err := s.storyRepo.FindStoryByID(ctx, storyID)
	if err != nil {
		return err
	}
	if story.OwnerID != requester.UserID && !requester.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return s.storyRepo.DeleteStory(ctx, storyID)
}
