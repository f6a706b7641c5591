package services

import (
	"context"

	"github.com/storynest/storynest-backend/internal/core/domain"
	"github.com/storynest/storynest-backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email (case-insensitive).
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// UpdateProfile applies the allowed profile mutations.
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// IncrementStoryCount bumps the user's usage counter.
	IncrementStoryCount(ctx context.Context, userID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
