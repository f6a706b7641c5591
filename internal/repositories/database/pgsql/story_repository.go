package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/storynest/storynest-backend/internal/apperrors"
	"github.com/storynest/storynest-backend/internal/core/domain"
	portsrepo "github.com/storynest/storynest-backend/internal/core/ports/repositories"
)

type PgxStoryRepository struct {
	BaseRepository
}

func newPgxStoryRepository(db *pgxpool.Pool) portsrepo.StoryRepositoryFacade {
	return &PgxStoryRepository{BaseRepository{Pool: db}}
}

// Ensure PgxStoryRepository implements portsrepo.StoryRepositoryFacade
var _ portsrepo.StoryRepositoryFacade = (*PgxStoryRepository)(nil)

const storyColumns = `story_id, owner_id, title, synopsis, is_public, created_at, updated_at`

func scanStory(row pgx.Row) (*domain.Story, error) {
	var story domain.Story
	err := row.Scan(
		&story.StoryID,
		&story.OwnerID,
		&story.Title,
		&story.Synopsis,
		&story.IsPublic,
		&story.CreatedAt,
		&story.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &story, nil
}

func (r *PgxStoryRepository) SaveStory(ctx context.Context, story domain.Story) error {
	query := `
        INSERT INTO stories (` + storyColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.Pool.Exec(ctx, query,
		story.StoryID,
		story.OwnerID,
		story.Title,
		story.Synopsis,
		story.IsPublic,
		story.CreatedAt,
		story.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save story: %w", err)
	}
	return nil
}

func (r *PgxStoryRepository) FindStoryByID(ctx context.Context, storyID string) (*domain.Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE story_id = $1;`
	story, err := scanStory(r.Pool.QueryRow(ctx, query, storyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find story by ID: %w", err)
	}
	return story, nil
}

func (r *PgxStoryRepository) FindStoriesForUser(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Story, error) {
	query := `
        SELECT ` + storyColumns + `
        FROM stories
        WHERE owner_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.Pool.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query stories: %w", err)
	}
	defer rows.Close()

	stories := make([]domain.Story, 0)
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan story row: %w", err)
		}
		stories = append(stories, *story)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating story rows: %w", err)
	}
	return stories, nil
}

func (r *PgxStoryRepository) UpdateStory(ctx context.Context, story domain.Story) error {
	query := `
        UPDATE stories
        SET title = $1, synopsis = $2, is_public = $3, updated_at = $4
        WHERE story_id = $5;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		story.Title,
		story.Synopsis,
		story.IsPublic,
		story.UpdatedAt,
		story.StoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to update story: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("story not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxStoryRepository) DeleteStory(ctx context.Context, storyID string) error {
	query := `DELETE FROM stories WHERE story_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, storyID)
	if err != nil {
		return fmt.Errorf("failed to delete story: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("story not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
