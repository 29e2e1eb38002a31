package ports

import (
	"context"

	"github.com/learnhub/learnhub-api/internal/core/domain"
)

// CourseFilter carries the optional, independently combinable listing filters.
type CourseFilter struct {
	Category   string   // exact match
	Difficulty string   // exact match
	MaxPrice   *float64 // inclusive upper bound; nil = no price filter
	Search     string   // case-insensitive substring over title or description
}

// CourseUpdate is a partial patch; nil fields are left unchanged.
type CourseUpdate struct {
	Title        *string
	Slug         *string
	Description  *string
	Price        *float64
	Category     *string
	Difficulty   *string
	ThumbnailURL *string
	Lessons      *[]domain.Lesson
}

// CourseRepository defines persistence operations for the catalog.
type CourseRepository interface {
	// Create persists a new course. Returns domain.ErrSlugTaken when the
	// slug unique index rejects the insert.
	Create(ctx context.Context, course *domain.Course) (*domain.Course, error)
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Course, error)
	// List returns summaries matching filter, newest created_at first.
	List(ctx context.Context, filter CourseFilter) ([]*domain.CourseSummary, error)
	// FindSummariesByIDs returns summaries keyed by course id; missing ids
	// are simply absent from the map.
	FindSummariesByIDs(ctx context.Context, ids []string) (map[string]*domain.CourseSummary, error)
	Update(ctx context.Context, id string, update CourseUpdate) (*domain.Course, error)
	Delete(ctx context.Context, id string) error
}
