package ports

import (
	"context"

	"github.com/learnhub/learnhub-api/internal/core/domain"
)

// CreateCourseInput carries all data needed to create a catalog entry.
type CreateCourseInput struct {
	Title        string
	Slug         string
	Description  string
	Price        float64
	Category     string
	Difficulty   string
	ThumbnailURL string
	Lessons      []LessonInput
}

// LessonInput holds one embedded lesson.
type LessonInput struct {
	Title       string
	ContentHTML string
	VideoURL    string
	Order       int
}

// UpdateCourseInput is the partial-patch form of CreateCourseInput.
type UpdateCourseInput struct {
	Title        *string
	Slug         *string
	Description  *string
	Price        *float64
	Category     *string
	Difficulty   *string
	ThumbnailURL *string
	Lessons      *[]LessonInput
}

// CourseService defines catalog use cases. Create/Update/Delete are reached
// only through the admin role gate.
type CourseService interface {
	List(ctx context.Context, filter CourseFilter) ([]*domain.CourseSummary, error)
	// Get accepts either a course id or a slug. An id-shaped input is looked
	// up by id only; everything else falls through to a slug lookup.
	Get(ctx context.Context, idOrSlug string) (*domain.Course, error)
	Create(ctx context.Context, input CreateCourseInput) (*domain.Course, error)
	Update(ctx context.Context, id string, input UpdateCourseInput) (*domain.Course, error)
	Delete(ctx context.Context, id string) error
}
