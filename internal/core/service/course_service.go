package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/learnhub/learnhub-api/internal/core/domain"
	"github.com/learnhub/learnhub-api/internal/core/ports"
)

// CourseService implements catalog use cases.
type CourseService struct {
	repo   ports.CourseRepository
	logger zerolog.Logger
}

func NewCourseService(repo ports.CourseRepository, logger zerolog.Logger) *CourseService {
	return &CourseService{repo: repo, logger: logger}
}

// List returns course summaries matching filter, newest first.
func (s *CourseService) List(ctx context.Context, filter ports.CourseFilter) ([]*domain.CourseSummary, error) {
	return s.repo.List(ctx, filter)
}

// Get resolves a course by id or slug. An id-shaped input is looked up by id
// only; it never falls back to a slug match.
func (s *CourseService) Get(ctx context.Context, idOrSlug string) (*domain.Course, error) {
	if _, err := primitive.ObjectIDFromHex(idOrSlug); err == nil {
		return s.repo.FindByID(ctx, idOrSlug)
	}
	return s.repo.FindBySlug(ctx, idOrSlug)
}

// Create persists a new course. The slug is lower-cased before persistence;
// a duplicate surfaces as domain.ErrSlugTaken from the unique index.
func (s *CourseService) Create(ctx context.Context, input ports.CreateCourseInput) (*domain.Course, error) {
	course := &domain.Course{
		Title:        input.Title,
		Slug:         strings.ToLower(input.Slug),
		Description:  input.Description,
		Price:        input.Price,
		Category:     input.Category,
		Difficulty:   input.Difficulty,
		ThumbnailURL: input.ThumbnailURL,
		Lessons:      buildLessons(input.Lessons),
	}

	created, err := s.repo.Create(ctx, course)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("course_id", created.ID).Str("slug", created.Slug).Msg("course created")
	return created, nil
}

// Update applies a partial patch; unset fields are left unchanged.
func (s *CourseService) Update(ctx context.Context, id string, input ports.UpdateCourseInput) (*domain.Course, error) {
	update := ports.CourseUpdate{
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Category:     input.Category,
		Difficulty:   input.Difficulty,
		ThumbnailURL: input.ThumbnailURL,
	}
	if input.Slug != nil {
		lowered := strings.ToLower(*input.Slug)
		update.Slug = &lowered
	}
	if input.Lessons != nil {
		lessons := buildLessons(*input.Lessons)
		update.Lessons = &lessons
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("course_id", updated.ID).Msg("course updated")
	return updated, nil
}

// Delete removes a course and its embedded lessons.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("course_id", id).Msg("course deleted")
	return nil
}

// buildLessons assigns generated ids to embedded lessons. Lesson order values
// are stored as given; collisions are allowed.
func buildLessons(inputs []ports.LessonInput) []domain.Lesson {
	lessons := make([]domain.Lesson, 0, len(inputs))
	for _, in := range inputs {
		lessons = append(lessons, domain.Lesson{
			ID:          primitive.NewObjectID().Hex(),
			Title:       in.Title,
			ContentHTML: in.ContentHTML,
			VideoURL:    in.VideoURL,
			Order:       in.Order,
		})
	}
	return lessons
}
