package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/learnhub/learnhub-api/internal/core/domain"
	"github.com/learnhub/learnhub-api/internal/core/ports"
)

// EnrollmentService implements enrollment and progress tracking.
type EnrollmentService struct {
	repo    ports.EnrollmentRepository
	courses ports.CourseRepository
	logger  zerolog.Logger
}

func NewEnrollmentService(repo ports.EnrollmentRepository, courses ports.CourseRepository, logger zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{repo: repo, courses: courses, logger: logger}
}

// Enroll creates an enrollment for (userID, courseID). The insert is
// optimistic: when the unique index reports a duplicate, the existing
// enrollment is fetched and returned instead of propagating the conflict, so
// concurrent duplicate calls converge onto a single stored row.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID string) (*ports.EnrollResult, error) {
	if _, err := primitive.ObjectIDFromHex(courseID); err != nil {
		return nil, domain.ErrInvalidCourseID
	}

	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}

	enrollment := &domain.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		Progress:   map[string]bool{},
		EnrolledAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, enrollment)
	if err == domain.ErrEnrollmentExists {
		existing, findErr := s.repo.FindByUserAndCourse(ctx, userID, courseID)
		if findErr != nil {
			return nil, findErr
		}
		return &ports.EnrollResult{Enrollment: existing, AlreadyExisted: true}, nil
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Str("course_id", courseID).Msg("enrollment created")
	return &ports.EnrollResult{Enrollment: created}, nil
}

// ListMine returns the user's enrollments, newest first, each joined with a
// summary of its course.
func (s *EnrollmentService) ListMine(ctx context.Context, userID string) ([]*domain.Enrollment, error) {
	enrollments, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(enrollments) == 0 {
		return enrollments, nil
	}

	ids := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		ids = append(ids, e.CourseID)
	}

	summaries, err := s.courses.FindSummariesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range enrollments {
		e.Course = summaries[e.CourseID]
	}

	return enrollments, nil
}

// SetProgress records completion state for one lesson. The repository filters
// by both enrollment id and owner, so a foreign enrollment id yields the same
// not-found error as a nonexistent one. The lesson id is not checked against
// the course's lesson set.
func (s *EnrollmentService) SetProgress(ctx context.Context, enrollmentID, userID, lessonID string, completed bool) (*domain.Enrollment, error) {
	return s.repo.SetProgress(ctx, enrollmentID, userID, lessonID, completed)
}
