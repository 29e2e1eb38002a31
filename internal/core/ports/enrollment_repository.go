package ports

import (
	"context"

	"github.com/learnhub/learnhub-api/internal/core/domain"
)

// EnrollmentRepository defines persistence operations for enrollments.
type EnrollmentRepository interface {
	// Create persists a new enrollment. Returns domain.ErrEnrollmentExists
	// when the (user_id, course_id) unique index rejects the insert; that
	// index is the arbitration point for concurrent duplicate enrolls.
	Create(ctx context.Context, e *domain.Enrollment) (*domain.Enrollment, error)
	FindByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Enrollment, error)
	// ListByUser returns the user's enrollments, newest enrolled_at first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Enrollment, error)
	// SetProgress sets progress[lessonID] = completed on the enrollment
	// owned by userID. Returns domain.ErrEnrollmentNotFound when no
	// enrollment matches both id and owner.
	SetProgress(ctx context.Context, enrollmentID, userID, lessonID string, completed bool) (*domain.Enrollment, error)
}
