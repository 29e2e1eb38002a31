package ports

import (
	"context"

	"github.com/learnhub/learnhub-api/internal/core/domain"
)

// EnrollResult is returned by Enroll. AlreadyExisted is true when the call
// converged onto a previously created enrollment instead of inserting one;
// the HTTP layer maps that to 200 instead of 201.
type EnrollResult struct {
	Enrollment     *domain.Enrollment
	AlreadyExisted bool
}

// EnrollmentService defines enrollment and progress use cases. The acting
// user id always comes from the verified session, never from the request
// body, so ownership cannot be spoofed.
type EnrollmentService interface {
	Enroll(ctx context.Context, userID, courseID string) (*EnrollResult, error)
	ListMine(ctx context.Context, userID string) ([]*domain.Enrollment, error)
	SetProgress(ctx context.Context, enrollmentID, userID, lessonID string, completed bool) (*domain.Enrollment, error)
}
