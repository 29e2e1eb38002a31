package domain

import (
	"errors"
	"time"
)

// ErrEnrollmentNotFound covers both a missing enrollment and one owned by a
// different user. Collapsing the two prevents existence leakage across users.
var ErrEnrollmentNotFound = errors.New("enrollment not found")
var ErrEnrollmentExists = errors.New("enrollment already exists")
var ErrInvalidCourseID = errors.New("invalid course id")

// Enrollment links one user to one course. Progress maps lesson ids to
// completion state; keys are added lazily and never removed. At most one
// enrollment exists per (user, course) pair, enforced by a unique index.
type Enrollment struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	CourseID   string          `json:"course_id"`
	Progress   map[string]bool `json:"progress"`
	EnrolledAt time.Time       `json:"enrolled_at"`

	// Course is populated by list operations that join the course summary.
	Course *CourseSummary `json:"course,omitempty"`
}
