package handler

import "github.com/learnhub/learnhub-api/internal/core/domain"

type enrollRequest struct {
	CourseID string `json:"course_id" validate:"required,min=1"`
}

// Lesson ids become document keys under `progress`, so the characters MongoDB
// reserves for key syntax (`.` and `$`) are rejected up front.
type progressRequest struct {
	LessonID  string `json:"lesson_id" validate:"required,min=1,excludesall=.$"`
	Completed *bool  `json:"completed" validate:"required"`
}

type enrollmentEnvelope struct {
	Enrollment *domain.Enrollment `json:"enrollment"`
}

type enrollmentsEnvelope struct {
	Enrollments []*domain.Enrollment `json:"enrollments"`
}
