package handler

import (
	"github.com/learnhub/learnhub-api/internal/core/domain"
)

type lessonRequest struct {
	Title       string `json:"title"        validate:"required,min=1,max=200"`
	ContentHTML string `json:"content_html" validate:"required,min=1"`
	VideoURL    string `json:"video_url"    validate:"omitempty,url"`
	Order       int    `json:"order"        validate:"gte=0"`
}

type createCourseRequest struct {
	Title        string          `json:"title"         validate:"required,min=1,max=200"`
	Slug         string          `json:"slug"          validate:"required,min=1,max=200,slug"`
	Description  string          `json:"description"   validate:"required,min=1"`
	Price        float64         `json:"price"         validate:"gte=0"`
	Category     string          `json:"category"      validate:"required,min=1,max=100"`
	Difficulty   string          `json:"difficulty"    validate:"required,min=1,max=50"`
	ThumbnailURL string          `json:"thumbnail_url" validate:"omitempty,url"`
	Lessons      []lessonRequest `json:"lessons"       validate:"omitempty,dive"`
}

// updateCourseRequest is the partial-patch form: nil fields are untouched.
type updateCourseRequest struct {
	Title        *string          `json:"title"         validate:"omitempty,min=1,max=200"`
	Slug         *string          `json:"slug"          validate:"omitempty,min=1,max=200,slug"`
	Description  *string          `json:"description"   validate:"omitempty,min=1"`
	Price        *float64         `json:"price"         validate:"omitempty,gte=0"`
	Category     *string          `json:"category"      validate:"omitempty,min=1,max=100"`
	Difficulty   *string          `json:"difficulty"    validate:"omitempty,min=1,max=50"`
	ThumbnailURL *string          `json:"thumbnail_url" validate:"omitempty,url"`
	Lessons      *[]lessonRequest `json:"lessons"       validate:"omitempty,dive"`
}

type courseEnvelope struct {
	Course *domain.Course `json:"course"`
}

type coursesEnvelope struct {
	Courses []*domain.CourseSummary `json:"courses"`
}
