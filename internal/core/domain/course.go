package domain

import (
	"errors"
	"time"
)

var ErrCourseNotFound = errors.New("course not found")
var ErrSlugTaken = errors.New("slug already in use")

// Lesson is an embedded document owned by its parent Course. Lessons have no
// independent lifecycle; order uniqueness within a course is not enforced.
type Lesson struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ContentHTML string `json:"content_html"`
	VideoURL    string `json:"video_url,omitempty"`
	Order       int    `json:"order"`
}

// Course is the catalog aggregate root.
type Course struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Category     string    `json:"category"`
	Difficulty   string    `json:"difficulty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Lessons      []Lesson  `json:"lessons"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CourseSummary is the lightweight listing view; lesson bodies are excluded.
type CourseSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price"`
	Category     string    `json:"category"`
	Difficulty   string    `json:"difficulty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
