package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/learnhub/learnhub-api/internal/core/domain"
	"github.com/learnhub/learnhub-api/internal/core/ports"
)

type stubCourseRepo struct {
	courses map[string]*domain.Course // keyed by id
}

func newStubCourseRepo() *stubCourseRepo {
	return &stubCourseRepo{courses: make(map[string]*domain.Course)}
}

func cloneCourse(c *domain.Course) *domain.Course {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Lessons = append([]domain.Lesson(nil), c.Lessons...)
	return &clone
}

func summarize(c *domain.Course) *domain.CourseSummary {
	return &domain.CourseSummary{
		ID:           c.ID,
		Title:        c.Title,
		Slug:         c.Slug,
		Description:  c.Description,
		Price:        c.Price,
		Category:     c.Category,
		Difficulty:   c.Difficulty,
		ThumbnailURL: c.ThumbnailURL,
		CreatedAt:    c.CreatedAt,
	}
}

func (r *stubCourseRepo) Create(_ context.Context, course *domain.Course) (*domain.Course, error) {
	for _, c := range r.courses {
		if c.Slug == course.Slug {
			return nil, domain.ErrSlugTaken
		}
	}
	created := cloneCourse(course)
	created.ID = primitive.NewObjectID().Hex()
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	created.UpdatedAt = created.CreatedAt
	r.courses[created.ID] = cloneCourse(created)
	return created, nil
}

func (r *stubCourseRepo) FindByID(_ context.Context, id string) (*domain.Course, error) {
	if c, ok := r.courses[id]; ok {
		return cloneCourse(c), nil
	}
	return nil, domain.ErrCourseNotFound
}

func (r *stubCourseRepo) FindBySlug(_ context.Context, slug string) (*domain.Course, error) {
	for _, c := range r.courses {
		if c.Slug == slug {
			return cloneCourse(c), nil
		}
	}
	return nil, domain.ErrCourseNotFound
}

func (r *stubCourseRepo) List(_ context.Context, filter ports.CourseFilter) ([]*domain.CourseSummary, error) {
	var out []*domain.CourseSummary
	for _, c := range r.courses {
		if filter.Category != "" && c.Category != filter.Category {
			continue
		}
		if filter.Difficulty != "" && c.Difficulty != filter.Difficulty {
			continue
		}
		if filter.MaxPrice != nil && c.Price > *filter.MaxPrice {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(c.Title), needle) &&
				!strings.Contains(strings.ToLower(c.Description), needle) {
				continue
			}
		}
		out = append(out, summarize(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubCourseRepo) FindSummariesByIDs(_ context.Context, ids []string) (map[string]*domain.CourseSummary, error) {
	out := make(map[string]*domain.CourseSummary)
	for _, id := range ids {
		if c, ok := r.courses[id]; ok {
			out[id] = summarize(c)
		}
	}
	return out, nil
}

func (r *stubCourseRepo) Update(_ context.Context, id string, update ports.CourseUpdate) (*domain.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	if update.Slug != nil {
		for otherID, other := range r.courses {
			if otherID != id && other.Slug == *update.Slug {
				return nil, domain.ErrSlugTaken
			}
		}
		c.Slug = *update.Slug
	}
	if update.Title != nil {
		c.Title = *update.Title
	}
	if update.Description != nil {
		c.Description = *update.Description
	}
	if update.Price != nil {
		c.Price = *update.Price
	}
	if update.Category != nil {
		c.Category = *update.Category
	}
	if update.Difficulty != nil {
		c.Difficulty = *update.Difficulty
	}
	if update.ThumbnailURL != nil {
		c.ThumbnailURL = *update.ThumbnailURL
	}
	if update.Lessons != nil {
		c.Lessons = append([]domain.Lesson(nil), *update.Lessons...)
	}
	c.UpdatedAt = time.Now().UTC()
	return cloneCourse(c), nil
}

func (r *stubCourseRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.courses[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

func newCourseService(repo *stubCourseRepo) *CourseService {
	return NewCourseService(repo, zerolog.Nop())
}

func seedCourse(t *testing.T, svc *CourseService, input ports.CreateCourseInput) *domain.Course {
	t.Helper()
	created, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create %q: %v", input.Slug, err)
	}
	return created
}

func TestCourseService_Create_LowercasesSlug(t *testing.T) {
	svc := newCourseService(newStubCourseRepo())

	created := seedCourse(t, svc, ports.CreateCourseInput{
		Title: "Intro", Slug: "Intro-Course", Description: "d", Category: "Web", Difficulty: "Beginner",
	})
	if created.Slug != "intro-course" {
		t.Fatalf("slug = %q, want intro-course", created.Slug)
	}
}

func TestCourseService_Create_DuplicateSlug(t *testing.T) {
	repo := newStubCourseRepo()
	svc := newCourseService(repo)

	original := seedCourse(t, svc, ports.CreateCourseInput{
		Title: "Intro", Slug: "intro", Description: "d", Price: 500, Category: "Web", Difficulty: "Beginner",
	})

	if _, err := svc.Create(context.Background(), ports.CreateCourseInput{
		Title: "Other", Slug: "intro", Description: "d2", Category: "Web", Difficulty: "Beginner",
	}); err != domain.ErrSlugTaken {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}

	// Original course untouched.
	stored, err := svc.Get(context.Background(), original.ID)
	if err != nil {
		t.Fatalf("original course gone: %v", err)
	}
	if stored.Title != "Intro" || stored.Price != 500 {
		t.Fatalf("original course modified: %+v", stored)
	}
}

func TestCourseService_Get_ByIDAndSlug(t *testing.T) {
	svc := newCourseService(newStubCourseRepo())

	created := seedCourse(t, svc, ports.CreateCourseInput{
		Title: "Intro to Go", Slug: "intro", Description: "d", Price: 500, Category: "Web", Difficulty: "Beginner",
	})

	byID, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	bySlug, err := svc.Get(context.Background(), "intro")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if byID.ID != bySlug.ID {
		t.Fatalf("id and slug lookups disagree: %q vs %q", byID.ID, bySlug.ID)
	}

	if _, err := svc.Get(context.Background(), "no-such-slug"); err != domain.ErrCourseNotFound {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
	// An id-shaped input must not fall back to slug lookup.
	if _, err := svc.Get(context.Background(), primitive.NewObjectID().Hex()); err != domain.ErrCourseNotFound {
		t.Fatalf("expected ErrCourseNotFound for unknown id, got %v", err)
	}
}

func TestCourseService_List_Filters(t *testing.T) {
	svc := newCourseService(newStubCourseRepo())

	seedCourse(t, svc, ports.CreateCourseInput{
		Title: "Intro to Go", Slug: "intro", Description: "build services", Price: 500, Category: "Web", Difficulty: "Beginner",
	})
	seedCourse(t, svc, ports.CreateCourseInput{
		Title: "Advanced SQL", Slug: "advanced-sql", Description: "window functions", Price: 0, Category: "Data", Difficulty: "Advanced",
	})

	found, err := svc.List(context.Background(), ports.CourseFilter{Search: "intro"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(found) != 1 || found[0].Slug != "intro" {
		t.Fatalf("search=intro returned %d results", len(found))
	}

	// Search matches descriptions too, case-insensitively.
	found, _ = svc.List(context.Background(), ports.CourseFilter{Search: "WINDOW"})
	if len(found) != 1 || found[0].Slug != "advanced-sql" {
		t.Fatalf("search over description failed: %d results", len(found))
	}

	free := 0.0
	found, _ = svc.List(context.Background(), ports.CourseFilter{MaxPrice: &free})
	if len(found) != 1 || found[0].Slug != "advanced-sql" {
		t.Fatalf("price=0 should exclude the 500-priced course, got %d results", len(found))
	}

	found, _ = svc.List(context.Background(), ports.CourseFilter{Category: "Web", Difficulty: "Beginner"})
	if len(found) != 1 || found[0].Slug != "intro" {
		t.Fatalf("combined category+difficulty filter failed: %d results", len(found))
	}

	found, _ = svc.List(context.Background(), ports.CourseFilter{})
	if len(found) != 2 {
		t.Fatalf("unfiltered list returned %d results", len(found))
	}
}

func TestCourseService_Update_PartialPatch(t *testing.T) {
	svc := newCourseService(newStubCourseRepo())

	created := seedCourse(t, svc, ports.CreateCourseInput{
		Title: "Intro", Slug: "intro", Description: "original", Price: 100, Category: "Web", Difficulty: "Beginner",
	})

	newTitle := "Intro, Revised"
	newSlug := "Intro-V2"
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateCourseInput{
		Title: &newTitle,
		Slug:  &newSlug,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != newTitle {
		t.Fatalf("title = %q", updated.Title)
	}
	if updated.Slug != "intro-v2" {
		t.Fatalf("slug = %q, want intro-v2", updated.Slug)
	}
	// Unspecified fields unchanged.
	if updated.Description != "original" || updated.Price != 100 {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestCourseService_Update_DuplicateSlug(t *testing.T) {
	svc := newCourseService(newStubCourseRepo())

	seedCourse(t, svc, ports.CreateCourseInput{
		Title: "A", Slug: "slug-a", Description: "d", Category: "Web", Difficulty: "Beginner",
	})
	b := seedCourse(t, svc, ports.CreateCourseInput{
		Title: "B", Slug: "slug-b", Description: "d", Category: "Web", Difficulty: "Beginner",
	})

	taken := "slug-a"
	if _, err := svc.Update(context.Background(), b.ID, ports.UpdateCourseInput{Slug: &taken}); err != domain.ErrSlugTaken {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestCourseService_Delete(t *testing.T) {
	svc := newCourseService(newStubCourseRepo())

	created := seedCourse(t, svc, ports.CreateCourseInput{
		Title: "Intro", Slug: "intro", Description: "d", Category: "Web", Difficulty: "Beginner",
	})

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); err != domain.ErrCourseNotFound {
		t.Fatalf("expected ErrCourseNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != domain.ErrCourseNotFound {
		t.Fatalf("expected ErrCourseNotFound on double delete, got %v", err)
	}
}

func TestCourseService_Create_AssignsLessonIDs(t *testing.T) {
	svc := newCourseService(newStubCourseRepo())

	created := seedCourse(t, svc, ports.CreateCourseInput{
		Title: "Intro", Slug: "intro", Description: "d", Category: "Web", Difficulty: "Beginner",
		Lessons: []ports.LessonInput{
			{Title: "Welcome", ContentHTML: "<p>hi</p>", Order: 0},
			{Title: "Setup", ContentHTML: "<p>go</p>", Order: 0}, // duplicate order is allowed
		},
	})

	if len(created.Lessons) != 2 {
		t.Fatalf("lessons = %d, want 2", len(created.Lessons))
	}
	if created.Lessons[0].ID == "" || created.Lessons[1].ID == "" {
		t.Fatalf("lesson ids not assigned: %+v", created.Lessons)
	}
	if created.Lessons[0].ID == created.Lessons[1].ID {
		t.Fatalf("lesson ids not unique")
	}
}
