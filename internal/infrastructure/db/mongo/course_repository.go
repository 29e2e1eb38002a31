package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/learnhub/learnhub-api/internal/core/domain"
	"github.com/learnhub/learnhub-api/internal/core/ports"
)

const coursesCollection = "courses"

// CourseRepository persists catalog documents in MongoDB. Lessons are
// embedded in the course document and have no collection of their own.
type CourseRepository struct {
	coll *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{coll: db.Collection(coursesCollection)}
}

type mongoLesson struct {
	ID          string `bson:"_id"`
	Title       string `bson:"title"`
	ContentHTML string `bson:"content_html"`
	VideoURL    string `bson:"video_url,omitempty"`
	Order       int    `bson:"order"`
}

type mongoCourse struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Slug         string             `bson:"slug"`
	Description  string             `bson:"description"`
	Price        float64            `bson:"price"`
	Category     string             `bson:"category"`
	Difficulty   string             `bson:"difficulty"`
	ThumbnailURL string             `bson:"thumbnail_url,omitempty"`
	Lessons      []mongoLesson      `bson:"lessons"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

type mongoCourseSummary struct {
	ID           primitive.ObjectID `bson:"_id"`
	Title        string             `bson:"title"`
	Slug         string             `bson:"slug"`
	Description  string             `bson:"description"`
	Price        float64            `bson:"price"`
	Category     string             `bson:"category"`
	Difficulty   string             `bson:"difficulty"`
	ThumbnailURL string             `bson:"thumbnail_url,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func toMongoLessons(lessons []domain.Lesson) []mongoLesson {
	out := make([]mongoLesson, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, mongoLesson{
			ID:          l.ID,
			Title:       l.Title,
			ContentHTML: l.ContentHTML,
			VideoURL:    l.VideoURL,
			Order:       l.Order,
		})
	}
	return out
}

func (mc mongoCourse) toDomain() *domain.Course {
	lessons := make([]domain.Lesson, 0, len(mc.Lessons))
	for _, l := range mc.Lessons {
		lessons = append(lessons, domain.Lesson{
			ID:          l.ID,
			Title:       l.Title,
			ContentHTML: l.ContentHTML,
			VideoURL:    l.VideoURL,
			Order:       l.Order,
		})
	}
	return &domain.Course{
		ID:           mc.ID.Hex(),
		Title:        mc.Title,
		Slug:         mc.Slug,
		Description:  mc.Description,
		Price:        mc.Price,
		Category:     mc.Category,
		Difficulty:   mc.Difficulty,
		ThumbnailURL: mc.ThumbnailURL,
		Lessons:      lessons,
		CreatedAt:    mc.CreatedAt.UTC(),
		UpdatedAt:    mc.UpdatedAt.UTC(),
	}
}

func (ms mongoCourseSummary) toDomain() *domain.CourseSummary {
	return &domain.CourseSummary{
		ID:           ms.ID.Hex(),
		Title:        ms.Title,
		Slug:         ms.Slug,
		Description:  ms.Description,
		Price:        ms.Price,
		Category:     ms.Category,
		Difficulty:   ms.Difficulty,
		ThumbnailURL: ms.ThumbnailURL,
		CreatedAt:    ms.CreatedAt.UTC(),
	}
}

// Create inserts a new course. The unique index on slug turns duplicates into
// domain.ErrSlugTaken.
func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoCourse{
		Title:        course.Title,
		Slug:         course.Slug,
		Description:  course.Description,
		Price:        course.Price,
		Category:     course.Category,
		Difficulty:   course.Difficulty,
		ThumbnailURL: course.ThumbnailURL,
		Lessons:      toMongoLessons(course.Lessons),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSlugTaken
		}
		return nil, fmt.Errorf("insert course: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *CourseRepository) FindBySlug(ctx context.Context, slug string) (*domain.Course, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *CourseRepository) findOne(ctx context.Context, filter bson.M) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCourse
	if err := r.coll.FindOne(ctx, filter).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return mc.toDomain(), nil
}

// buildListFilter translates the optional catalog filters into a Mongo query.
// The search term is quoted so it matches as a literal substring, not as a
// regular expression supplied by the caller.
func buildListFilter(filter ports.CourseFilter) bson.M {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Difficulty != "" {
		query["difficulty"] = filter.Difficulty
	}
	if filter.MaxPrice != nil {
		query["price"] = bson.M{"$lte": *filter.MaxPrice}
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	return query
}

// List returns course summaries matching filter, newest first. Lesson bodies
// are excluded by projection.
func (r *CourseRepository) List(ctx context.Context, filter ports.CourseFilter) ([]*domain.CourseSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"lessons": 0, "updated_at": 0})

	cursor, err := r.coll.Find(ctx, buildListFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer cursor.Close(ctx)

	summaries := []*domain.CourseSummary{}
	for cursor.Next(ctx) {
		var ms mongoCourseSummary
		if err := cursor.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode course summary: %w", err)
		}
		summaries = append(summaries, ms.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}
	return summaries, nil
}

// FindSummariesByIDs fetches summaries for the given ids; unknown or
// malformed ids are skipped rather than erroring.
func (r *CourseRepository) FindSummariesByIDs(ctx context.Context, ids []string) (map[string]*domain.CourseSummary, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return map[string]*domain.CourseSummary{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"lessons": 0, "updated_at": 0})
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find course summaries: %w", err)
	}
	defer cursor.Close(ctx)

	out := make(map[string]*domain.CourseSummary, len(oids))
	for cursor.Next(ctx) {
		var ms mongoCourseSummary
		if err := cursor.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode course summary: %w", err)
		}
		out[ms.ID.Hex()] = ms.toDomain()
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate course summaries: %w", err)
	}
	return out, nil
}

// Update applies a partial patch and returns the updated document.
func (r *CourseRepository) Update(ctx context.Context, id string, update ports.CourseUpdate) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Slug != nil {
		set["slug"] = *update.Slug
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Difficulty != nil {
		set["difficulty"] = *update.Difficulty
	}
	if update.ThumbnailURL != nil {
		set["thumbnail_url"] = *update.ThumbnailURL
	}
	if update.Lessons != nil {
		set["lessons"] = toMongoLessons(*update.Lessons)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mc mongoCourse
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSlugTaken
		}
		return nil, fmt.Errorf("update course: %w", err)
	}
	return mc.toDomain(), nil
}

// Delete removes a course document.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCourseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

// EnsureIndexes creates the unique index backing slug uniqueness.
func (r *CourseRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
