package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/learnhub/learnhub-api/internal/core/domain"
)

const enrollmentsCollection = "enrollments"

// EnrollmentRepository persists enrollments in MongoDB. The compound unique
// index on (user_id, course_id) is what makes optimistic enroll inserts safe
// under concurrency.
type EnrollmentRepository struct {
	coll *mongo.Collection
}

func NewEnrollmentRepository(db *mongo.Database) *EnrollmentRepository {
	return &EnrollmentRepository{coll: db.Collection(enrollmentsCollection)}
}

type mongoEnrollment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	CourseID   string             `bson:"course_id"`
	Progress   map[string]bool    `bson:"progress"`
	EnrolledAt time.Time          `bson:"enrolled_at"`
}

func (me mongoEnrollment) toDomain() *domain.Enrollment {
	progress := me.Progress
	if progress == nil {
		progress = map[string]bool{}
	}
	return &domain.Enrollment{
		ID:         me.ID.Hex(),
		UserID:     me.UserID,
		CourseID:   me.CourseID,
		Progress:   progress,
		EnrolledAt: me.EnrolledAt.UTC(),
	}
}

// Create inserts a new enrollment. A duplicate (user_id, course_id) pair is
// reported as domain.ErrEnrollmentExists so the service can recover by
// re-fetching the winner's record.
func (r *EnrollmentRepository) Create(ctx context.Context, e *domain.Enrollment) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoEnrollment{
		UserID:     e.UserID,
		CourseID:   e.CourseID,
		Progress:   e.Progress,
		EnrolledAt: e.EnrolledAt,
	}
	if doc.Progress == nil {
		doc.Progress = map[string]bool{}
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEnrollmentExists
		}
		return nil, fmt.Errorf("insert enrollment: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *EnrollmentRepository) FindByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoEnrollment
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "course_id": courseID}).Decode(&me)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return me.toDomain(), nil
}

// ListByUser returns the user's enrollments, newest first.
func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "enrolled_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer cursor.Close(ctx)

	enrollments := []*domain.Enrollment{}
	for cursor.Next(ctx) {
		var me mongoEnrollment
		if err := cursor.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode enrollment: %w", err)
		}
		enrollments = append(enrollments, me.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate enrollments: %w", err)
	}
	return enrollments, nil
}

// SetProgress sets progress[lessonID] = completed on the enrollment owned by
// userID and returns the updated document. Filtering by both id and owner in
// one query keeps "missing" and "not yours" indistinguishable.
func (r *EnrollmentRepository) SetProgress(ctx context.Context, enrollmentID, userID, lessonID string, completed bool) (*domain.Enrollment, error) {
	oid, err := primitive.ObjectIDFromHex(enrollmentID)
	if err != nil {
		return nil, domain.ErrEnrollmentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "user_id": userID}
	update := bson.M{"$set": bson.M{"progress." + lessonID: completed}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var me mongoEnrollment
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("set progress: %w", err)
	}
	return me.toDomain(), nil
}

// EnsureIndexes creates the unique (user_id, course_id) index.
func (r *EnrollmentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "course_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}
