// Command seed provisions the initial admin account and a handful of sample
// courses. Every write is an upsert keyed on the natural unique field, so
// running it repeatedly is safe and never clobbers existing data.
package main

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/learnhub/learnhub-api/internal/core/domain"
	"github.com/learnhub/learnhub-api/internal/infrastructure/config"
	mongodb "github.com/learnhub/learnhub-api/internal/infrastructure/db/mongo"
	"github.com/learnhub/learnhub-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	if err := seedAdmin(ctx, db, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin user")
	}
	log.Info().Str("email", cfg.Seed.AdminEmail).Msg("admin user ready")

	created, err := seedCourses(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed courses")
	}
	log.Info().Int("created", created).Msg("sample courses ready")
}

func seedAdmin(ctx context.Context, db *mongo.Database, cfg *config.Config) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Collection("users").UpdateOne(ctx,
		bson.M{"email": cfg.Seed.AdminEmail},
		bson.M{"$setOnInsert": bson.M{
			"name":          cfg.Seed.AdminName,
			"email":         cfg.Seed.AdminEmail,
			"password_hash": string(hash),
			"role":          domain.RoleAdmin,
			"created_at":    time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

type seedCourse struct {
	title       string
	slug        string
	description string
	price       float64
	category    string
	difficulty  string
	lessons     []seedLesson
}

type seedLesson struct {
	title   string
	content string
}

var sampleCourses = []seedCourse{
	{
		title:       "Go for Backend Developers",
		slug:        "go-for-backend-developers",
		description: "Build production HTTP services in Go: routing, middleware, persistence, and deployment.",
		price:       49.99,
		category:    "programming",
		difficulty:  "intermediate",
		lessons: []seedLesson{
			{title: "Setting up your workspace", content: "<p>Install the toolchain and create your first module.</p>"},
			{title: "HTTP handlers and middleware", content: "<p>Wire handlers, middleware chains, and graceful shutdown.</p>"},
			{title: "Talking to the database", content: "<p>Repositories, contexts, and connection lifecycles.</p>"},
		},
	},
	{
		title:       "MongoDB Essentials",
		slug:        "mongodb-essentials",
		description: "Document modelling, indexes, and aggregation pipelines from the ground up.",
		price:       29.99,
		category:    "databases",
		difficulty:  "beginner",
		lessons: []seedLesson{
			{title: "Documents and collections", content: "<p>How MongoDB stores and retrieves data.</p>"},
			{title: "Indexes that matter", content: "<p>Unique, compound, and partial indexes.</p>"},
		},
	},
	{
		title:       "Docker in Practice",
		slug:        "docker-in-practice",
		description: "Containerise real applications and ship them with confidence.",
		price:       0,
		category:    "devops",
		difficulty:  "beginner",
		lessons: []seedLesson{
			{title: "Images and containers", content: "<p>The building blocks of every deployment.</p>"},
			{title: "Compose for local stacks", content: "<p>Run your whole stack with one command.</p>"},
		},
	},
}

func seedCourses(ctx context.Context, db *mongo.Database) (int, error) {
	created := 0
	now := time.Now().UTC()

	for i, course := range sampleCourses {
		lessons := make([]bson.M, 0, len(course.lessons))
		for j, lesson := range course.lessons {
			lessons = append(lessons, bson.M{
				"_id":          primitive.NewObjectID().Hex(),
				"title":        lesson.title,
				"content_html": lesson.content,
				"video_url":    "",
				"order":        j,
			})
		}

		res, err := db.Collection("courses").UpdateOne(ctx,
			bson.M{"slug": course.slug},
			bson.M{"$setOnInsert": bson.M{
				"title":         course.title,
				"slug":          course.slug,
				"description":   course.description,
				"price":         course.price,
				"category":      course.category,
				"difficulty":    course.difficulty,
				"thumbnail_url": "",
				"lessons":       lessons,
				"created_at":    now.Add(time.Duration(i) * time.Second),
				"updated_at":    now.Add(time.Duration(i) * time.Second),
			}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return created, err
		}
		if res.UpsertedCount > 0 {
			created++
		}
	}
	return created, nil
}
