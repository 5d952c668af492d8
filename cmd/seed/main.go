// Package main provides a CLI tool that creates the database schema and
// seeds initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	_ "embed"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"quizbank/internal/core/id"
	"quizbank/internal/infrastructure/storage/postgres"
	"quizbank/pkg/logger"
)

//go:embed schema.sql
var schemaSQL string

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if _, err := pool.Pool.Exec(ctx, schemaSQL); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}
	log.Info("schema applied")

	adminID, err := seedAdminUser(ctx, pool, log)
	if err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log, adminID); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (id.ID, error) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@quizbank.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	// Check if admin already exists
	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1 AND deleted_at IS NULL`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return existingID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return id.Nil(), fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO users (id, email, display_name, password_hash, role, is_active, version)
		VALUES ($1, $2, 'Administrator', $3, 'admin', true, 1)
	`, userID, adminEmail, string(passwordHash))
	if err != nil {
		return id.Nil(), fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", userID)
	return userID, nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger, adminID id.ID) error {
	log.Info("seeding demo data...")

	topicID := id.New()
	tag, err := pool.Pool.Exec(ctx, `
		INSERT INTO topics (id, slug, title, description, version)
		VALUES ($1, 'go-basics', 'Go Basics', 'Fundamentals of the Go language', 1)
		ON CONFLICT DO NOTHING
	`, topicID)
	if err != nil {
		return fmt.Errorf("seed topic: %w", err)
	}
	if tag.RowsAffected() == 0 {
		err = pool.Pool.QueryRow(ctx,
			`SELECT id FROM topics WHERE slug = 'go-basics' AND deleted_at IS NULL`,
		).Scan(&topicID)
		if err != nil {
			return fmt.Errorf("lookup demo topic: %w", err)
		}
		log.Infow("demo topic already exists", "topic_id", topicID)
		return nil
	}

	questions := []struct {
		kind    string
		prompt  string
		answer  string
		choices string
	}{
		{"flashcard", "What does the := operator do?", "Declares and initializes a variable", ""},
		{"flashcard", "Which keyword starts a goroutine?", "go", ""},
		{"multiple_choice", "Which of these is a built-in Go type?",
			"", `[{"text":"rune","correct":true},{"text":"char","correct":false},{"text":"long","correct":false}]`},
	}

	for _, q := range questions {
		var choices any
		if q.choices != "" {
			choices = q.choices
		}
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO questions (id, topic_id, kind, prompt, answer, choices, difficulty, version)
			VALUES ($1, $2, $3, $4, $5, $6, 2, 1)
		`, id.New(), topicID, q.kind, q.prompt, q.answer, choices)
		if err != nil {
			return fmt.Errorf("seed question: %w", err)
		}
	}

	now := time.Now().UTC()
	log.Infow("demo data seeded",
		"topic_id", topicID,
		"questions", len(questions),
		"seeded_by", adminID,
		"at", now,
	)
	return nil
}
