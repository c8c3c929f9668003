package database

import (
	"context"
	"fmt"
)

// Migrate creates the schema at process start. Statements are idempotent so
// restarting against an existing database is safe.
func Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			hashed_password TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			slug TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS questions (
			id BIGSERIAL PRIMARY KEY,
			question_text TEXT NOT NULL,
			option_a TEXT NOT NULL,
			option_b TEXT NOT NULL,
			option_c TEXT NOT NULL,
			option_d TEXT NOT NULL,
			correct_answer TEXT NOT NULL,
			category_id BIGINT NOT NULL REFERENCES categories(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_questions_category_id ON questions(category_id);`,
	}

	for _, stmt := range statements {
		if _, err := DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("database.Migrate: %w", err)
		}
	}
	return nil
}
