package database

import (
	"context"
	"fmt"
)

// schema is applied on startup. Statements are idempotent so restarts are
// safe. The UNIQUE (title_id, author_id) index on reviews is the
// authoritative guard against the double-review race; the application-level
// pre-check only exists to produce a friendlier error in the common case.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		first_name TEXT,
		last_name TEXT,
		bio TEXT,
		role TEXT NOT NULL DEFAULT 'user',
		is_superuser BOOLEAN NOT NULL DEFAULT FALSE,
		code_hash TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		deleted_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS genres (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS titles (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		year INTEGER NOT NULL CHECK (year >= 0),
		description TEXT,
		category_id UUID REFERENCES categories(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS title_genres (
		id UUID PRIMARY KEY,
		title_id UUID NOT NULL REFERENCES titles(id) ON DELETE CASCADE,
		genre_id UUID NOT NULL REFERENCES genres(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE (title_id, genre_id)
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id UUID PRIMARY KEY,
		title_id UUID NOT NULL REFERENCES titles(id) ON DELETE CASCADE,
		author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		text TEXT NOT NULL,
		score INTEGER NOT NULL CHECK (score BETWEEN 1 AND 10),
		created_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT reviews_one_per_author UNIQUE (title_id, author_id)
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id UUID PRIMARY KEY,
		review_id UUID NOT NULL REFERENCES reviews(id) ON DELETE CASCADE,
		author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		text TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_titles_year ON titles (year)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_title ON reviews (title_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_review ON comments (review_id)`,
}

// Migrate applies the schema.
func Migrate(ctx context.Context, db PgxIface) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
