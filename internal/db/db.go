// Package db provides PostgreSQL access for saved CV records and rendered documents.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/cv-builder/internal/types"
)

// Schema creates the tables this package reads and writes. The cvs table
// mirrors the editor's saved CV store.
const Schema = `
CREATE TABLE IF NOT EXISTS cvs (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id    TEXT NOT NULL,
	name       TEXT NOT NULL,
	cv_data    JSONB NOT NULL,
	thumbnail  TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS cv_renders (
	id         UUID PRIMARY KEY,
	cv_id      UUID NOT NULL REFERENCES cvs(id) ON DELETE CASCADE,
	template   TEXT NOT NULL,
	tex        TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_cv_renders_cv_id ON cv_renders (cv_id, created_at DESC);
`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the tables when they do not exist yet
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// GetCV retrieves a saved CV record by ID. Returns nil when no record exists.
func (db *DB) GetCV(ctx context.Context, id uuid.UUID) (*SavedCV, error) {
	var saved SavedCV
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, name, cv_data, thumbnail, created_at, updated_at
		 FROM cvs WHERE id = $1`,
		id,
	).Scan(&saved.ID, &saved.UserID, &saved.Name, &data, &saved.Thumbnail, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cv %s: %w", id, err)
	}

	if err := json.Unmarshal(data, &saved.Data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cv %s: %w", id, err)
	}
	return &saved, nil
}

// SaveCV inserts a CV record and returns its ID
func (db *DB) SaveCV(ctx context.Context, userID, name string, cv *types.CVData) (uuid.UUID, error) {
	data, err := json.Marshal(cv)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal cv: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO cvs (user_id, name, cv_data)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		userID, name, data,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save cv: %w", err)
	}
	return id, nil
}

// SaveRender stores a rendered document for a CV and returns the new render
func (db *DB) SaveRender(ctx context.Context, cvID uuid.UUID, template types.TemplateID, tex string) (*Render, error) {
	render := Render{
		ID:       uuid.New(),
		CVID:     cvID,
		Template: template,
		TeX:      tex,
	}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO cv_renders (id, cv_id, template, tex)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		render.ID, render.CVID, string(render.Template), render.TeX,
	).Scan(&render.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save render for cv %s: %w", cvID, err)
	}
	return &render, nil
}

// GetLatestRender retrieves the most recent render of a CV with the given
// template. Returns nil when the CV was never rendered with it.
func (db *DB) GetLatestRender(ctx context.Context, cvID uuid.UUID, template types.TemplateID) (*Render, error) {
	var render Render
	var tmpl string
	err := db.pool.QueryRow(ctx,
		`SELECT id, cv_id, template, tex, created_at
		 FROM cv_renders WHERE cv_id = $1 AND template = $2
		 ORDER BY created_at DESC LIMIT 1`,
		cvID, string(template),
	).Scan(&render.ID, &render.CVID, &tmpl, &render.TeX, &render.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest render for cv %s: %w", cvID, err)
	}
	render.Template = types.TemplateID(tmpl)
	return &render, nil
}

// ListRenders returns the render history of a CV, newest first, without the
// document bodies.
func (db *DB) ListRenders(ctx context.Context, cvID uuid.UUID) ([]RenderSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, template, length(tex), created_at
		 FROM cv_renders WHERE cv_id = $1
		 ORDER BY created_at DESC`,
		cvID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list renders for cv %s: %w", cvID, err)
	}
	defer rows.Close()

	var summaries []RenderSummary
	for rows.Next() {
		var s RenderSummary
		var tmpl string
		if err := rows.Scan(&s.ID, &tmpl, &s.Size, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan render: %w", err)
		}
		s.Template = types.TemplateID(tmpl)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate renders: %w", err)
	}
	return summaries, nil
}
