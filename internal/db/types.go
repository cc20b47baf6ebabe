package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cv-builder/internal/types"
)

// SavedCV represents a row of the cvs table
type SavedCV struct {
	ID        uuid.UUID    `json:"id"`
	UserID    string       `json:"user_id"`
	Name      string       `json:"name"`
	Data      types.CVData `json:"cv_data"`
	Thumbnail *string      `json:"thumbnail,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Render represents a stored LaTeX document generated from a saved CV
type Render struct {
	ID        uuid.UUID        `json:"id"`
	CVID      uuid.UUID        `json:"cv_id"`
	Template  types.TemplateID `json:"template"`
	TeX       string           `json:"tex"`
	CreatedAt time.Time        `json:"created_at"`
}

// RenderSummary is a render without its document body
type RenderSummary struct {
	ID        uuid.UUID        `json:"id"`
	Template  types.TemplateID `json:"template"`
	Size      int              `json:"size"`
	CreatedAt time.Time        `json:"created_at"`
}
