package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Project represents a catalog entry backed by the projects table
type Project struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Division    Division       `json:"division"`
	Description string         `json:"description"`
	Status      ProjectStatus  `json:"status"`
	Location    string         `json:"location"`
	Duration    string         `json:"duration"`
	Image       sql.NullString `json:"image,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CreateProjectRequest represents the request payload for creating a project.
// Tags stays raw so validation can reject scalars with a stable code instead
// of a transport-level parse failure.
type CreateProjectRequest struct {
	Title       string          `json:"title"`
	Division    string          `json:"division"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Location    string          `json:"location"`
	Duration    string          `json:"duration"`
	Image       string          `json:"image,omitempty"`
	Tags        json.RawMessage `json:"tags,omitempty"`
}

// UpdateProjectRequest represents a partial update. Pointer fields
// distinguish "absent" from "set to empty"; absent fields are left
// untouched while updated_at always refreshes.
type UpdateProjectRequest struct {
	Title       *string         `json:"title,omitempty"`
	Division    *string         `json:"division,omitempty"`
	Description *string         `json:"description,omitempty"`
	Status      *string         `json:"status,omitempty"`
	Location    *string         `json:"location,omitempty"`
	Duration    *string         `json:"duration,omitempty"`
	Image       *string         `json:"image,omitempty"`
	Tags        json.RawMessage `json:"tags,omitempty"`
}

// ProjectFilter narrows and pages catalog listings.
type ProjectFilter struct {
	Division string
	Search   string
	Limit    int
	Offset   int
}

// DeleteProjectResponse returns the removed record for caller confirmation
type DeleteProjectResponse struct {
	Message string  `json:"message"`
	Project Project `json:"project"`
}

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// ClampLimit applies the listing defaults: limit defaults to 10 and is
// capped at 100, offset is never negative.
func ClampLimit(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
