package models

import (
	"database/sql"
	"time"
)

// ProjectEnquiry represents a lead captured against the catalog, backed by
// the project_enquiries table. Enquiries are append-only: created once on
// submission, never updated or deleted.
type ProjectEnquiry struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Division  Division      `json:"division"`
	Message   string        `json:"message"`
	ProjectID sql.NullInt64 `json:"project_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// CreateProjectEnquiryRequest represents the submission payload. ProjectID
// is a raw string so a malformed id yields INVALID_PROJECT_ID rather than a
// JSON decode failure.
type CreateProjectEnquiryRequest struct {
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Division  string      `json:"division"`
	Message   string      `json:"message"`
	ProjectID interface{} `json:"projectId,omitempty"`
}

// ValidatedEnquiry is the normalized result of enquiry validation, safe to
// persist as-is.
type ValidatedEnquiry struct {
	Name      string
	Email     string
	Phone     string
	Division  Division
	Message   string
	ProjectID sql.NullInt64
}

// EnquiryFilter narrows and pages enquiry listings.
type EnquiryFilter struct {
	Division  string
	ProjectID int64
	Limit     int
	Offset    int
}

// ContactEnquiry is the simple contact-form variant. It is never stored in
// the relational store; it leaves the system as a log record, a routed
// notification email and a reference id handed back to the visitor.
type ContactEnquiry struct {
	Name     string
	Email    string
	Phone    string
	City     string
	Division string // free-text display label, routed through the email table
	Subject  string
	Message  string

	// Optional attachment, capped at 10 MiB by validation.
	FileName string
	FileData []byte
}

// ContactEnquiryReceipt is returned to the visitor after a successful
// simple-form submission.
type ContactEnquiryReceipt struct {
	Success     bool   `json:"success"`
	ReferenceID string `json:"referenceId"`
	Message     string `json:"message"`
}
