package validation

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"skgroup/lib/models"
)

// Stable machine-readable codes surfaced with every validation failure.
const (
	CodeMissingName        = "MISSING_NAME"
	CodeMissingEmail       = "MISSING_EMAIL"
	CodeMissingPhone       = "MISSING_PHONE"
	CodeMissingCity        = "MISSING_CITY"
	CodeMissingDivision    = "MISSING_DIVISION"
	CodeMissingSubject     = "MISSING_SUBJECT"
	CodeMissingMessage     = "MISSING_MESSAGE"
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeInvalidDivision    = "INVALID_DIVISION"
	CodeInvalidProjectID   = "INVALID_PROJECT_ID"
	CodeProjectNotFound    = "PROJECT_NOT_FOUND"
	CodeMissingTitle       = "MISSING_TITLE"
	CodeMissingDescription = "MISSING_DESCRIPTION"
	CodeMissingStatus      = "MISSING_STATUS"
	CodeInvalidStatus      = "INVALID_STATUS"
	CodeMissingLocation    = "MISSING_LOCATION"
	CodeMissingDuration    = "MISSING_DURATION"
	CodeInvalidTags        = "INVALID_TAGS"
	CodeFileTooLarge       = "FILE_TOO_LARGE"
)

// MaxAttachmentBytes caps optional contact-form attachments at 10 MiB.
const MaxAttachmentBytes = 10 * 1024 * 1024

// FieldError describes a single user-correctable input problem.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fieldError(field, code, message string) *FieldError {
	return &FieldError{Field: field, Code: code, Message: message}
}

// ProjectFinder is the catalog lookup needed to validate enquiry project
// references. Project existence is part of validation, not a separate step.
type ProjectFinder interface {
	ProjectExists(ctx context.Context, projectID int64) (bool, error)
}

// ProjectEnquiry validates and normalizes a project-linked enquiry
// submission. On success the returned record is safe to persist. A non-nil
// FieldError means user-correctable input; a non-nil error means the
// catalog lookup itself failed.
func ProjectEnquiry(ctx context.Context, req *models.CreateProjectEnquiryRequest, finder ProjectFinder) (*models.ValidatedEnquiry, *FieldError, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fieldError("name", CodeMissingName, "Name is required"), nil
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, fieldError("email", CodeMissingEmail, "Email is required"), nil
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, fieldError("phone", CodeMissingPhone, "Phone is required"), nil
	}

	if strings.TrimSpace(req.Division) == "" {
		return nil, fieldError("division", CodeMissingDivision, "Division is required"), nil
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, fieldError("message", CodeMissingMessage, "Message is required"), nil
	}

	if !strings.Contains(email, "@") {
		return nil, fieldError("email", CodeInvalidEmail, "Invalid email format"), nil
	}

	division, ok := models.ParseDivision(req.Division)
	if !ok {
		return nil, fieldError("division", CodeInvalidDivision,
			fmt.Sprintf("Division must be one of: %s", models.DivisionNames())), nil
	}

	validated := &models.ValidatedEnquiry{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Division: division,
		Message:  message,
	}

	if req.ProjectID != nil {
		projectID, ok := parseProjectID(req.ProjectID)
		if !ok {
			return nil, fieldError("projectId", CodeInvalidProjectID, "Invalid project ID format"), nil
		}

		exists, err := finder.ProjectExists(ctx, projectID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to look up project %d: %w", projectID, err)
		}
		if !exists {
			return nil, fieldError("projectId", CodeProjectNotFound, "Project not found"), nil
		}

		validated.ProjectID = sql.NullInt64{Int64: projectID, Valid: true}
	}

	return validated, nil, nil
}

// parseProjectID accepts the JSON number and string encodings clients send
// for project ids.
func parseProjectID(raw interface{}) (int64, bool) {
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}

// ContactEnquiry validates the simple contact form. The division here is a
// free-text display label routed through the email table, so it is only
// checked for presence, never against the enum.
func ContactEnquiry(enquiry *models.ContactEnquiry) *FieldError {
	checks := []struct {
		value string
		field string
		code  string
	}{
		{enquiry.Name, "name", CodeMissingName},
		{enquiry.Email, "email", CodeMissingEmail},
		{enquiry.Phone, "phone", CodeMissingPhone},
		{enquiry.City, "city", CodeMissingCity},
		{enquiry.Division, "division", CodeMissingDivision},
		{enquiry.Subject, "subject", CodeMissingSubject},
		{enquiry.Message, "message", CodeMissingMessage},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			return fieldError(c.field, c.code, "All required fields must be filled")
		}
	}

	if !strings.Contains(enquiry.Email, "@") {
		return fieldError("email", CodeInvalidEmail, "Invalid email format")
	}

	if len(enquiry.FileData) > MaxAttachmentBytes {
		return fieldError("file", CodeFileTooLarge, "File size should not exceed 10MB")
	}

	return nil
}

// CreateProject validates a project creation payload and returns the
// normalized field set.
func CreateProject(req *models.CreateProjectRequest) (*models.Project, *FieldError) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fieldError("title", CodeMissingTitle, "Title is required")
	}

	if strings.TrimSpace(req.Division) == "" {
		return nil, fieldError("division", CodeMissingDivision, "Division is required")
	}
	division, ok := models.ParseDivision(req.Division)
	if !ok {
		return nil, fieldError("division", CodeInvalidDivision,
			fmt.Sprintf("Invalid division. Must be one of: %s", models.DivisionNames()))
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fieldError("description", CodeMissingDescription, "Description is required")
	}

	if strings.TrimSpace(req.Status) == "" {
		return nil, fieldError("status", CodeMissingStatus, "Status is required")
	}
	status, ok := models.ParseProjectStatus(req.Status)
	if !ok {
		return nil, fieldError("status", CodeInvalidStatus,
			"Invalid status. Must be one of: Completed, Ongoing")
	}

	location := strings.TrimSpace(req.Location)
	if location == "" {
		return nil, fieldError("location", CodeMissingLocation, "Location is required")
	}

	duration := strings.TrimSpace(req.Duration)
	if duration == "" {
		return nil, fieldError("duration", CodeMissingDuration, "Duration is required")
	}

	tags, tagErr := parseTags(req.Tags)
	if tagErr != nil {
		return nil, tagErr
	}

	project := &models.Project{
		Title:       title,
		Division:    division,
		Description: description,
		Status:      status,
		Location:    location,
		Duration:    duration,
		Tags:        tags,
	}
	if image := strings.TrimSpace(req.Image); image != "" {
		project.Image.String = image
		project.Image.Valid = true
	}
	return project, nil
}

// UpdateProject validates only the fields present in a partial update.
func UpdateProject(req *models.UpdateProjectRequest) *FieldError {
	if req.Division != nil {
		if _, ok := models.ParseDivision(*req.Division); !ok {
			return fieldError("division", CodeInvalidDivision,
				fmt.Sprintf("Invalid division. Must be one of: %s", models.DivisionNames()))
		}
	}
	if req.Status != nil {
		if _, ok := models.ParseProjectStatus(*req.Status); !ok {
			return fieldError("status", CodeInvalidStatus,
				"Invalid status. Must be one of: Completed, Ongoing")
		}
	}
	if _, err := parseTags(req.Tags); err != nil {
		return err
	}
	return nil
}

// parseTags enforces that tags, when provided, is a JSON array of strings.
// Scalars are a validation error, not a transport failure.
func parseTags(raw json.RawMessage) ([]string, *FieldError) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, fieldError("tags", CodeInvalidTags, "Tags must be an array")
	}
	return tags, nil
}

// Tags re-exposes tag parsing for the repositories' update path.
func Tags(raw json.RawMessage) ([]string, *FieldError) {
	return parseTags(raw)
}
