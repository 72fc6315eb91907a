package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"skgroup/lib/models"

	"github.com/sirupsen/logrus"
)

// ErrProjectNotFound is returned when a project id does not resolve.
var ErrProjectNotFound = errors.New("project not found")

// ProjectRepository defines the interface for catalog data operations
type ProjectRepository interface {
	CreateProject(ctx context.Context, project *models.Project) (*models.Project, error)
	GetProjects(ctx context.Context, filter *models.ProjectFilter) ([]models.Project, error)
	GetProjectByID(ctx context.Context, projectID int64) (*models.Project, error)
	UpdateProject(ctx context.Context, projectID int64, request *models.UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, projectID int64) (*models.Project, error)
	ProjectExists(ctx context.Context, projectID int64) (bool, error)
}

// ProjectDao implements ProjectRepository using PostgreSQL
type ProjectDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

// NewProjectRepository creates a new ProjectRepository instance
func NewProjectRepository(db *sql.DB) ProjectRepository {
	return &ProjectDao{
		DB:     db,
		Logger: logrus.New(),
	}
}

const projectColumns = `id, title, division, description, status, location, duration, image, tags, created_at, updated_at`

// CreateProject inserts a validated project and assigns id and both
// timestamps.
func (dao *ProjectDao) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	tags, err := marshalTags(project.Tags)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO projects (title, division, description, status, location, duration, image, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err = dao.DB.QueryRowContext(ctx, query,
		project.Title, project.Division, project.Description, project.Status,
		project.Location, project.Duration, project.Image, tags,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"title":    project.Title,
			"division": project.Division,
			"error":    err.Error(),
		}).Error("Failed to create project")
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"project_id": project.ID,
		"title":      project.Title,
	}).Info("Successfully created project")

	return project, nil
}

// GetProjects lists the catalog. Division is an exact enum match; search is
// a case-insensitive substring match across title, description and location
// combined with OR. Both conditions combine with AND. Results come back in
// insertion order.
func (dao *ProjectDao) GetProjects(ctx context.Context, filter *models.ProjectFilter) ([]models.Project, error) {
	limit, offset := models.ClampLimit(filter.Limit, filter.Offset)

	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.Division != "" {
		conditions = append(conditions, fmt.Sprintf("division = $%d", argIndex))
		args = append(args, filter.Division)
		argIndex++
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d OR location ILIKE $%d)",
			argIndex, argIndex+1, argIndex+2))
		args = append(args, pattern, pattern, pattern)
		argIndex += 3
	}

	query := fmt.Sprintf("SELECT %s FROM projects", projectColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := dao.DB.QueryContext(ctx, query, args...)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"division": filter.Division,
			"search":   filter.Search,
			"error":    err.Error(),
		}).Error("Failed to query projects")
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			dao.Logger.WithError(err).Error("Failed to scan project row")
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}

	if err = rows.Err(); err != nil {
		dao.Logger.WithError(err).Error("Error iterating project rows")
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"count":  len(projects),
		"limit":  limit,
		"offset": offset,
	}).Debug("Successfully retrieved projects")

	return projects, nil
}

// GetProjectByID retrieves a specific project by ID
func (dao *ProjectDao) GetProjectByID(ctx context.Context, projectID int64) (*models.Project, error) {
	query := fmt.Sprintf("SELECT %s FROM projects WHERE id = $1", projectColumns)

	project, err := scanProject(dao.DB.QueryRowContext(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		dao.Logger.WithFields(logrus.Fields{
			"project_id": projectID,
			"error":      err.Error(),
		}).Error("Failed to get project")
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

// ProjectExists reports whether a project id resolves in the catalog.
func (dao *ProjectDao) ProjectExists(ctx context.Context, projectID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)`
	if err := dao.DB.QueryRowContext(ctx, query, projectID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check project existence: %w", err)
	}
	return exists, nil
}

// UpdateProject merges only the provided fields into an existing project.
// updated_at refreshes on every call regardless of which fields changed.
func (dao *ProjectDao) UpdateProject(ctx context.Context, projectID int64, request *models.UpdateProjectRequest) (*models.Project, error) {
	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argIndex := 1

	if request.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", argIndex))
		args = append(args, strings.TrimSpace(*request.Title))
		argIndex++
	}

	if request.Division != nil {
		division, _ := models.ParseDivision(*request.Division)
		setParts = append(setParts, fmt.Sprintf("division = $%d", argIndex))
		args = append(args, division)
		argIndex++
	}

	if request.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", argIndex))
		args = append(args, strings.TrimSpace(*request.Description))
		argIndex++
	}

	if request.Status != nil {
		status, _ := models.ParseProjectStatus(*request.Status)
		setParts = append(setParts, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, status)
		argIndex++
	}

	if request.Location != nil {
		setParts = append(setParts, fmt.Sprintf("location = $%d", argIndex))
		args = append(args, strings.TrimSpace(*request.Location))
		argIndex++
	}

	if request.Duration != nil {
		setParts = append(setParts, fmt.Sprintf("duration = $%d", argIndex))
		args = append(args, strings.TrimSpace(*request.Duration))
		argIndex++
	}

	if request.Image != nil {
		setParts = append(setParts, fmt.Sprintf("image = $%d", argIndex))
		args = append(args, sql.NullString{String: *request.Image, Valid: *request.Image != ""})
		argIndex++
	}

	if len(request.Tags) > 0 && string(request.Tags) != "null" {
		var tags []string
		if err := json.Unmarshal(request.Tags, &tags); err != nil {
			return nil, fmt.Errorf("failed to parse tags: %w", err)
		}
		encoded, err := marshalTags(tags)
		if err != nil {
			return nil, err
		}
		setParts = append(setParts, fmt.Sprintf("tags = $%d", argIndex))
		args = append(args, encoded)
		argIndex++
	}

	query := fmt.Sprintf(`
		UPDATE projects SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setParts, ", "), argIndex, projectColumns)
	args = append(args, projectID)

	project, err := scanProject(dao.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		dao.Logger.WithFields(logrus.Fields{
			"project_id": projectID,
			"error":      err.Error(),
		}).Error("Failed to update project")
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	dao.Logger.WithField("project_id", projectID).Info("Successfully updated project")

	return project, nil
}

// DeleteProject hard-deletes a project and returns the removed record for
// confirmation.
func (dao *ProjectDao) DeleteProject(ctx context.Context, projectID int64) (*models.Project, error) {
	query := fmt.Sprintf("DELETE FROM projects WHERE id = $1 RETURNING %s", projectColumns)

	project, err := scanProject(dao.DB.QueryRowContext(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		dao.Logger.WithFields(logrus.Fields{
			"project_id": projectID,
			"error":      err.Error(),
		}).Error("Failed to delete project")
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}

	dao.Logger.WithField("project_id", projectID).Info("Successfully deleted project")

	return project, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var project models.Project
	var tags []byte

	err := row.Scan(
		&project.ID, &project.Title, &project.Division, &project.Description,
		&project.Status, &project.Location, &project.Duration, &project.Image,
		&tags, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &project.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode project tags: %w", err)
		}
	}

	return &project, nil
}

// marshalTags encodes the tag list for the jsonb column; nil stays NULL.
func marshalTags(tags []string) (interface{}, error) {
	if tags == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode project tags: %w", err)
	}
	return encoded, nil
}
