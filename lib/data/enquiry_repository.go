package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"skgroup/lib/models"

	"github.com/sirupsen/logrus"
)

// ErrEnquiryNotFound is returned when an enquiry id does not resolve.
var ErrEnquiryNotFound = errors.New("enquiry not found")

// EnquiryRepository defines the interface for project enquiry data
// operations. The log is append-only: there is no update or delete.
type EnquiryRepository interface {
	CreateProjectEnquiry(ctx context.Context, enquiry *models.ValidatedEnquiry) (*models.ProjectEnquiry, error)
	GetProjectEnquiries(ctx context.Context, filter *models.EnquiryFilter) ([]models.ProjectEnquiry, error)
	GetProjectEnquiryByID(ctx context.Context, enquiryID int64) (*models.ProjectEnquiry, error)
}

// EnquiryDao implements EnquiryRepository using PostgreSQL
type EnquiryDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

// NewEnquiryRepository creates a new EnquiryRepository instance
func NewEnquiryRepository(db *sql.DB) EnquiryRepository {
	return &EnquiryDao{
		DB:     db,
		Logger: logrus.New(),
	}
}

const enquiryColumns = `id, name, email, phone, division, message, project_id, created_at`

// CreateProjectEnquiry persists a validated enquiry. The project reference,
// when present, must already have been checked against the catalog.
func (dao *EnquiryDao) CreateProjectEnquiry(ctx context.Context, enquiry *models.ValidatedEnquiry) (*models.ProjectEnquiry, error) {
	record := &models.ProjectEnquiry{
		Name:      enquiry.Name,
		Email:     enquiry.Email,
		Phone:     enquiry.Phone,
		Division:  enquiry.Division,
		Message:   enquiry.Message,
		ProjectID: enquiry.ProjectID,
	}

	query := `
		INSERT INTO project_enquiries (name, email, phone, division, message, project_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := dao.DB.QueryRowContext(ctx, query,
		record.Name, record.Email, record.Phone, record.Division,
		record.Message, record.ProjectID,
	).Scan(&record.ID, &record.CreatedAt)

	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"email":    record.Email,
			"division": record.Division,
			"error":    err.Error(),
		}).Error("Failed to create project enquiry")
		return nil, fmt.Errorf("failed to create project enquiry: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"enquiry_id": record.ID,
		"division":   record.Division,
	}).Info("Successfully created project enquiry")

	return record, nil
}

// GetProjectEnquiries lists enquiries with the same clamping rules as the
// catalog, in insertion order.
func (dao *EnquiryDao) GetProjectEnquiries(ctx context.Context, filter *models.EnquiryFilter) ([]models.ProjectEnquiry, error) {
	limit, offset := models.ClampLimit(filter.Limit, filter.Offset)

	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.Division != "" {
		conditions = append(conditions, fmt.Sprintf("division = $%d", argIndex))
		args = append(args, filter.Division)
		argIndex++
	}

	if filter.ProjectID != 0 {
		conditions = append(conditions, fmt.Sprintf("project_id = $%d", argIndex))
		args = append(args, filter.ProjectID)
		argIndex++
	}

	query := fmt.Sprintf("SELECT %s FROM project_enquiries", enquiryColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := dao.DB.QueryContext(ctx, query, args...)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"division":   filter.Division,
			"project_id": filter.ProjectID,
			"error":      err.Error(),
		}).Error("Failed to query project enquiries")
		return nil, fmt.Errorf("failed to query project enquiries: %w", err)
	}
	defer rows.Close()

	var enquiries []models.ProjectEnquiry
	for rows.Next() {
		var enquiry models.ProjectEnquiry
		err := rows.Scan(
			&enquiry.ID, &enquiry.Name, &enquiry.Email, &enquiry.Phone,
			&enquiry.Division, &enquiry.Message, &enquiry.ProjectID, &enquiry.CreatedAt,
		)
		if err != nil {
			dao.Logger.WithError(err).Error("Failed to scan enquiry row")
			return nil, fmt.Errorf("failed to scan enquiry: %w", err)
		}
		enquiries = append(enquiries, enquiry)
	}

	if err = rows.Err(); err != nil {
		dao.Logger.WithError(err).Error("Error iterating enquiry rows")
		return nil, fmt.Errorf("error iterating enquiries: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"count":  len(enquiries),
		"limit":  limit,
		"offset": offset,
	}).Debug("Successfully retrieved project enquiries")

	return enquiries, nil
}

// GetProjectEnquiryByID retrieves a specific enquiry by ID
func (dao *EnquiryDao) GetProjectEnquiryByID(ctx context.Context, enquiryID int64) (*models.ProjectEnquiry, error) {
	var enquiry models.ProjectEnquiry
	query := fmt.Sprintf("SELECT %s FROM project_enquiries WHERE id = $1", enquiryColumns)

	err := dao.DB.QueryRowContext(ctx, query, enquiryID).Scan(
		&enquiry.ID, &enquiry.Name, &enquiry.Email, &enquiry.Phone,
		&enquiry.Division, &enquiry.Message, &enquiry.ProjectID, &enquiry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEnquiryNotFound
		}
		dao.Logger.WithFields(logrus.Fields{
			"enquiry_id": enquiryID,
			"error":      err.Error(),
		}).Error("Failed to get project enquiry")
		return nil, fmt.Errorf("failed to get project enquiry: %w", err)
	}

	return &enquiry, nil
}
