package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"skgroup/lib/api"
	"skgroup/lib/clients"
	"skgroup/lib/constants"
	"skgroup/lib/data"
	"skgroup/lib/email"
	"skgroup/lib/models"
	"skgroup/lib/transaction"
	"skgroup/lib/util"
	"skgroup/lib/validation"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

var (
	logger            *logrus.Logger
	isLocal           bool
	ssmRepository     data.SSMRepository
	ssmParams         map[string]string
	sqlDB             *sql.DB
	enquiryRepository data.EnquiryRepository
	orchestrator      *transaction.Orchestrator
)

// Handler processes API Gateway requests for enquiry operations. All
// endpoints are public: the forms are filled by anonymous site visitors.
func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.WithFields(logrus.Fields{
		"method":      request.HTTPMethod,
		"path":        request.Path,
		"resource":    request.Resource,
		"path_params": request.PathParameters,
		"operation":   "Handler",
	}).Debug("Processing enquiry request")

	switch {
	case request.Resource == "/project-enquiries" && request.HTTPMethod == "POST":
		return handleCreateProjectEnquiry(ctx, request)
	case request.Resource == "/project-enquiries" && request.HTTPMethod == "GET":
		return handleGetProjectEnquiries(ctx, request)
	case request.Resource == "/project-enquiries/{enquiryId}" && request.HTTPMethod == "GET":
		return handleGetProjectEnquiry(ctx, request)
	case request.Resource == "/enquiry" && request.HTTPMethod == "POST":
		return handleSubmitContactEnquiry(ctx, request)

	default:
		logger.WithFields(logrus.Fields{
			"method":    request.HTTPMethod,
			"resource":  request.Resource,
			"operation": "Handler",
		}).Warn("Endpoint not found")
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil
	}
}

// handleCreateProjectEnquiry handles POST /project-enquiries
func handleCreateProjectEnquiry(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var createRequest models.CreateProjectEnquiryRequest
	if err := api.ParseJSONBody(request.Body, &createRequest); err != nil {
		logger.WithError(err).Error("Invalid request body for create enquiry")
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger), nil
	}

	result, err := orchestrator.SubmitProjectEnquiry(ctx, &createRequest)
	if err != nil {
		logger.WithError(err).Error("Failed to create project enquiry")
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to create enquiry", logger), nil
	}
	if result.State == transaction.StateInvalid {
		return api.CodedErrorResponse(http.StatusBadRequest, result.Invalid.Message, result.Invalid.Code, logger), nil
	}

	return api.SuccessResponse(http.StatusCreated, result.Enquiry, logger), nil
}

// handleGetProjectEnquiries handles GET /project-enquiries with division,
// projectId, limit and offset query parameters
func handleGetProjectEnquiries(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	filter := &models.EnquiryFilter{
		Division: request.QueryStringParameters["division"],
	}

	if projectIDStr := request.QueryStringParameters["projectId"]; projectIDStr != "" {
		if projectID, err := strconv.ParseInt(projectIDStr, 10, 64); err == nil {
			filter.ProjectID = projectID
		}
	}
	if limitStr := request.QueryStringParameters["limit"]; limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}
	if offsetStr := request.QueryStringParameters["offset"]; offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	enquiries, err := enquiryRepository.GetProjectEnquiries(ctx, filter)
	if err != nil {
		logger.WithError(err).Error("Failed to get project enquiries")
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to get enquiries", logger), nil
	}

	if enquiries == nil {
		enquiries = []models.ProjectEnquiry{}
	}
	return api.SuccessResponse(http.StatusOK, enquiries, logger), nil
}

// handleGetProjectEnquiry handles GET /project-enquiries/{enquiryId}
func handleGetProjectEnquiry(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	enquiryID, err := strconv.ParseInt(request.PathParameters["enquiryId"], 10, 64)
	if err != nil {
		logger.WithError(err).Error("Invalid enquiry ID")
		return api.CodedErrorResponse(http.StatusBadRequest, "Valid ID is required", "INVALID_ID", logger), nil
	}

	enquiry, err := enquiryRepository.GetProjectEnquiryByID(ctx, enquiryID)
	if err != nil {
		if errors.Is(err, data.ErrEnquiryNotFound) {
			return api.CodedErrorResponse(http.StatusNotFound, "Enquiry not found", "NOT_FOUND", logger), nil
		}
		logger.WithError(err).Error("Failed to get project enquiry")
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to get enquiry", logger), nil
	}

	return api.SuccessResponse(http.StatusOK, enquiry, logger), nil
}

// handleSubmitContactEnquiry handles POST /enquiry (multipart form with an
// optional file attachment)
func handleSubmitContactEnquiry(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	enquiry, err := parseContactForm(request)
	if err != nil {
		logger.WithError(err).Error("Invalid multipart body for contact enquiry")
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger), nil
	}

	result, err := orchestrator.SubmitContactEnquiry(ctx, enquiry)
	if err != nil {
		logger.WithError(err).Error("Failed to process contact enquiry")
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to process enquiry", logger), nil
	}
	if result.State == transaction.StateInvalid {
		return api.ErrorResponse(http.StatusBadRequest, result.Invalid.Message, logger), nil
	}

	return api.SuccessResponse(http.StatusOK, result.Receipt, logger), nil
}

// parseContactForm reads the multipart contact submission. The attachment
// read is capped just above the validation limit so oversized uploads are
// rejected with the proper field error instead of being streamed in full.
func parseContactForm(request events.APIGatewayProxyRequest) (*models.ContactEnquiry, error) {
	reader, err := api.MultipartReader(request)
	if err != nil {
		return nil, err
	}

	enquiry := &models.ContactEnquiry{}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read form part: %w", err)
		}

		if part.FormName() == "file" {
			data, err := io.ReadAll(io.LimitReader(part, validation.MaxAttachmentBytes+1))
			if err != nil {
				return nil, fmt.Errorf("failed to read attachment: %w", err)
			}
			enquiry.FileName = part.FileName()
			enquiry.FileData = data
			continue
		}

		value, err := io.ReadAll(part)
		if err != nil {
			return nil, fmt.Errorf("failed to read form field: %w", err)
		}

		switch part.FormName() {
		case "name":
			enquiry.Name = string(value)
		case "email":
			enquiry.Email = string(value)
		case "phone":
			enquiry.Phone = string(value)
		case "city":
			enquiry.City = string(value)
		case "division":
			enquiry.Division = string(value)
		case "subject":
			enquiry.Subject = string(value)
		case "message":
			enquiry.Message = string(value)
		}
	}

	return enquiry, nil
}

// setupPostgresSQLClient initializes the PostgreSQL database connection
func setupPostgresSQLClient(ssmParams map[string]string) error {
	var err error

	sqlDB, err = clients.NewPostgresSQLClient(
		ssmParams[constants.DATABASE_RDS_ENDPOINT],
		ssmParams[constants.DATABASE_PORT],
		ssmParams[constants.DATABASE_NAME],
		ssmParams[constants.DATABASE_USERNAME],
		ssmParams[constants.DATABASE_PASSWORD],
		ssmParams[constants.SSL_MODE],
	)
	if err != nil {
		return fmt.Errorf("error creating PostgreSQL client: %w", err)
	}

	return nil
}

// main is the Lambda function entry point
func main() {
	lambda.Start(Handler)
}

// init initializes the Lambda function during cold start
func init() {
	var err error

	isLocal, _ = strconv.ParseBool(os.Getenv("IS_LOCAL"))

	logger = logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	util.SetLogLevel(logger, os.Getenv("LOG_LEVEL"))

	ssmClient := clients.NewSSMClient(isLocal)
	ssmRepository = &data.SSMDao{
		SSM:    ssmClient,
		Logger: logger,
	}

	ssmParams, err = ssmRepository.GetParameters()
	if err != nil {
		logger.WithFields(logrus.Fields{
			"operation": "init",
			"error":     err.Error(),
		}).Fatal("Error while getting SSM params from parameter store")
	}

	err = setupPostgresSQLClient(ssmParams)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"operation": "init",
			"error":     err.Error(),
		}).Fatal("Error setting up PostgreSQL client")
	}

	enquiryRepository = data.NewEnquiryRepository(sqlDB)

	emailEnabled, _ := strconv.ParseBool(ssmParams[constants.EMAIL_ENABLED])
	mailer := email.NewMailer(email.Config{
		Enabled:  emailEnabled,
		Host:     ssmParams[constants.SMTP_HOST],
		Port:     ssmParams[constants.SMTP_PORT],
		Username: ssmParams[constants.SMTP_USERNAME],
		Password: ssmParams[constants.SMTP_PASSWORD],
		From:     ssmParams[constants.SMTP_FROM],
	})

	orchestrator = &transaction.Orchestrator{
		Projects:    data.NewProjectRepository(sqlDB),
		Enquiries:   enquiryRepository,
		Attachments: clients.NewS3Client(isLocal, ssmParams[constants.ENQUIRY_BUCKET]),
		Router:      email.NewRouter("", nil),
		Mailer:      mailer,
		Logger:      logger,
	}
}
