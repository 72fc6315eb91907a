package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"skgroup/lib/api"
	"skgroup/lib/clients"
	"skgroup/lib/constants"
	"skgroup/lib/data"
	"skgroup/lib/models"
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
	projectRepository data.ProjectRepository
)

// Handler processes API Gateway requests for project catalog operations.
// All endpoints are public.
func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.WithFields(logrus.Fields{
		"method":      request.HTTPMethod,
		"path":        request.Path,
		"resource":    request.Resource,
		"path_params": request.PathParameters,
		"operation":   "Handler",
	}).Debug("Processing project catalog request")

	switch {
	case request.Resource == "/projects" && request.HTTPMethod == "POST":
		return handleCreateProject(ctx, request)
	case request.Resource == "/projects" && request.HTTPMethod == "GET":
		return handleGetProjects(ctx, request)
	case request.Resource == "/projects/{projectId}" && request.HTTPMethod == "GET":
		return handleGetProject(ctx, request)
	case request.Resource == "/projects/{projectId}" && request.HTTPMethod == "PUT":
		return handleUpdateProject(ctx, request)
	case request.Resource == "/projects/{projectId}" && request.HTTPMethod == "DELETE":
		return handleDeleteProject(ctx, request)

	default:
		logger.WithFields(logrus.Fields{
			"method":    request.HTTPMethod,
			"resource":  request.Resource,
			"operation": "Handler",
		}).Warn("Endpoint not found")
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil
	}
}

// handleCreateProject handles POST /projects
func handleCreateProject(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var createRequest models.CreateProjectRequest
	if err := api.ParseJSONBody(request.Body, &createRequest); err != nil {
		logger.WithError(err).Error("Invalid request body for create project")
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger), nil
	}

	project, fieldErr := validation.CreateProject(&createRequest)
	if fieldErr != nil {
		logger.WithFields(logrus.Fields{
			"field": fieldErr.Field,
			"code":  fieldErr.Code,
		}).Debug("Project creation rejected by validation")
		return api.CodedErrorResponse(http.StatusBadRequest, fieldErr.Message, fieldErr.Code, logger), nil
	}

	created, err := projectRepository.CreateProject(ctx, project)
	if err != nil {
		logger.WithError(err).Error("Failed to create project")
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to create project", logger), nil
	}

	return api.SuccessResponse(http.StatusCreated, created, logger), nil
}

// handleGetProjects handles GET /projects with division, search, limit and
// offset query parameters
func handleGetProjects(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	filter := &models.ProjectFilter{
		Search: request.QueryStringParameters["search"],
	}

	if division := request.QueryStringParameters["division"]; division != "" {
		parsed, ok := models.ParseDivision(division)
		if !ok {
			message := fmt.Sprintf("Invalid division. Must be one of: %s", models.DivisionNames())
			return api.CodedErrorResponse(http.StatusBadRequest, message, validation.CodeInvalidDivision, logger), nil
		}
		filter.Division = string(parsed)
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

	projects, err := projectRepository.GetProjects(ctx, filter)
	if err != nil {
		logger.WithError(err).Error("Failed to get projects")
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to get projects", logger), nil
	}

	if projects == nil {
		projects = []models.Project{}
	}
	return api.SuccessResponse(http.StatusOK, projects, logger), nil
}

// handleGetProject handles GET /projects/{projectId}
func handleGetProject(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	projectID, err := strconv.ParseInt(request.PathParameters["projectId"], 10, 64)
	if err != nil {
		logger.WithError(err).Error("Invalid project ID")
		return api.CodedErrorResponse(http.StatusBadRequest, "Valid ID is required", "INVALID_ID", logger), nil
	}

	project, err := projectRepository.GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, data.ErrProjectNotFound) {
			return api.CodedErrorResponse(http.StatusNotFound, "Project not found", "NOT_FOUND", logger), nil
		}
		logger.WithError(err).Error("Failed to get project")
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to get project", logger), nil
	}

	return api.SuccessResponse(http.StatusOK, project, logger), nil
}

// handleUpdateProject handles PUT /projects/{projectId}
func handleUpdateProject(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	projectID, err := strconv.ParseInt(request.PathParameters["projectId"], 10, 64)
	if err != nil {
		logger.WithError(err).Error("Invalid project ID")
		return api.CodedErrorResponse(http.StatusBadRequest, "Valid ID is required", "INVALID_ID", logger), nil
	}

	var updateRequest models.UpdateProjectRequest
	if err := api.ParseJSONBody(request.Body, &updateRequest); err != nil {
		logger.WithError(err).Error("Invalid request body for update project")
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger), nil
	}

	if fieldErr := validation.UpdateProject(&updateRequest); fieldErr != nil {
		logger.WithFields(logrus.Fields{
			"field": fieldErr.Field,
			"code":  fieldErr.Code,
		}).Debug("Project update rejected by validation")
		return api.CodedErrorResponse(http.StatusBadRequest, fieldErr.Message, fieldErr.Code, logger), nil
	}

	project, err := projectRepository.UpdateProject(ctx, projectID, &updateRequest)
	if err != nil {
		if errors.Is(err, data.ErrProjectNotFound) {
			return api.CodedErrorResponse(http.StatusNotFound, "Project not found", "NOT_FOUND", logger), nil
		}
		logger.WithError(err).Error("Failed to update project")
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to update project", logger), nil
	}

	return api.SuccessResponse(http.StatusOK, project, logger), nil
}

// handleDeleteProject handles DELETE /projects/{projectId}
func handleDeleteProject(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	projectID, err := strconv.ParseInt(request.PathParameters["projectId"], 10, 64)
	if err != nil {
		logger.WithError(err).Error("Invalid project ID")
		return api.CodedErrorResponse(http.StatusBadRequest, "Valid ID is required", "INVALID_ID", logger), nil
	}

	project, err := projectRepository.DeleteProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, data.ErrProjectNotFound) {
			return api.CodedErrorResponse(http.StatusNotFound, "Project not found", "NOT_FOUND", logger), nil
		}
		logger.WithError(err).Error("Failed to delete project")
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to delete project", logger), nil
	}

	response := models.DeleteProjectResponse{
		Message: "Project deleted successfully",
		Project: *project,
	}
	return api.SuccessResponse(http.StatusOK, response, logger), nil
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

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		logger.WithField("operation", "setupPostgresSQLClient").Debug("PostgreSQL client initialized successfully")
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

	projectRepository = data.NewProjectRepository(sqlDB)
}
