package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"skgroup/lib/api"
	"skgroup/lib/clients"
	"skgroup/lib/constants"
	"skgroup/lib/data"
	"skgroup/lib/models"
	"skgroup/lib/payments"
	"skgroup/lib/transaction"
	"skgroup/lib/util"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

var (
	logger        *logrus.Logger
	isLocal       bool
	ssmRepository data.SSMRepository
	ssmParams     map[string]string
	sqlDB         *sql.DB
	razorpayKeyID string
	orchestrator  *transaction.Orchestrator
)

// Handler processes API Gateway requests for payment operations.
func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.WithFields(logrus.Fields{
		"method":    request.HTTPMethod,
		"path":      request.Path,
		"resource":  request.Resource,
		"operation": "Handler",
	}).Debug("Processing payment request")

	switch {
	case request.Resource == "/payment/create-order" && request.HTTPMethod == "POST":
		return handleCreateOrder(ctx, request)
	case request.Resource == "/payment/verify" && request.HTTPMethod == "POST":
		return handleVerifyPayment(ctx, request)

	default:
		logger.WithFields(logrus.Fields{
			"method":    request.HTTPMethod,
			"resource":  request.Resource,
			"operation": "Handler",
		}).Warn("Endpoint not found")
		return api.ErrorResponse(http.StatusNotFound, "Endpoint not found", logger), nil
	}
}

// handleCreateOrder handles POST /payment/create-order
func handleCreateOrder(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var createRequest models.CreateOrderRequest
	if err := api.ParseJSONBody(request.Body, &createRequest); err != nil {
		logger.WithError(err).Error("Invalid request body for create order")
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger), nil
	}

	response, fieldErr, err := orchestrator.CreateOrder(ctx, &createRequest)
	if err != nil {
		logger.WithError(err).Error("Failed to create payment order")
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to create payment order", logger), nil
	}
	if fieldErr != nil {
		return api.CodedErrorResponse(http.StatusBadRequest, fieldErr.Message, fieldErr.Code, logger), nil
	}

	// The public key id lets the client open the provider checkout.
	response.KeyID = razorpayKeyID
	return api.SuccessResponse(http.StatusOK, response, logger), nil
}

// handleVerifyPayment handles POST /payment/verify
func handleVerifyPayment(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var verifyRequest models.VerifyPaymentRequest
	if err := api.ParseJSONBody(request.Body, &verifyRequest); err != nil {
		logger.WithError(err).Error("Invalid request body for verify payment")
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger), nil
	}

	result, err := orchestrator.VerifyPayment(ctx, &verifyRequest)
	if err != nil {
		logger.WithError(err).Error("Failed to verify payment")
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to verify payment", logger), nil
	}

	if result.State == transaction.StateRejected {
		return api.SuccessResponse(http.StatusBadRequest, result.Response, logger), nil
	}
	return api.SuccessResponse(http.StatusOK, result.Response, logger), nil
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

	razorpayKeyID = ssmParams[constants.RAZORPAY_KEY_ID]
	keySecret := ssmParams[constants.RAZORPAY_KEY_SECRET]

	orchestrator = &transaction.Orchestrator{
		Payments:  data.NewPaymentRepository(sqlDB),
		Orders:    payments.NewRazorpayClient(razorpayKeyID, keySecret),
		KeySecret: keySecret,
		Logger:    logger,
	}
}
