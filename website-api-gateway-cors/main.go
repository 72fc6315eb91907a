package main

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"skgroup/lib/clients"
	"skgroup/lib/constants"
	"skgroup/lib/data"
	"skgroup/lib/util"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

var (
	logger         *logrus.Logger
	isLocal        bool
	ssmRepository  data.SSMRepository
	ssmParams      map[string]string
	allowedOrigins []string
)

// handler answers OPTIONS preflight requests. The origin must match the
// configured allow list; "*" in the list admits any origin but the response
// still echoes the concrete request origin.
func handler(request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	requestOrigin, ok := request.Headers["origin"]
	if !ok {
		requestOrigin, ok = request.Headers["Origin"]
	}
	if !ok {
		logger.WithField("operation", "handler").Warn("Origin header missing from preflight request")
		return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest}, nil
	}

	for _, allowedOrigin := range allowedOrigins {
		if allowedOrigin == "*" || allowedOrigin == requestOrigin {
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusOK,
				Headers: map[string]string{
					"Access-Control-Allow-Origin":  requestOrigin,
					"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
					"Access-Control-Allow-Methods": "GET, PUT, DELETE, POST, OPTIONS",
					"Access-Control-Max-Age":       "300",
				},
			}, nil
		}
	}

	logger.WithFields(logrus.Fields{
		"origin":    requestOrigin,
		"operation": "handler",
	}).Warn("Rejected preflight from unauthorized origin")

	return events.APIGatewayProxyResponse{StatusCode: http.StatusForbidden}, nil
}

func main() {
	lambda.Start(handler)
}

func init() {
	isLocal, _ = strconv.ParseBool(os.Getenv("IS_LOCAL"))

	logger = logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		PrettyPrint: isLocal,
	})
	util.SetLogLevel(logger, os.Getenv("LOG_LEVEL"))

	ssmClient := clients.NewSSMClient(isLocal)
	ssmRepository = &data.SSMDao{
		SSM:    ssmClient,
		Logger: logger,
	}

	var err error
	ssmParams, err = ssmRepository.GetParameters()
	if err != nil {
		logger.WithFields(logrus.Fields{
			"operation": "init",
			"error":     err.Error(),
		}).Fatal("Error while getting SSM params from parameter store")
	}

	for _, origin := range strings.Split(ssmParams[constants.ALLOWED_ORIGINS], ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowedOrigins = append(allowedOrigins, origin)
		}
	}
}
