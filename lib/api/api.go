package api

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

var corsHeaders = map[string]string{
	"Content-Type":                 "application/json",
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
	"Access-Control-Allow-Methods": "GET,POST,PUT,DELETE,OPTIONS",
}

// SuccessResponse creates a successful API Gateway response
func SuccessResponse(statusCode int, data interface{}, logger *logrus.Logger) events.APIGatewayProxyResponse {
	body, err := json.Marshal(data)
	if err != nil {
		logger.WithError(err).Error("Failed to marshal response data")
		return ErrorResponse(http.StatusInternalServerError, "Internal server error", logger)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers:    corsHeaders,
	}
}

// ErrorResponse creates an error API Gateway response with a plain message
func ErrorResponse(statusCode int, message string, logger *logrus.Logger) events.APIGatewayProxyResponse {
	body, err := json.Marshal(map[string]interface{}{"error": message})
	if err != nil {
		logger.WithError(err).Error("Failed to marshal error response")
		body = []byte(`{"error":"Internal server error"}`)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers:    corsHeaders,
	}
}

// CodedErrorResponse creates an error response carrying a stable machine
// readable code alongside the human message
func CodedErrorResponse(statusCode int, message, code string, logger *logrus.Logger) events.APIGatewayProxyResponse {
	body, err := json.Marshal(map[string]interface{}{
		"error": message,
		"code":  code,
	})
	if err != nil {
		logger.WithError(err).Error("Failed to marshal coded error response")
		return ErrorResponse(http.StatusInternalServerError, "Internal server error", logger)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers:    corsHeaders,
	}
}

// ParseJSONBody unmarshals an API Gateway request body into target
func ParseJSONBody(body string, target interface{}) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("request body is empty")
	}
	if err := json.Unmarshal([]byte(body), target); err != nil {
		return fmt.Errorf("failed to parse request body: %w", err)
	}
	return nil
}

// MultipartReader returns a multipart reader over an API Gateway request
// body. API Gateway delivers binary bodies base64 encoded, so both plain
// and encoded payloads are handled.
func MultipartReader(request events.APIGatewayProxyRequest) (*multipart.Reader, error) {
	contentType := request.Headers["Content-Type"]
	if contentType == "" {
		contentType = request.Headers["content-type"]
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to parse content type: %w", err)
	}
	if !strings.HasPrefix(mediaType, "multipart/") {
		return nil, fmt.Errorf("expected multipart content type, got %s", mediaType)
	}

	body := request.Body
	if request.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode request body: %w", err)
		}
		body = string(decoded)
	}

	return multipart.NewReader(strings.NewReader(body), params["boundary"]), nil
}
