package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func Test_SuccessResponse(t *testing.T) {
	response := SuccessResponse(http.StatusOK, map[string]string{"status": "ok"}, logrus.New())

	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, response.Body)
	assert.Equal(t, "application/json", response.Headers["Content-Type"])
	assert.Equal(t, "*", response.Headers["Access-Control-Allow-Origin"])
}

func Test_ErrorResponse(t *testing.T) {
	response := ErrorResponse(http.StatusBadRequest, "Invalid request body", logrus.New())

	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, response.Body)
}

func Test_CodedErrorResponse(t *testing.T) {
	response := CodedErrorResponse(http.StatusBadRequest, "Name is required", "MISSING_NAME", logrus.New())

	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	assert.JSONEq(t, `{"error":"Name is required","code":"MISSING_NAME"}`, response.Body)
}

func Test_ParseJSONBody(t *testing.T) {
	var target map[string]string
	assert.NoError(t, ParseJSONBody(`{"name":"Asha"}`, &target))
	assert.Equal(t, "Asha", target["name"])

	assert.Error(t, ParseJSONBody("", &target))
	assert.Error(t, ParseJSONBody("not json", &target))
}

func buildMultipartBody(t *testing.T, fields map[string]string, fileName string, fileData []byte) (string, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		assert.NoError(t, writer.WriteField(name, value))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		assert.NoError(t, err)
		_, err = part.Write(fileData)
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())
	return buf.String(), writer.FormDataContentType()
}

func Test_MultipartReader_PlainBody(t *testing.T) {
	body, contentType := buildMultipartBody(t, map[string]string{"name": "Asha"}, "brief.pdf", []byte("dummy"))

	reader, err := MultipartReader(events.APIGatewayProxyRequest{
		Headers: map[string]string{"Content-Type": contentType},
		Body:    body,
	})
	assert.NoError(t, err)

	part, err := reader.NextPart()
	assert.NoError(t, err)
	assert.Equal(t, "name", part.FormName())
	value, _ := io.ReadAll(part)
	assert.Equal(t, "Asha", string(value))

	part, err = reader.NextPart()
	assert.NoError(t, err)
	assert.Equal(t, "file", part.FormName())
	assert.Equal(t, "brief.pdf", part.FileName())
}

func Test_MultipartReader_Base64Body(t *testing.T) {
	body, contentType := buildMultipartBody(t, map[string]string{"city": "Mumbai"}, "", nil)

	reader, err := MultipartReader(events.APIGatewayProxyRequest{
		Headers:         map[string]string{"content-type": contentType},
		Body:            base64.StdEncoding.EncodeToString([]byte(body)),
		IsBase64Encoded: true,
	})
	assert.NoError(t, err)

	part, err := reader.NextPart()
	assert.NoError(t, err)
	value, _ := io.ReadAll(part)
	assert.Equal(t, "Mumbai", string(value))
}

func Test_MultipartReader_RejectsNonMultipart(t *testing.T) {
	payload, _ := json.Marshal(map[string]string{"name": "Asha"})

	_, err := MultipartReader(events.APIGatewayProxyRequest{
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    string(payload),
	})
	assert.Error(t, err)
}
