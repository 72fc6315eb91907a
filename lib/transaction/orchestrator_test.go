package transaction

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"skgroup/lib/data"
	"skgroup/lib/email"
	"skgroup/lib/models"
	"skgroup/lib/payments"
	"skgroup/lib/validation"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type MockProjectRepository struct {
	Exists bool
}

func (m *MockProjectRepository) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	return project, nil
}

func (m *MockProjectRepository) GetProjects(ctx context.Context, filter *models.ProjectFilter) ([]models.Project, error) {
	return nil, nil
}

func (m *MockProjectRepository) GetProjectByID(ctx context.Context, projectID int64) (*models.Project, error) {
	return nil, data.ErrProjectNotFound
}

func (m *MockProjectRepository) UpdateProject(ctx context.Context, projectID int64, request *models.UpdateProjectRequest) (*models.Project, error) {
	return nil, data.ErrProjectNotFound
}

func (m *MockProjectRepository) DeleteProject(ctx context.Context, projectID int64) (*models.Project, error) {
	return nil, data.ErrProjectNotFound
}

func (m *MockProjectRepository) ProjectExists(ctx context.Context, projectID int64) (bool, error) {
	return m.Exists, nil
}

type MockEnquiryRepository struct {
	Created []models.ValidatedEnquiry
	Err     error
}

func (m *MockEnquiryRepository) CreateProjectEnquiry(ctx context.Context, enquiry *models.ValidatedEnquiry) (*models.ProjectEnquiry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Created = append(m.Created, *enquiry)
	return &models.ProjectEnquiry{
		ID:        int64(len(m.Created)),
		Name:      enquiry.Name,
		Email:     enquiry.Email,
		Phone:     enquiry.Phone,
		Division:  enquiry.Division,
		Message:   enquiry.Message,
		ProjectID: enquiry.ProjectID,
	}, nil
}

func (m *MockEnquiryRepository) GetProjectEnquiries(ctx context.Context, filter *models.EnquiryFilter) ([]models.ProjectEnquiry, error) {
	return nil, nil
}

func (m *MockEnquiryRepository) GetProjectEnquiryByID(ctx context.Context, enquiryID int64) (*models.ProjectEnquiry, error) {
	return nil, data.ErrEnquiryNotFound
}

type MockPaymentRepository struct {
	Logged []models.PaymentOrder
	Paid   map[string]string
	LogErr error
}

func (m *MockPaymentRepository) CreateOrderLog(ctx context.Context, order *models.PaymentOrder) (*models.PaymentOrder, error) {
	if m.LogErr != nil {
		return nil, m.LogErr
	}
	m.Logged = append(m.Logged, *order)
	return order, nil
}

func (m *MockPaymentRepository) MarkOrderPaid(ctx context.Context, orderID, paymentID string) error {
	if m.Paid == nil {
		m.Paid = map[string]string{}
	}
	m.Paid[orderID] = paymentID
	return nil
}

type MockOrderClient struct {
	LastRequest *payments.OrderRequest
	Err         error
}

func (m *MockOrderClient) CreateOrder(ctx context.Context, request *payments.OrderRequest) (*payments.Order, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.LastRequest = request
	return &payments.Order{
		OrderID:  "order_ABC123",
		Amount:   request.Amount,
		Currency: request.Currency,
		Receipt:  request.Receipt,
		Status:   "created",
	}, nil
}

type MockAttachmentStore struct {
	Keys []string
	Err  error
}

func (m *MockAttachmentStore) UploadObject(ctx context.Context, key string, fileData []byte, contentType string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Keys = append(m.Keys, key)
	return nil
}

func newTestOrchestrator() (*Orchestrator, *MockEnquiryRepository, *MockPaymentRepository, *MockOrderClient, *MockAttachmentStore) {
	enquiries := &MockEnquiryRepository{}
	paymentsRepo := &MockPaymentRepository{}
	orders := &MockOrderClient{}
	attachments := &MockAttachmentStore{}

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	orchestrator := &Orchestrator{
		Projects:    &MockProjectRepository{Exists: true},
		Enquiries:   enquiries,
		Payments:    paymentsRepo,
		Orders:      orders,
		Attachments: attachments,
		Router:      email.NewRouter("", nil),
		Mailer:      email.NewMailer(email.Config{Enabled: false}),
		KeySecret:   "secret-key",
		Logger:      logger,
	}
	return orchestrator, enquiries, paymentsRepo, orders, attachments
}

func Test_SubmitProjectEnquiry_Persisted(t *testing.T) {
	orchestrator, enquiries, _, _, _ := newTestOrchestrator()

	result, err := orchestrator.SubmitProjectEnquiry(context.Background(), &models.CreateProjectEnquiryRequest{
		Name:      "Asha Verma",
		Email:     "asha@example.com",
		Phone:     "12345",
		Division:  "construction",
		Message:   "Interested in the riverside development.",
		ProjectID: float64(42),
	})

	assert.NoError(t, err)
	assert.Equal(t, StatePersisted, result.State)
	assert.Nil(t, result.Invalid)
	assert.Len(t, enquiries.Created, 1)
	assert.Equal(t, int64(42), enquiries.Created[0].ProjectID.Int64)
}

func Test_SubmitProjectEnquiry_InvalidHasNoSideEffects(t *testing.T) {
	orchestrator, enquiries, _, _, _ := newTestOrchestrator()

	result, err := orchestrator.SubmitProjectEnquiry(context.Background(), &models.CreateProjectEnquiryRequest{
		Name:     "Asha Verma",
		Email:    "asha@example.com",
		Phone:    "12345",
		Division: "plumbing",
		Message:  "Hello.",
	})

	assert.NoError(t, err)
	assert.Equal(t, StateInvalid, result.State)
	assert.Equal(t, validation.CodeInvalidDivision, result.Invalid.Code)
	assert.Empty(t, enquiries.Created)
}

func Test_SubmitProjectEnquiry_UnknownProjectHasNoSideEffects(t *testing.T) {
	orchestrator, enquiries, _, _, _ := newTestOrchestrator()
	orchestrator.Projects = &MockProjectRepository{Exists: false}

	result, err := orchestrator.SubmitProjectEnquiry(context.Background(), &models.CreateProjectEnquiryRequest{
		Name:      "Asha Verma",
		Email:     "asha@example.com",
		Phone:     "12345",
		Division:  "construction",
		Message:   "Hello.",
		ProjectID: float64(9999),
	})

	assert.NoError(t, err)
	assert.Equal(t, StateInvalid, result.State)
	assert.Equal(t, validation.CodeProjectNotFound, result.Invalid.Code)
	assert.Empty(t, enquiries.Created)
}

func Test_SubmitContactEnquiry_ReceiptAndAttachment(t *testing.T) {
	orchestrator, _, _, _, attachments := newTestOrchestrator()

	result, err := orchestrator.SubmitContactEnquiry(context.Background(), &models.ContactEnquiry{
		Name:     "Asha Verma",
		Email:    "asha@example.com",
		Phone:    "12345",
		City:     "Mumbai",
		Division: "Legal Network",
		Subject:  "Retainer enquiry",
		Message:  "Please share terms.",
		FileName: "brief.pdf",
		FileData: []byte("dummy"),
	})

	assert.NoError(t, err)
	assert.Equal(t, StatePersisted, result.State)
	assert.True(t, result.Receipt.Success)
	assert.True(t, strings.HasPrefix(result.Receipt.ReferenceID, "SK-"))
	assert.Len(t, attachments.Keys, 1)
	assert.True(t, strings.HasPrefix(attachments.Keys[0], "enquiries/"+result.Receipt.ReferenceID+"/"))
	assert.True(t, strings.HasSuffix(attachments.Keys[0], "-brief.pdf"))
}

func Test_SubmitContactEnquiry_Invalid(t *testing.T) {
	orchestrator, _, _, _, attachments := newTestOrchestrator()

	result, err := orchestrator.SubmitContactEnquiry(context.Background(), &models.ContactEnquiry{
		Name: "Asha Verma",
	})

	assert.NoError(t, err)
	assert.Equal(t, StateInvalid, result.State)
	assert.Equal(t, validation.CodeMissingEmail, result.Invalid.Code)
	assert.Empty(t, attachments.Keys)
}

func Test_SubmitContactEnquiry_UploadFailureSurfaces(t *testing.T) {
	orchestrator, _, _, _, attachments := newTestOrchestrator()
	attachments.Err = errors.New("bucket unavailable")

	_, err := orchestrator.SubmitContactEnquiry(context.Background(), &models.ContactEnquiry{
		Name:     "Asha Verma",
		Email:    "asha@example.com",
		Phone:    "12345",
		City:     "Mumbai",
		Division: "Legal Network",
		Subject:  "Retainer enquiry",
		Message:  "Please share terms.",
		FileName: "brief.pdf",
		FileData: []byte("dummy"),
	})

	assert.Error(t, err)
}

func Test_CreateOrder_Success(t *testing.T) {
	orchestrator, _, paymentsRepo, orders, _ := newTestOrchestrator()

	response, fieldErr, err := orchestrator.CreateOrder(context.Background(), &models.CreateOrderRequest{
		Amount:      50000,
		ReferenceID: "SK-ABC-12345",
		Division:    "legal",
		PaymentType: "consultation",
	})

	assert.NoError(t, err)
	assert.Nil(t, fieldErr)
	assert.True(t, response.Success)
	assert.Equal(t, "order_ABC123", response.OrderID)
	assert.Equal(t, "INR", response.Currency)
	assert.Equal(t, "SK-ABC-12345", orders.LastRequest.Receipt)
	assert.Len(t, paymentsRepo.Logged, 1)
	assert.Equal(t, models.PaymentConsultation, paymentsRepo.Logged[0].PaymentType)
}

func Test_CreateOrder_InvalidAmount(t *testing.T) {
	orchestrator, _, paymentsRepo, _, _ := newTestOrchestrator()

	_, fieldErr, err := orchestrator.CreateOrder(context.Background(), &models.CreateOrderRequest{
		Amount:      0,
		ReferenceID: "SK-ABC-12345",
	})

	assert.NoError(t, err)
	assert.Equal(t, "INVALID_AMOUNT", fieldErr.Code)
	assert.Empty(t, paymentsRepo.Logged)
}

func Test_CreateOrder_MissingReference(t *testing.T) {
	orchestrator, _, _, _, _ := newTestOrchestrator()

	_, fieldErr, err := orchestrator.CreateOrder(context.Background(), &models.CreateOrderRequest{
		Amount: 50000,
	})

	assert.NoError(t, err)
	assert.Equal(t, "MISSING_REFERENCE_ID", fieldErr.Code)
}

func Test_CreateOrder_ProviderFailure(t *testing.T) {
	orchestrator, _, paymentsRepo, orders, _ := newTestOrchestrator()
	orders.Err = errors.New("provider unavailable")

	response, fieldErr, err := orchestrator.CreateOrder(context.Background(), &models.CreateOrderRequest{
		Amount:      50000,
		ReferenceID: "SK-ABC-12345",
	})

	assert.Error(t, err)
	assert.Nil(t, fieldErr)
	assert.Nil(t, response)
	assert.Empty(t, paymentsRepo.Logged)
}

func Test_CreateOrder_LogFailureDoesNotFailCheckout(t *testing.T) {
	orchestrator, _, paymentsRepo, _, _ := newTestOrchestrator()
	paymentsRepo.LogErr = errors.New("db down")

	response, fieldErr, err := orchestrator.CreateOrder(context.Background(), &models.CreateOrderRequest{
		Amount:      50000,
		ReferenceID: "SK-ABC-12345",
	})

	assert.NoError(t, err)
	assert.Nil(t, fieldErr)
	assert.True(t, response.Success)
}

func callbackSignature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func Test_VerifyPayment_Valid(t *testing.T) {
	orchestrator, _, paymentsRepo, _, _ := newTestOrchestrator()

	result, err := orchestrator.VerifyPayment(context.Background(), &models.VerifyPaymentRequest{
		OrderID:   "order_ABC123",
		PaymentID: "pay_XYZ789",
		Signature: callbackSignature("order_ABC123", "pay_XYZ789", "secret-key"),
	})

	assert.NoError(t, err)
	assert.Equal(t, StateVerified, result.State)
	assert.True(t, result.Response.Success)
	assert.Equal(t, "pay_XYZ789", result.Response.PaymentID)
	assert.Equal(t, "pay_XYZ789", paymentsRepo.Paid["order_ABC123"])
}

func Test_VerifyPayment_ForgedSignatureRejected(t *testing.T) {
	orchestrator, _, paymentsRepo, _, _ := newTestOrchestrator()

	result, err := orchestrator.VerifyPayment(context.Background(), &models.VerifyPaymentRequest{
		OrderID:   "order_ABC123",
		PaymentID: "pay_XYZ789",
		Signature: callbackSignature("order_ABC123", "pay_XYZ789", "wrong-secret"),
	})

	assert.NoError(t, err)
	assert.Equal(t, StateRejected, result.State)
	assert.False(t, result.Response.Success)
	assert.Equal(t, "Payment verification failed", result.Response.Message)
	assert.Empty(t, paymentsRepo.Paid)
}

func Test_VerifyPayment_MissingParametersRejected(t *testing.T) {
	orchestrator, _, _, _, _ := newTestOrchestrator()

	result, err := orchestrator.VerifyPayment(context.Background(), &models.VerifyPaymentRequest{
		OrderID: "order_ABC123",
	})

	assert.NoError(t, err)
	assert.Equal(t, StateRejected, result.State)
	assert.False(t, result.Response.Success)
}

func Test_EndToEnd_EnquiryThenPayment(t *testing.T) {
	orchestrator, enquiries, paymentsRepo, _, _ := newTestOrchestrator()

	enquiryResult, err := orchestrator.SubmitProjectEnquiry(context.Background(), &models.CreateProjectEnquiryRequest{
		Name:     "Asha Verma",
		Email:    "asha@example.com",
		Phone:    "12345",
		Division: "legal",
		Message:  "Please call me about a retainer.",
	})
	assert.NoError(t, err)
	assert.Equal(t, StatePersisted, enquiryResult.State)

	contactResult, err := orchestrator.SubmitContactEnquiry(context.Background(), &models.ContactEnquiry{
		Name:     "Asha Verma",
		Email:    "asha@example.com",
		Phone:    "12345",
		City:     "Mumbai",
		Division: "Legal Network",
		Subject:  "Consultation",
		Message:  "Booking a consultation.",
	})
	assert.NoError(t, err)
	referenceID := contactResult.Receipt.ReferenceID

	orderResponse, fieldErr, err := orchestrator.CreateOrder(context.Background(), &models.CreateOrderRequest{
		Amount:      50000,
		ReferenceID: referenceID,
		PaymentType: "consultation",
	})
	assert.NoError(t, err)
	assert.Nil(t, fieldErr)

	verifyResult, err := orchestrator.VerifyPayment(context.Background(), &models.VerifyPaymentRequest{
		OrderID:     orderResponse.OrderID,
		PaymentID:   "pay_XYZ789",
		Signature:   callbackSignature(orderResponse.OrderID, "pay_XYZ789", "secret-key"),
		ReferenceID: referenceID,
	})
	assert.NoError(t, err)
	assert.Equal(t, StateVerified, verifyResult.State)

	// The persisted enquiry survives the payment leg regardless of outcome.
	assert.Len(t, enquiries.Created, 1)
	assert.Equal(t, referenceID, paymentsRepo.Logged[0].ReferenceID)
}

func Test_VerifyPayment_RejectionLeavesEnquiryIntact(t *testing.T) {
	orchestrator, enquiries, _, _, _ := newTestOrchestrator()

	_, err := orchestrator.SubmitProjectEnquiry(context.Background(), &models.CreateProjectEnquiryRequest{
		Name:     "Asha Verma",
		Email:    "asha@example.com",
		Phone:    "12345",
		Division: "legal",
		Message:  "Please call me.",
	})
	assert.NoError(t, err)

	result, err := orchestrator.VerifyPayment(context.Background(), &models.VerifyPaymentRequest{
		OrderID:   "order_ABC123",
		PaymentID: "pay_XYZ789",
		Signature: "forged",
	})
	assert.NoError(t, err)
	assert.Equal(t, StateRejected, result.State)
	assert.Len(t, enquiries.Created, 1)
}
