// Package transaction drives an enquiry from raw input through validation,
// persistence and the optional payment leg. Enquiry creation and payment
// are independently committed steps: a rejected payment never rolls back
// the stored enquiry.
package transaction

import (
	"context"
	"fmt"
	"time"

	"skgroup/lib/data"
	"skgroup/lib/email"
	"skgroup/lib/models"
	"skgroup/lib/payments"
	"skgroup/lib/refid"
	"skgroup/lib/validation"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// State tracks how far a submission progressed.
type State string

const (
	StateDraft        State = "draft"
	StateInvalid      State = "invalid"
	StateValidated    State = "validated"
	StatePersisted    State = "persisted"
	StateOrderCreated State = "order_created"
	StateVerified     State = "verified"
	StateRejected     State = "rejected"
)

// AttachmentStore is the blob hand-off for contact-form uploads.
type AttachmentStore interface {
	UploadObject(ctx context.Context, key string, data []byte, contentType string) error
}

// Orchestrator composes the stores, the payment provider and the mailer
// into the end-to-end pipeline. All fields are read-only after
// construction, so one instance serves concurrent requests.
type Orchestrator struct {
	Projects    data.ProjectRepository
	Enquiries   data.EnquiryRepository
	Payments    data.PaymentRepository
	Orders      payments.OrderClient
	Attachments AttachmentStore
	Router      *email.Router
	Mailer      *email.Mailer
	KeySecret   string
	Logger      *logrus.Logger
}

// EnquiryResult is the outcome of a project-linked enquiry submission.
type EnquiryResult struct {
	State   State
	Enquiry *models.ProjectEnquiry
	Invalid *validation.FieldError
}

// ContactResult is the outcome of a simple contact-form submission.
type ContactResult struct {
	State   State
	Receipt *models.ContactEnquiryReceipt
	Invalid *validation.FieldError
}

// VerifyResult is the outcome of a payment callback check.
type VerifyResult struct {
	State    State
	Response *models.VerifyPaymentResponse
}

// SubmitProjectEnquiry validates and persists a project-linked enquiry.
// Validation failure is terminal with no side effects.
func (o *Orchestrator) SubmitProjectEnquiry(ctx context.Context, request *models.CreateProjectEnquiryRequest) (*EnquiryResult, error) {
	validated, fieldErr, err := validation.ProjectEnquiry(ctx, request, o.Projects)
	if err != nil {
		return nil, fmt.Errorf("enquiry validation failed: %w", err)
	}
	if fieldErr != nil {
		o.Logger.WithFields(logrus.Fields{
			"field": fieldErr.Field,
			"code":  fieldErr.Code,
		}).Debug("Project enquiry rejected by validation")
		return &EnquiryResult{State: StateInvalid, Invalid: fieldErr}, nil
	}

	record, err := o.Enquiries.CreateProjectEnquiry(ctx, validated)
	if err != nil {
		return nil, err
	}

	return &EnquiryResult{State: StatePersisted, Enquiry: record}, nil
}

// SubmitContactEnquiry validates a simple contact enquiry, stores the
// optional attachment, mints a reference id and notifies the routed
// division mailbox. The enquiry itself is never written to the relational
// store; the log record and the receipt are its only traces.
func (o *Orchestrator) SubmitContactEnquiry(ctx context.Context, enquiry *models.ContactEnquiry) (*ContactResult, error) {
	if fieldErr := validation.ContactEnquiry(enquiry); fieldErr != nil {
		o.Logger.WithFields(logrus.Fields{
			"field": fieldErr.Field,
			"code":  fieldErr.Code,
		}).Debug("Contact enquiry rejected by validation")
		return &ContactResult{State: StateInvalid, Invalid: fieldErr}, nil
	}

	referenceID := refid.Generate()
	divisionEmail := o.Router.Route(enquiry.Division)

	if len(enquiry.FileData) > 0 && o.Attachments != nil {
		key := fmt.Sprintf("enquiries/%s/%s-%s", referenceID, uuid.New().String(), enquiry.FileName)
		if err := o.Attachments.UploadObject(ctx, key, enquiry.FileData, ""); err != nil {
			return nil, fmt.Errorf("failed to store enquiry attachment: %w", err)
		}
	}

	o.Logger.WithFields(logrus.Fields{
		"reference_id":   referenceID,
		"division":       enquiry.Division,
		"division_email": divisionEmail,
		"city":           enquiry.City,
		"has_file":       len(enquiry.FileData) > 0,
	}).Info("Enquiry received")

	// Notifications are best-effort; a mail failure never fails the
	// submission.
	go func() {
		if err := o.Mailer.SendEnquiryNotification(divisionEmail, referenceID, enquiry); err != nil {
			o.Logger.WithError(err).Error("Failed to send enquiry notification")
		}
		if err := o.Mailer.SendEnquiryConfirmation(enquiry.Email, referenceID); err != nil {
			o.Logger.WithError(err).Error("Failed to send enquiry confirmation")
		}
	}()

	return &ContactResult{
		State: StatePersisted,
		Receipt: &models.ContactEnquiryReceipt{
			Success:     true,
			ReferenceID: referenceID,
			Message:     "Enquiry submitted successfully",
		},
	}, nil
}

// CreateOrder validates the payment inputs, creates a provider-side order
// correlated by reference id and logs it. Single-shot: provider errors are
// surfaced without retry.
func (o *Orchestrator) CreateOrder(ctx context.Context, request *models.CreateOrderRequest) (*models.CreateOrderResponse, *validation.FieldError, error) {
	if request.Amount <= 0 {
		return nil, &validation.FieldError{
			Field: "amount", Code: "INVALID_AMOUNT",
			Message: "Amount must be a positive number of minor currency units",
		}, nil
	}
	if request.ReferenceID == "" {
		return nil, &validation.FieldError{
			Field: "referenceId", Code: "MISSING_REFERENCE_ID",
			Message: "Amount and reference ID are required",
		}, nil
	}

	currency := request.Currency
	if currency == "" {
		currency = "INR"
	}

	order, err := o.Orders.CreateOrder(ctx, &payments.OrderRequest{
		Amount:   request.Amount,
		Currency: currency,
		Receipt:  request.ReferenceID,
		Notes: map[string]string{
			"division":      request.Division,
			"paymentType":   request.PaymentType,
			"customerEmail": request.CustomerEmail,
			"customerPhone": request.CustomerPhone,
		},
	})
	if err != nil {
		o.Logger.WithFields(logrus.Fields{
			"reference_id": request.ReferenceID,
			"amount":       request.Amount,
			"error":        err.Error(),
		}).Error("Failed to create payment order")
		return nil, nil, err
	}

	paymentType, _ := models.ParsePaymentType(request.PaymentType)
	if _, err := o.Payments.CreateOrderLog(ctx, &models.PaymentOrder{
		OrderID:       order.OrderID,
		Amount:        order.Amount,
		Currency:      order.Currency,
		ReferenceID:   request.ReferenceID,
		Division:      request.Division,
		PaymentType:   paymentType,
		CustomerEmail: request.CustomerEmail,
		CustomerPhone: request.CustomerPhone,
	}); err != nil {
		// The provider order exists; losing the log row is not worth
		// failing the checkout handoff.
		o.Logger.WithError(err).Error("Failed to log payment order")
	}

	return &models.CreateOrderResponse{
		Success:  true,
		OrderID:  order.OrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
	}, nil, nil
}

// VerifyPayment recomputes the callback signature and settles or rejects
// the order. Rejection is terminal and treated as a potential forgery; the
// already-persisted enquiry is never rolled back.
func (o *Orchestrator) VerifyPayment(ctx context.Context, request *models.VerifyPaymentRequest) (*VerifyResult, error) {
	if request.OrderID == "" || request.PaymentID == "" || request.Signature == "" {
		return &VerifyResult{
			State: StateRejected,
			Response: &models.VerifyPaymentResponse{
				Success: false,
				Message: "Missing payment verification parameters",
			},
		}, nil
	}

	if !payments.VerifySignature(request.OrderID, request.PaymentID, request.Signature, o.KeySecret) {
		o.Logger.WithFields(logrus.Fields{
			"order_id":     request.OrderID,
			"reference_id": request.ReferenceID,
		}).Error("Payment verification failed: invalid signature")
		return &VerifyResult{
			State: StateRejected,
			Response: &models.VerifyPaymentResponse{
				Success: false,
				Message: "Payment verification failed",
			},
		}, nil
	}

	if err := o.Payments.MarkOrderPaid(ctx, request.OrderID, request.PaymentID); err != nil {
		// Settlement is proven by the signature; the log row catches up
		// out of band if this write fails.
		o.Logger.WithFields(logrus.Fields{
			"order_id": request.OrderID,
			"error":    err.Error(),
		}).Error("Failed to mark order paid")
	}

	o.Logger.WithFields(logrus.Fields{
		"order_id":     request.OrderID,
		"payment_id":   request.PaymentID,
		"reference_id": request.ReferenceID,
		"verified_at":  time.Now().UTC().Format(time.RFC3339),
	}).Info("Payment verified successfully")

	return &VerifyResult{
		State: StateVerified,
		Response: &models.VerifyPaymentResponse{
			Success:   true,
			Message:   "Payment verified successfully",
			PaymentID: request.PaymentID,
		},
	}, nil
}
