package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"skgroup/lib/models"

	"github.com/sirupsen/logrus"
)

// ErrOrderNotFound is returned when an order id does not resolve.
var ErrOrderNotFound = errors.New("payment order not found")

// PaymentRepository logs created orders and marks them paid after a
// verified callback. Order rows are correlation records, not the source of
// truth for provider state.
type PaymentRepository interface {
	CreateOrderLog(ctx context.Context, order *models.PaymentOrder) (*models.PaymentOrder, error)
	MarkOrderPaid(ctx context.Context, orderID, paymentID string) error
}

// PaymentDao implements PaymentRepository using PostgreSQL
type PaymentDao struct {
	DB     *sql.DB
	Logger *logrus.Logger
}

// NewPaymentRepository creates a new PaymentRepository instance
func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &PaymentDao{
		DB:     db,
		Logger: logrus.New(),
	}
}

// CreateOrderLog records a created order.
func (dao *PaymentDao) CreateOrderLog(ctx context.Context, order *models.PaymentOrder) (*models.PaymentOrder, error) {
	query := `
		INSERT INTO payment_orders (order_id, amount, currency, reference_id, division, payment_type, customer_email, customer_phone, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	order.Status = models.OrderStatusCreated
	err := dao.DB.QueryRowContext(ctx, query,
		order.OrderID, order.Amount, order.Currency, order.ReferenceID,
		order.Division, order.PaymentType, order.CustomerEmail, order.CustomerPhone,
		order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"order_id":     order.OrderID,
			"reference_id": order.ReferenceID,
			"error":        err.Error(),
		}).Error("Failed to log payment order")
		return nil, fmt.Errorf("failed to log payment order: %w", err)
	}

	dao.Logger.WithFields(logrus.Fields{
		"order_id":     order.OrderID,
		"reference_id": order.ReferenceID,
		"amount":       order.Amount,
	}).Info("Successfully logged payment order")

	return order, nil
}

// MarkOrderPaid records settlement of an order after its callback
// signature verified.
func (dao *PaymentDao) MarkOrderPaid(ctx context.Context, orderID, paymentID string) error {
	query := `
		UPDATE payment_orders
		SET status = $1, payment_id = $2, updated_at = NOW()
		WHERE order_id = $3
	`

	result, err := dao.DB.ExecContext(ctx, query, models.OrderStatusPaid, paymentID, orderID)
	if err != nil {
		dao.Logger.WithFields(logrus.Fields{
			"order_id":   orderID,
			"payment_id": paymentID,
			"error":      err.Error(),
		}).Error("Failed to mark payment order paid")
		return fmt.Errorf("failed to mark payment order paid: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return ErrOrderNotFound
	}

	dao.Logger.WithFields(logrus.Fields{
		"order_id":   orderID,
		"payment_id": paymentID,
	}).Info("Payment order marked paid")

	return nil
}
