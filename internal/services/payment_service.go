package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/razorpay/razorpay-go"
	razorpayutils "github.com/razorpay/razorpay-go/utils"
	"gorm.io/gorm"

	"roamio/internal/models/db_models"
	"roamio/internal/models/request_models"
	"roamio/internal/models/response_models"
	"roamio/pkg/logger"
	"roamio/pkg/utils"
)

// GatewayClient wraps the payment gateway SDK so payment flows can be
// tested against a fake.
type GatewayClient interface {
	CreateOrder(data map[string]interface{}) (map[string]interface{}, error)
	FetchPayment(paymentID string) (map[string]interface{}, error)
	CreateRefund(paymentID string, amountMinor int64) (map[string]interface{}, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}

type razorpayClient struct {
	client    *razorpay.Client
	keySecret string
}

func NewRazorpayClient() GatewayClient {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	return &razorpayClient{
		client:    razorpay.NewClient(keyID, keySecret),
		keySecret: keySecret,
	}
}

func (r *razorpayClient) CreateOrder(data map[string]interface{}) (map[string]interface{}, error) {
	return r.client.Order.Create(data, nil)
}

func (r *razorpayClient) FetchPayment(paymentID string) (map[string]interface{}, error) {
	return r.client.Payment.Fetch(paymentID, nil, nil)
}

func (r *razorpayClient) CreateRefund(paymentID string, amountMinor int64) (map[string]interface{}, error) {
	return r.client.Payment.Refund(paymentID, int(amountMinor), nil, nil)
}

func (r *razorpayClient) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return razorpayutils.VerifyPaymentSignature(map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}, signature, r.keySecret)
}

type PaymentServiceInterface interface {
	CreateSession(ctx context.Context, req request_models.PaymentSessionRequest) (*response_models.PaymentSessionResponse, error)
	ProcessPayment(ctx context.Context, req request_models.ProcessPaymentRequest) (*response_models.PaymentResult, error)
	VerifySession(ctx context.Context, sessionID string) (*response_models.PaymentResult, error)
	Refund(ctx context.Context, req request_models.RefundRequest) (*response_models.RefundResult, error)
}

type paymentService struct {
	db        *gorm.DB
	gateway   GatewayClient
	analytics AnalyticsServiceInterface
}

func NewPaymentService(db *gorm.DB, gateway GatewayClient, analytics AnalyticsServiceInterface) PaymentServiceInterface {
	return &paymentService{
		db:        db,
		gateway:   gateway,
		analytics: analytics,
	}
}

// CreateSession records a pending Transaction first, then opens the
// gateway order so a lost gateway call leaves an auditable failed row.
func (p *paymentService) CreateSession(ctx context.Context, req request_models.PaymentSessionRequest) (*response_models.PaymentSessionResponse, error) {
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	var booking db_models.Booking
	if err := p.db.WithContext(ctx).First(&booking, "id = ?", bookingID).Error; err != nil {
		return nil, utils.ErrBookingNotFound
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = "INR"
	}
	amountMinor := int64(req.Amount * 100)

	txn := &db_models.Transaction{
		BookingID:   bookingID,
		AmountMinor: amountMinor,
		Currency:    currency,
		Status:      db_models.TxnStatusPending,
		Provider:    "razorpay",
	}
	if uid, err := uuid.Parse(req.UserID); err == nil {
		txn.AccountID = &uid
	}
	if err := p.db.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	order, err := p.gateway.CreateOrder(map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  txn.ID.String(),
		"notes": map[string]interface{}{
			"booking_id": req.BookingID,
		},
	})
	if err != nil {
		_ = p.db.WithContext(ctx).Model(txn).Update("status", db_models.TxnStatusFailed).Error
		logger.Log.WithError(err).Error("gateway order creation failed")
		return nil, utils.ErrPaymentGatewayError
	}

	orderID, _ := order["id"].(string)
	if meta, err := json.Marshal(order); err == nil {
		_ = p.db.WithContext(ctx).Model(txn).Updates(map[string]interface{}{
			"provider_order_id": orderID,
			"metadata":          meta,
		}).Error
	}

	p.analytics.TrackEvent(ctx, "payment_session_created", map[string]any{
		"transaction_id": txn.ID.String(),
		"amount":         req.Amount,
		"currency":       currency,
	})

	return &response_models.PaymentSessionResponse{
		SessionID: txn.ID.String(),
		OrderID:   orderID,
		Amount:    req.Amount,
		Currency:  currency,
		Status:    string(db_models.TxnStatusPending),
		KeyID:     os.Getenv("RAZORPAY_KEY_ID"),
	}, nil
}

func (p *paymentService) ProcessPayment(ctx context.Context, req request_models.ProcessPaymentRequest) (*response_models.PaymentResult, error) {
	txn, err := p.loadTransaction(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	if req.Signature != "" && !p.gateway.VerifyPaymentSignature(txn.ProviderOrderID, req.PaymentID, req.Signature) {
		_ = p.db.WithContext(ctx).Model(txn).Update("status", db_models.TxnStatusFailed).Error
		return nil, utils.ErrPaymentNotVerified
	}

	payment, err := p.gateway.FetchPayment(req.PaymentID)
	if err != nil {
		logger.Log.WithError(err).Error("gateway payment fetch failed")
		return nil, utils.ErrPaymentGatewayError
	}
	status, _ := payment["status"].(string)
	if status != "captured" && status != "authorized" {
		return nil, utils.ErrPaymentNotVerified
	}

	// Idempotent: re-processing a paid transaction is a no-op.
	if txn.Status != db_models.TxnStatusPaid {
		now := utils.NowUnixSeconds()
		updates := map[string]interface{}{
			"status":          db_models.TxnStatusPaid,
			"provider_txn_id": req.PaymentID,
			"paid_at":         now,
		}
		if receipt, err := json.Marshal(payment); err == nil {
			updates["receipt"] = receipt
		}
		if err := p.db.WithContext(ctx).Model(txn).Updates(updates).Error; err != nil {
			return nil, utils.ErrDatabaseError
		}
		txn.Status = db_models.TxnStatusPaid
	}

	p.analytics.TrackEvent(ctx, "payment_completed", map[string]any{
		"transaction_id": txn.ID.String(),
		"payment_id":     req.PaymentID,
		"amount":         float64(txn.AmountMinor) / 100,
	})

	return p.toResult(txn, req.PaymentID), nil
}

func (p *paymentService) VerifySession(ctx context.Context, sessionID string) (*response_models.PaymentResult, error) {
	txn, err := p.loadTransaction(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return p.toResult(txn, txn.ProviderTxnID), nil
}

func (p *paymentService) Refund(ctx context.Context, req request_models.RefundRequest) (*response_models.RefundResult, error) {
	var txn db_models.Transaction
	if err := p.db.WithContext(ctx).
		First(&txn, "provider_txn_id = ?", req.PaymentID).Error; err != nil {
		return nil, utils.ErrTransactionNotFound
	}
	if txn.Status != db_models.TxnStatusPaid {
		return nil, utils.ErrPaymentNotVerified
	}

	amountMinor := int64(req.Amount * 100)
	refund, err := p.gateway.CreateRefund(req.PaymentID, amountMinor)
	if err != nil {
		logger.Log.WithError(err).Error("gateway refund failed")
		return nil, utils.ErrPaymentGatewayError
	}

	refundID, _ := refund["id"].(string)
	now := utils.NowUnixSeconds()
	if err := p.db.WithContext(ctx).Model(&txn).Updates(map[string]interface{}{
		"status":             db_models.TxnStatusRefunded,
		"provider_refund_id": refundID,
		"refunded_at":        now,
	}).Error; err != nil {
		return nil, utils.ErrDatabaseError
	}

	p.analytics.TrackEvent(ctx, "payment_refunded", map[string]any{
		"transaction_id": txn.ID.String(),
		"refund_id":      refundID,
		"amount":         req.Amount,
	})

	return &response_models.RefundResult{
		RefundID:  refundID,
		PaymentID: req.PaymentID,
		Amount:    req.Amount,
		Status:    string(db_models.TxnStatusRefunded),
	}, nil
}

func (p *paymentService) loadTransaction(ctx context.Context, sessionID string) (*db_models.Transaction, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, utils.ErrInvalidInput
	}
	var txn db_models.Transaction
	if err := p.db.WithContext(ctx).First(&txn, "id = ?", sessionID).Error; err != nil {
		return nil, utils.ErrTransactionNotFound
	}
	return &txn, nil
}

func (p *paymentService) toResult(txn *db_models.Transaction, paymentID string) *response_models.PaymentResult {
	return &response_models.PaymentResult{
		SessionID:     txn.ID.String(),
		PaymentID:     paymentID,
		Status:        string(txn.Status),
		Amount:        float64(txn.AmountMinor) / 100,
		Currency:      txn.Currency,
		TransactionID: txn.ID.String(),
	}
}
