package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TransactionStatus string

const (
	TxnStatusPending  TransactionStatus = "pending"
	TxnStatusPaid     TransactionStatus = "paid"
	TxnStatusFailed   TransactionStatus = "failed"
	TxnStatusRefunded TransactionStatus = "refunded"
)

type Transaction struct {
	BaseModel
	AccountID *uuid.UUID `gorm:"index"` // nullable for guest checkouts
	BookingID uuid.UUID  `gorm:"index"`

	AmountMinor int64             // paise, e.g. 149900 = INR 1499.00
	Currency    string            `gorm:"size:3"`
	Status      TransactionStatus `gorm:"index"`

	// Gateway fields
	Provider         string `gorm:"index"`
	ProviderOrderID  string `gorm:"index"` // gateway session/order id
	ProviderTxnID    string `gorm:"index"` // idempotency across webhooks
	ProviderRefundID string
	PaymentMethodRef string // last4 / token ref (avoid PCI data)

	// Important timestamps (unix seconds)
	AuthorizedAt *int64
	PaidAt       *int64
	RefundedAt   *int64

	// Raw receipts, webhook payloads, failure reasons, etc.
	Receipt  datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Booking Booking `gorm:"foreignKey:BookingID"`
}
