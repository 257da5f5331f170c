package order

import (
	"time"

	"github.com/ecoharvest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the status of an order payment
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// PaymentMethod represents how an order is paid
type PaymentMethod string

const (
	PaymentMethodCOD      PaymentMethod = "cod" // cash on delivery, the default
	PaymentMethodTransfer PaymentMethod = "bank_transfer"
	PaymentMethodWallet   PaymentMethod = "e_wallet"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodTransfer, PaymentMethodWallet:
		return true
	}
	return false
}

// PaymentDetail is the one-to-one payment record for an order, created
// alongside it in unpaid status.
type PaymentDetail struct {
	shared.BaseEntity
	OrderID uuid.UUID
	Amount  decimal.Decimal
	Status  PaymentStatus
	Method  PaymentMethod
}

// NewPaymentDetail creates an unpaid payment record for an order
func NewPaymentDetail(orderID uuid.UUID, amount decimal.Decimal, method PaymentMethod) (*PaymentDetail, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount cannot be negative")
	}
	if method == "" {
		method = PaymentMethodCOD
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown payment method: "+string(method))
	}

	return &PaymentDetail{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		Amount:     amount,
		Status:     PaymentStatusUnpaid,
		Method:     method,
	}, nil
}

// MarkPaid marks the payment as settled
func (p *PaymentDetail) MarkPaid() error {
	if p.Status != PaymentStatusUnpaid && p.Status != PaymentStatusFailed {
		return shared.ErrInvalidState
	}
	p.Status = PaymentStatusPaid
	p.UpdatedAt = time.Now()
	return nil
}

// MarkFailed marks the payment as failed
func (p *PaymentDetail) MarkFailed() error {
	if p.Status != PaymentStatusUnpaid {
		return shared.ErrInvalidState
	}
	p.Status = PaymentStatusFailed
	p.UpdatedAt = time.Now()
	return nil
}

// MarkRefunded marks a paid payment as refunded
func (p *PaymentDetail) MarkRefunded() error {
	if p.Status != PaymentStatusPaid {
		return shared.ErrInvalidState
	}
	p.Status = PaymentStatusRefunded
	p.UpdatedAt = time.Now()
	return nil
}
