package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arkumar/gym-booking/internal/model"
	"github.com/arkumar/gym-booking/internal/queue"
	"github.com/arkumar/gym-booking/internal/repository"
)

// ValidationError reports a request that fails server-side validation.
// Handlers translate it into a 400 response carrying Msg.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Method-specific input patterns.  The browser validates these too, but the
// client is not a trust boundary; everything is re-checked here.
var (
	cardNumberRe = regexp.MustCompile(`^[0-9]{13,19}$`)
	expiryRe     = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cvvRe        = regexp.MustCompile(`^[0-9]{3,4}$`)
	upiRe        = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,}@[a-zA-Z]{2,}$`)
)

// PaymentService validates and persists checkout attempts.  There is no
// gateway behind it: a valid payment is synchronously assigned a
// transaction id and marked completed.
type PaymentService struct {
	payments  *repository.PaymentRepo
	publisher EventPublisher // optional; nil disables events
}

// NewPaymentService constructs a PaymentService.  The publisher may be nil.
func NewPaymentService(payments *repository.PaymentRepo, publisher EventPublisher) *PaymentService {
	if payments == nil {
		panic("nil repository passed to NewPaymentService")
	}
	return &PaymentService{payments: payments, publisher: publisher}
}

// Create validates the payment, stamps it with a transaction id and a
// completed status, and persists it together with its line items.
func (s *PaymentService) Create(ctx context.Context, p *model.Payment) error {
	if err := validatePayment(p); err != nil {
		return err
	}
	p.TransactionID = uuid.NewString()
	p.Status = model.PaymentCompleted
	if err := s.payments.Create(ctx, p); err != nil {
		return err
	}
	if s.publisher != nil {
		ev := queue.Event{
			Type:       queue.TypePaymentCompleted,
			PaymentID:  p.ID,
			UserID:     p.UserID,
			Amount:     p.Amount,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		}
		_ = s.publisher.Publish(ctx, ev) // best-effort, logged by the publisher
	}
	return nil
}

// ListByUser returns the payment ledger entries for one user.
func (s *PaymentService) ListByUser(ctx context.Context, userID string) ([]model.Payment, error) {
	return s.payments.ListByUser(ctx, userID)
}

// validatePayment enforces the method-specific field rules server-side.
func validatePayment(p *model.Payment) error {
	if strings.TrimSpace(p.UserID) == "" {
		return &ValidationError{Msg: "User ID is required"}
	}
	if p.Amount <= 0 {
		return &ValidationError{Msg: "Amount must be greater than zero"}
	}
	if !model.ValidPaymentMethod(p.PaymentMethod) {
		return &ValidationError{Msg: "Unsupported payment method"}
	}
	d := p.PaymentDetails
	switch p.PaymentMethod {
	case model.MethodCard:
		if strings.TrimSpace(d.CardName) == "" {
			return &ValidationError{Msg: "Cardholder name is required"}
		}
		if !cardNumberRe.MatchString(d.CardNumber) {
			return &ValidationError{Msg: "Card number must be 13 to 19 digits"}
		}
		if !expiryRe.MatchString(d.Expiry) {
			return &ValidationError{Msg: "Expiry must be in MM/YY format"}
		}
		if !cvvRe.MatchString(d.CVV) {
			return &ValidationError{Msg: "CVV must be 3 or 4 digits"}
		}
	case model.MethodUPI:
		if !upiRe.MatchString(d.UPIID) {
			return &ValidationError{Msg: "Invalid UPI ID"}
		}
	case model.MethodNetbanking:
		if strings.TrimSpace(d.Bank) == "" {
			return &ValidationError{Msg: "Bank is required"}
		}
	}
	for _, it := range p.Items {
		if it.Quantity == 0 {
			return &ValidationError{Msg: "Item quantity must be at least 1"}
		}
		if it.Price < 0 {
			return &ValidationError{Msg: "Item price cannot be negative"}
		}
	}
	return nil
}
