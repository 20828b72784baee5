package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/payportal/payportal/internal/domain/errors"
)

// Status represents the payment status in the review state machine.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusDenied   Status = "Denied"
)

// Provider represents the payment rails a payment is sent over.
// SWIFT is the only provider the portal accepts.
type Provider string

const ProviderSWIFT Provider = "SWIFT"

// Currencies accepted for international payments.
var SupportedCurrencies = map[string]bool{
	"USD": true,
	"EUR": true,
	"ZAR": true,
}

// Payment represents an international payment awaiting or past employee review.
type Payment struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Amount           Amount
	Provider         Provider
	RecipientAccount string
	SwiftCode        string
	Status           Status
	ReviewedBy       *uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ReviewedAt       *time.Time
}

// Amount represents a monetary amount in the smallest currency unit (e.g. cents).
type Amount struct {
	ValueCents int64
	Currency   string
}

// String returns a human-readable representation of the amount.
func (a Amount) String() string {
	whole := a.ValueCents / 100
	frac := a.ValueCents % 100
	if frac < 0 {
		frac = -frac
	}
	return fmt.Sprintf("%d.%02d %s", whole, frac, a.Currency)
}

// Validate checks that the amount is positive and in a supported currency.
func (a Amount) Validate() error {
	if a.ValueCents <= 0 {
		return errors.ErrInvalidAmount
	}
	if !SupportedCurrencies[a.Currency] {
		return errors.ErrInvalidCurrency
	}
	return nil
}

// NewPayment creates a pending payment. Currency, provider and SWIFT code are
// normalized to uppercase before validation.
func NewPayment(userID uuid.UUID, amount Amount, provider, recipientAccount, swiftCode string) (*Payment, error) {
	amount.Currency = strings.ToUpper(amount.Currency)
	if err := amount.Validate(); err != nil {
		return nil, err
	}
	if !strings.EqualFold(provider, string(ProviderSWIFT)) {
		return nil, errors.ErrInvalidProvider
	}
	if recipientAccount == "" {
		return nil, errors.NewValidationError("recipientAccount", "Recipient account must be numeric")
	}
	swiftCode = strings.ToUpper(swiftCode)
	if len(swiftCode) < 8 || len(swiftCode) > 11 {
		return nil, errors.NewValidationError("swiftCode", "SWIFT Code must be 8-11 uppercase alphanumeric characters")
	}

	now := time.Now()
	return &Payment{
		ID:               uuid.New(),
		UserID:           userID,
		Amount:           amount,
		Provider:         ProviderSWIFT,
		RecipientAccount: recipientAccount,
		SwiftCode:        swiftCode,
		Status:           StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// CanTransitionTo checks if the payment can transition to the given status.
func (p *Payment) CanTransitionTo(newStatus Status) bool {
	transitions := map[Status][]Status{
		StatusPending: {
			StatusApproved,
			StatusDenied,
		},
		StatusApproved: {}, // Terminal state
		StatusDenied:   {}, // Terminal state
	}

	allowed, exists := transitions[p.Status]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == newStatus {
			return true
		}
	}
	return false
}

// TransitionTo transitions the payment to a new status.
func (p *Payment) TransitionTo(newStatus Status) error {
	if !p.CanTransitionTo(newStatus) {
		return errors.NewDomainError(
			"invalid_transition",
			"cannot transition from "+string(p.Status)+" to "+string(newStatus),
			errors.ErrInvalidStateTransition,
		)
	}

	p.Status = newStatus
	p.UpdatedAt = time.Now()
	return nil
}

// Approve marks the payment approved by the given reviewer.
func (p *Payment) Approve(reviewerID uuid.UUID) error {
	return p.review(StatusApproved, reviewerID)
}

// Deny marks the payment denied by the given reviewer.
func (p *Payment) Deny(reviewerID uuid.UUID) error {
	return p.review(StatusDenied, reviewerID)
}

func (p *Payment) review(status Status, reviewerID uuid.UUID) error {
	if err := p.TransitionTo(status); err != nil {
		return err
	}
	now := time.Now()
	p.ReviewedBy = &reviewerID
	p.ReviewedAt = &now
	return nil
}

// IsTerminal reports whether the payment has been reviewed.
func (p *Payment) IsTerminal() bool {
	return p.Status == StatusApproved || p.Status == StatusDenied
}
