package service

import (
	"context"

	"github.com/google/uuid"

	domainErrors "github.com/payportal/payportal/internal/domain/errors"
	"github.com/payportal/payportal/internal/domain/payment"
	"github.com/payportal/payportal/internal/infrastructure/observability"
)

// PaymentService handles payment submission and employee review.
type PaymentService struct {
	payments payment.Repository
	metrics  *observability.Metrics
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(payments payment.Repository, metrics *observability.Metrics) *PaymentService {
	return &PaymentService{payments: payments, metrics: metrics}
}

// CreatePaymentInput holds the vetted submission fields.
type CreatePaymentInput struct {
	UserID           uuid.UUID
	AmountCents      int64
	Currency         string
	Provider         string
	RecipientAccount string
	SwiftCode        string
}

// Create records a pending international payment for the submitting customer.
func (s *PaymentService) Create(ctx context.Context, in CreatePaymentInput) (*payment.Payment, error) {
	p, err := payment.NewPayment(
		in.UserID,
		payment.Amount{ValueCents: in.AmountCents, Currency: in.Currency},
		in.Provider,
		in.RecipientAccount,
		in.SwiftCode,
	)
	if err != nil {
		s.metrics.PaymentsSubmitted.WithLabelValues(in.Currency, "rejected").Inc()
		return nil, err
	}

	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}

	s.metrics.PaymentsSubmitted.WithLabelValues(p.Amount.Currency, "accepted").Inc()
	s.metrics.PendingPayments.Inc()
	return p, nil
}

// ListByUser lists the customer's own payments, newest first.
func (s *PaymentService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*payment.Payment, error) {
	return s.payments.List(ctx, payment.ListFilter{UserID: &userID})
}

// ListPending lists every payment awaiting review, oldest first.
func (s *PaymentService) ListPending(ctx context.Context) ([]*payment.Payment, error) {
	status := payment.StatusPending
	return s.payments.List(ctx, payment.ListFilter{Status: &status, SortOrder: "asc"})
}

// History lists every reviewed (approved or denied) payment, most recently
// decided first.
func (s *PaymentService) History(ctx context.Context) ([]*payment.Payment, error) {
	return s.payments.List(ctx, payment.ListFilter{Reviewed: true, SortBy: "updated_at"})
}

// Decide applies a review decision. Only Pending payments can be decided;
// Approved and Denied are terminal.
func (s *PaymentService) Decide(ctx context.Context, paymentID, reviewerID uuid.UUID, decision payment.Status) (*payment.Payment, error) {
	p, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	switch decision {
	case payment.StatusApproved:
		err = p.Approve(reviewerID)
	case payment.StatusDenied:
		err = p.Deny(reviewerID)
	default:
		return nil, domainErrors.NewValidationError("status", "Status must be Approved or Denied")
	}
	if err != nil {
		return nil, err
	}

	if err := s.payments.Update(ctx, p); err != nil {
		return nil, err
	}

	s.metrics.PaymentDecisions.WithLabelValues(string(decision)).Inc()
	s.metrics.PendingPayments.Dec()
	return p, nil
}
