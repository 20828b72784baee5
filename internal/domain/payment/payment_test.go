package payment_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payportal/payportal/internal/domain/errors"
	"github.com/payportal/payportal/internal/domain/payment"
)

func TestNewPayment_Valid(t *testing.T) {
	userID := uuid.New()
	p, err := payment.NewPayment(userID, payment.Amount{ValueCents: 10050, Currency: "usd"}, "swift", "12345", "abcdus33xxx")
	require.NoError(t, err)
	assert.Equal(t, payment.StatusPending, p.Status)
	assert.Equal(t, userID, p.UserID)
	assert.Equal(t, "USD", p.Amount.Currency)
	assert.Equal(t, payment.ProviderSWIFT, p.Provider)
	assert.Equal(t, "ABCDUS33XXX", p.SwiftCode)
	assert.Nil(t, p.ReviewedBy)
	assert.Nil(t, p.ReviewedAt)
}

func TestNewPayment_InvalidAmount(t *testing.T) {
	_, err := payment.NewPayment(uuid.New(), payment.Amount{ValueCents: -1000, Currency: "USD"}, "SWIFT", "12345", "ABCDUS33")
	assert.ErrorIs(t, err, errors.ErrInvalidAmount)
}

func TestNewPayment_ZeroAmount(t *testing.T) {
	_, err := payment.NewPayment(uuid.New(), payment.Amount{ValueCents: 0, Currency: "USD"}, "SWIFT", "12345", "ABCDUS33")
	assert.ErrorIs(t, err, errors.ErrInvalidAmount)
}

func TestNewPayment_UnsupportedCurrency(t *testing.T) {
	_, err := payment.NewPayment(uuid.New(), payment.Amount{ValueCents: 1000, Currency: "GBP"}, "SWIFT", "12345", "ABCDUS33")
	assert.ErrorIs(t, err, errors.ErrInvalidCurrency)
}

func TestNewPayment_InvalidProvider(t *testing.T) {
	_, err := payment.NewPayment(uuid.New(), payment.Amount{ValueCents: 1000, Currency: "USD"}, "SEPA", "12345", "ABCDUS33")
	assert.ErrorIs(t, err, errors.ErrInvalidProvider)
}

func TestNewPayment_SwiftCodeTooShort(t *testing.T) {
	_, err := payment.NewPayment(uuid.New(), payment.Amount{ValueCents: 1000, Currency: "USD"}, "SWIFT", "12345", "AB1")
	require.Error(t, err)
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "SWIFT Code must be 8-11 uppercase alphanumeric characters", verr.Fields["swiftCode"])
}

func TestAmount_String(t *testing.T) {
	a := payment.Amount{ValueCents: 10050, Currency: "USD"}
	assert.Equal(t, "100.50 USD", a.String())

	a2 := payment.Amount{ValueCents: 5000, Currency: "EUR"}
	assert.Equal(t, "50.00 EUR", a2.String())
}

// --- State Machine Tests ---

func newPendingPayment(t *testing.T) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(uuid.New(), payment.Amount{ValueCents: 5000, Currency: "USD"}, "SWIFT", "12345", "ABCDUS33")
	require.NoError(t, err)
	return p
}

func TestTransition_PendingToApproved(t *testing.T) {
	p := newPendingPayment(t)
	assert.True(t, p.CanTransitionTo(payment.StatusApproved))
	require.NoError(t, p.TransitionTo(payment.StatusApproved))
	assert.Equal(t, payment.StatusApproved, p.Status)
}

func TestTransition_PendingToDenied(t *testing.T) {
	p := newPendingPayment(t)
	assert.True(t, p.CanTransitionTo(payment.StatusDenied))
	require.NoError(t, p.TransitionTo(payment.StatusDenied))
	assert.Equal(t, payment.StatusDenied, p.Status)
}

func TestTransition_ApprovedIsTerminal(t *testing.T) {
	p := newPendingPayment(t)
	require.NoError(t, p.TransitionTo(payment.StatusApproved))

	assert.False(t, p.CanTransitionTo(payment.StatusDenied))
	assert.False(t, p.CanTransitionTo(payment.StatusPending))
	err := p.TransitionTo(payment.StatusDenied)
	assert.ErrorIs(t, err, errors.ErrInvalidStateTransition)
	assert.Equal(t, payment.StatusApproved, p.Status)
}

func TestTransition_DeniedIsTerminal(t *testing.T) {
	p := newPendingPayment(t)
	require.NoError(t, p.TransitionTo(payment.StatusDenied))

	assert.False(t, p.CanTransitionTo(payment.StatusApproved))
	err := p.TransitionTo(payment.StatusApproved)
	assert.ErrorIs(t, err, errors.ErrInvalidStateTransition)
}

func TestApprove_SetsReviewer(t *testing.T) {
	p := newPendingPayment(t)
	reviewer := uuid.New()
	require.NoError(t, p.Approve(reviewer))
	assert.Equal(t, payment.StatusApproved, p.Status)
	require.NotNil(t, p.ReviewedBy)
	assert.Equal(t, reviewer, *p.ReviewedBy)
	assert.NotNil(t, p.ReviewedAt)
	assert.True(t, p.IsTerminal())
}

func TestDeny_SetsReviewer(t *testing.T) {
	p := newPendingPayment(t)
	reviewer := uuid.New()
	require.NoError(t, p.Deny(reviewer))
	assert.Equal(t, payment.StatusDenied, p.Status)
	require.NotNil(t, p.ReviewedBy)
	assert.Equal(t, reviewer, *p.ReviewedBy)
	assert.True(t, p.IsTerminal())
}

func TestDoubleReview_Fails(t *testing.T) {
	p := newPendingPayment(t)
	require.NoError(t, p.Approve(uuid.New()))
	err := p.Deny(uuid.New())
	assert.ErrorIs(t, err, errors.ErrInvalidStateTransition)
	assert.Equal(t, payment.StatusApproved, p.Status)
}
