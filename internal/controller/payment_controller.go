package controller

import (
	"net/http"

	"github.com/google/uuid"

	domainerrors "github.com/payportal/payportal/internal/domain/errors"
	"github.com/payportal/payportal/internal/middleware"
	"github.com/payportal/payportal/internal/service"
	"github.com/payportal/payportal/pkg/sanitize"
)

// PaymentController handles customer payment submission and listing.
type PaymentController struct {
	payments *service.PaymentService
}

func NewPaymentController(payments *service.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

// Create submits a new international payment for review.
// POST /api/v1/payments
func (c *PaymentController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req CreatePaymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	p, err := c.payments.Create(r.Context(), service.CreatePaymentInput{
		UserID:           userID,
		AmountCents:      floatToCents(req.Amount),
		Currency:         sanitize.HTML(req.Currency),
		Provider:         sanitize.HTML(req.Provider),
		RecipientAccount: sanitize.HTML(req.RecipientAccount),
		SwiftCode:        sanitize.HTML(req.SwiftCode),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, FromPayment(p))
}

// List returns the caller's payments, newest first.
// GET /api/v1/payments
func (c *PaymentController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	payments, err := c.payments.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]*PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// callerID resolves the authenticated user's ID from the request context.
func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, domainerrors.ErrUnauthorized)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		writeError(w, r, domainerrors.ErrUnauthorized)
		return uuid.Nil, false
	}
	return id, true
}
