package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	domainerrors "github.com/payportal/payportal/internal/domain/errors"
	"github.com/payportal/payportal/internal/domain/payment"
	"github.com/payportal/payportal/internal/service"
)

// EmployeeController handles the employee review queue.
type EmployeeController struct {
	payments *service.PaymentService
}

func NewEmployeeController(payments *service.PaymentService) *EmployeeController {
	return &EmployeeController{payments: payments}
}

// Pending lists payments awaiting review, oldest first.
// GET /api/v1/employee/payments/pending
func (c *EmployeeController) Pending(w http.ResponseWriter, r *http.Request) {
	payments, err := c.payments.ListPending(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponses(payments))
}

// History lists reviewed payments, most recently reviewed first.
// GET /api/v1/employee/payments/history
func (c *EmployeeController) History(w http.ResponseWriter, r *http.Request) {
	payments, err := c.payments.History(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponses(payments))
}

// Decide approves or denies a pending payment.
// PUT /api/v1/employee/payments/{id}
func (c *EmployeeController) Decide(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := callerID(w, r)
	if !ok {
		return
	}

	paymentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, domainerrors.ErrPaymentNotFound)
		return
	}

	var req DecisionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	p, err := c.payments.Decide(r.Context(), paymentID, reviewerID, payment.Status(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, FromPayment(p))
}

func toResponses(payments []*payment.Payment) []*PaymentResponse {
	out := make([]*PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}
