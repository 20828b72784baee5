package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payportal/payportal/internal/domain/payment"
	"github.com/payportal/payportal/internal/infrastructure/observability"
	"github.com/payportal/payportal/internal/middleware"
	"github.com/payportal/payportal/internal/service"
	"github.com/payportal/payportal/internal/testutil"
	"github.com/payportal/payportal/internal/token"
)

func newTestPaymentService(repo payment.Repository) *service.PaymentService {
	metrics := observability.NewMetrics("test", prometheus.NewRegistry())
	return service.NewPaymentService(repo, metrics)
}

func authedRequest(method, target, body string, userID uuid.UUID, role string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	claims := &token.Claims{UserID: userID.String(), Role: role}
	return req.WithContext(middleware.WithClaims(req.Context(), claims))
}

func TestPaymentCreate_Success(t *testing.T) {
	repo := testutil.NewMockPaymentRepository()
	h := NewPaymentController(newTestPaymentService(repo))

	userID := uuid.New()
	body := `{"amount":100.50,"currency":"USD","provider":"SWIFT","recipientAccount":"12345","swiftCode":"ABCDUS33"}`
	req := authedRequest(http.MethodPost, "/api/v1/payments", body, userID, "customer")
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp PaymentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Pending", resp.Status)
	assert.Equal(t, 100.50, resp.Amount)
	assert.Equal(t, userID.String(), resp.UserID)
	assert.Equal(t, "ABCDUS33", resp.SwiftCode)
}

func TestPaymentCreate_SanitizesMarkup(t *testing.T) {
	repo := testutil.NewMockPaymentRepository()
	h := NewPaymentController(newTestPaymentService(repo))

	userID := uuid.New()
	body := `{"amount":50,"currency":"<b>USD</b>","provider":"SWIFT","recipientAccount":"12345","swiftCode":"ABCDUS33"}`
	req := authedRequest(http.MethodPost, "/api/v1/payments", body, userID, "customer")
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp PaymentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "USD", resp.Currency)
}

func TestPaymentCreate_MissingFields(t *testing.T) {
	h := NewPaymentController(newTestPaymentService(testutil.NewMockPaymentRepository()))

	req := authedRequest(http.MethodPost, "/api/v1/payments", `{"amount":50}`, uuid.New(), "customer")
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "validation_failed", resp.Code)
	assert.NotEmpty(t, resp.Msg)
}

func TestPaymentCreate_InvalidBody(t *testing.T) {
	h := NewPaymentController(newTestPaymentService(testutil.NewMockPaymentRepository()))

	req := authedRequest(http.MethodPost, "/api/v1/payments", `{not json`, uuid.New(), "customer")
	rec := httptest.NewRecorder()

	h.Create(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentCreate_NoClaims(t *testing.T) {
	h := NewPaymentController(newTestPaymentService(testutil.NewMockPaymentRepository()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Create(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPaymentList_OnlyOwnPayments(t *testing.T) {
	repo := testutil.NewMockPaymentRepository()
	h := NewPaymentController(newTestPaymentService(repo))

	userID := uuid.New()
	require.NoError(t, repo.Create(context.Background(), testutil.NewTestPayment(userID, 1000, "USD")))
	require.NoError(t, repo.Create(context.Background(), testutil.NewTestPayment(uuid.New(), 2000, "EUR")))

	req := authedRequest(http.MethodGet, "/api/v1/payments", "", userID, "customer")
	rec := httptest.NewRecorder()

	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []*PaymentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, userID.String(), resp[0].UserID)
}

func decideRequest(t *testing.T, paymentID uuid.UUID, reviewerID uuid.UUID, body string) *http.Request {
	t.Helper()
	req := authedRequest(http.MethodPut, "/api/v1/employee/payments/"+paymentID.String(), body, reviewerID, "employee")
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", paymentID.String())
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestEmployeeDecide_Approve(t *testing.T) {
	repo := testutil.NewMockPaymentRepository()
	h := NewEmployeeController(newTestPaymentService(repo))

	p := testutil.NewTestPayment(uuid.New(), 1000, "USD")
	require.NoError(t, repo.Create(context.Background(), p))

	rec := httptest.NewRecorder()
	h.Decide(rec, decideRequest(t, p.ID, uuid.New(), `{"status":"Approved"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp PaymentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Approved", resp.Status)
	assert.NotNil(t, resp.ReviewedAt)
}

func TestEmployeeDecide_AlreadyReviewed(t *testing.T) {
	repo := testutil.NewMockPaymentRepository()
	h := NewEmployeeController(newTestPaymentService(repo))

	p := testutil.NewTestPayment(uuid.New(), 1000, "USD")
	require.NoError(t, p.Approve(uuid.New()))
	require.NoError(t, repo.Create(context.Background(), p))

	rec := httptest.NewRecorder()
	h.Decide(rec, decideRequest(t, p.ID, uuid.New(), `{"status":"Denied"}`))

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "invalid_state_transition", resp.Code)
}

func TestEmployeeDecide_InvalidStatus(t *testing.T) {
	repo := testutil.NewMockPaymentRepository()
	h := NewEmployeeController(newTestPaymentService(repo))

	p := testutil.NewTestPayment(uuid.New(), 1000, "USD")
	require.NoError(t, repo.Create(context.Background(), p))

	rec := httptest.NewRecorder()
	h.Decide(rec, decideRequest(t, p.ID, uuid.New(), `{"status":"Maybe"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmployeeDecide_UnknownPayment(t *testing.T) {
	h := NewEmployeeController(newTestPaymentService(testutil.NewMockPaymentRepository()))

	rec := httptest.NewRecorder()
	h.Decide(rec, decideRequest(t, uuid.New(), uuid.New(), `{"status":"Approved"}`))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmployeePendingAndHistory(t *testing.T) {
	repo := testutil.NewMockPaymentRepository()
	h := NewEmployeeController(newTestPaymentService(repo))

	pending := testutil.NewTestPayment(uuid.New(), 1000, "USD")
	reviewed := testutil.NewTestPayment(uuid.New(), 2000, "EUR")
	reviewed.CreatedAt = reviewed.CreatedAt.Add(-time.Minute)
	require.NoError(t, reviewed.Deny(uuid.New()))
	require.NoError(t, repo.Create(context.Background(), pending))
	require.NoError(t, repo.Create(context.Background(), reviewed))

	rec := httptest.NewRecorder()
	h.Pending(rec, authedRequest(http.MethodGet, "/api/v1/employee/payments/pending", "", uuid.New(), "employee"))
	require.Equal(t, http.StatusOK, rec.Code)
	var pendingResp []*PaymentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&pendingResp))
	require.Len(t, pendingResp, 1)
	assert.Equal(t, pending.ID.String(), pendingResp[0].ID)

	rec = httptest.NewRecorder()
	h.History(rec, authedRequest(http.MethodGet, "/api/v1/employee/payments/history", "", uuid.New(), "employee"))
	require.Equal(t, http.StatusOK, rec.Code)
	var historyResp []*PaymentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&historyResp))
	require.Len(t, historyResp, 1)
	assert.Equal(t, "Denied", historyResp[0].Status)
}
