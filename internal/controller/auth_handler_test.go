package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payportal/payportal/internal/domain/user"
	"github.com/payportal/payportal/internal/infrastructure/observability"
	"github.com/payportal/payportal/internal/middleware"
	"github.com/payportal/payportal/internal/service"
	"github.com/payportal/payportal/internal/testutil"
	"github.com/payportal/payportal/internal/token"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestAuthService(users user.Repository, revoker service.TokenRevoker) *service.AuthService {
	issuer := token.NewIssuer(testSecret, time.Hour)
	metrics := observability.NewMetrics("test", prometheus.NewRegistry())
	return service.NewAuthService(users, issuer, revoker, metrics)
}

const validRegisterBody = `{
	"fullName": "Alice Smith",
	"idNumber": "9001015009087",
	"accountNumber": "1234567890",
	"password": "Str0ngPass"
}`

func TestAuthRegister_Success(t *testing.T) {
	users := testutil.NewMockUserRepository()
	h := NewAuthController(newTestAuthService(users, testutil.NewMockTokenStore()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(validRegisterBody))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "customer", resp.User.Role)
	assert.Equal(t, "Alice Smith", resp.User.FullName)
}

func TestAuthRegister_ShortIDNumber(t *testing.T) {
	h := NewAuthController(newTestAuthService(testutil.NewMockUserRepository(), testutil.NewMockTokenStore()))

	body := `{"fullName":"Alice Smith","idNumber":"123","accountNumber":"1234567890","password":"Str0ngPass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthRegister_Duplicate(t *testing.T) {
	users := testutil.NewMockUserRepository()
	h := NewAuthController(newTestAuthService(users, testutil.NewMockTokenStore()))

	for i, wantStatus := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(validRegisterBody))
		rec := httptest.NewRecorder()
		h.Register(rec, req)
		require.Equal(t, wantStatus, rec.Code, "attempt %d", i+1)
	}
}

func TestAuthLogin_Success(t *testing.T) {
	users := testutil.NewMockUserRepository()
	customer := testutil.NewTestCustomer()
	require.NoError(t, users.Create(context.Background(), customer))
	h := NewAuthController(newTestAuthService(users, testutil.NewMockTokenStore()))

	body := `{"accountNumber":"` + customer.AccountNumber + `","password":"Str0ngPass!"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	users := testutil.NewMockUserRepository()
	customer := testutil.NewTestCustomer()
	require.NoError(t, users.Create(context.Background(), customer))
	h := NewAuthController(newTestAuthService(users, testutil.NewMockTokenStore()))

	body := `{"accountNumber":"` + customer.AccountNumber + `","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "invalid_credentials", resp.Code)
	assert.NotEmpty(t, resp.Msg)
}

func TestAuthLogin_NeitherIdentifier(t *testing.T) {
	h := NewAuthController(newTestAuthService(testutil.NewMockUserRepository(), testutil.NewMockTokenStore()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"password":"x"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthLogout_RevokesToken(t *testing.T) {
	users := testutil.NewMockUserRepository()
	store := testutil.NewMockTokenStore()
	svc := newTestAuthService(users, store)
	h := NewAuthController(svc)

	result, err := svc.Register(context.Background(), service.RegisterInput{
		FullName:      "Alice Smith",
		IDNumber:      "9001015009087",
		AccountNumber: "1234567890",
		Password:      "Str0ngPass",
	})
	require.NoError(t, err)

	claims, err := token.Parse(result.Token, testSecret)
	require.NoError(t, err)

	// Logout needs the full claims including the token ID.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req = req.WithContext(middleware.WithClaims(req.Context(), claims))
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	revoked, err := store.IsRevoked(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthLogout_NoClaims(t *testing.T) {
	h := NewAuthController(newTestAuthService(testutil.NewMockUserRepository(), testutil.NewMockTokenStore()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()

	h.Logout(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
