package controller

import (
	"net/http"

	domainerrors "github.com/payportal/payportal/internal/domain/errors"
	"github.com/payportal/payportal/internal/middleware"
	"github.com/payportal/payportal/internal/service"
	"github.com/payportal/payportal/pkg/sanitize"
)

// AuthController handles registration, login and logout.
type AuthController struct {
	auth *service.AuthService
}

func NewAuthController(auth *service.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register creates a customer account.
// POST /api/v1/auth/register
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := c.auth.Register(r.Context(), service.RegisterInput{
		FullName:      sanitize.HTML(req.FullName),
		IDNumber:      sanitize.StripSymbols(req.IDNumber),
		AccountNumber: sanitize.StripSymbols(req.AccountNumber),
		Password:      req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{Token: result.Token, User: FromUser(result.User)})
}

// Login authenticates a customer (account number) or staff member (username).
// POST /api/v1/auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := c.auth.Login(r.Context(), service.LoginInput{
		AccountNumber: sanitize.StripSymbols(req.AccountNumber),
		Username:      sanitize.StripSymbols(req.Username),
		Password:      req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Token: result.Token, User: FromUser(result.User)})
}

// Logout revokes the bearer token for the remainder of its lifetime.
// POST /api/v1/auth/logout
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, domainerrors.ErrUnauthorized)
		return
	}

	if err := c.auth.Logout(r.Context(), claims); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}
