package controller

import (
	"math"
	"time"

	"github.com/payportal/payportal/internal/domain/payment"
	"github.com/payportal/payportal/internal/domain/user"
)

// --- Request DTOs ---
// These DTOs handle HTTP/JSON concerns (float64 for money, string for IDs,
// validation tags). Controllers convert these to service layer inputs before
// calling business logic.

// RegisterRequest holds the input for customer registration.
type RegisterRequest struct {
	FullName      string `json:"fullName" validate:"required,max=100"`
	IDNumber      string `json:"idNumber" validate:"required,len=13,numeric"`
	AccountNumber string `json:"accountNumber" validate:"required,numeric"`
	Password      string `json:"password" validate:"required,min=8"`
}

// LoginRequest holds the input for login. Customers send accountNumber,
// employees send username.
type LoginRequest struct {
	AccountNumber string `json:"accountNumber,omitempty" validate:"required_without=Username,omitempty,numeric"`
	Username      string `json:"username,omitempty" validate:"required_without=AccountNumber"`
	Password      string `json:"password" validate:"required"`
}

// CreatePaymentRequest holds the input for submitting a payment.
type CreatePaymentRequest struct {
	Amount           float64 `json:"amount" validate:"required,gt=0"`
	Currency         string  `json:"currency" validate:"required,len=3"`
	Provider         string  `json:"provider" validate:"required"`
	RecipientAccount string  `json:"recipientAccount" validate:"required,numeric"`
	SwiftCode        string  `json:"swiftCode" validate:"required,min=8,max=11,alphanum"`
}

// DecisionRequest holds the employee's review decision.
type DecisionRequest struct {
	Status string `json:"status" validate:"required,oneof=Approved Denied"`
}

// CreateEmployeeRequest holds the admin's create-employee input.
type CreateEmployeeRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	FullName string `json:"fullName" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

// --- Response DTOs ---

// UserResponse represents a user in API responses. The password hash never
// leaves the server.
type UserResponse struct {
	ID            string    `json:"id"`
	FullName      string    `json:"fullName"`
	AccountNumber string    `json:"accountNumber,omitempty"`
	Username      string    `json:"username,omitempty"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	Amount           float64    `json:"amount"`
	Currency         string     `json:"currency"`
	Provider         string     `json:"provider"`
	RecipientAccount string     `json:"recipientAccount"`
	SwiftCode        string     `json:"swiftCode"`
	Status           string     `json:"status"`
	ReviewedBy       *string    `json:"reviewedBy,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	ReviewedAt       *time.Time `json:"reviewedAt,omitempty"`
}

// ErrorResponse represents an error response. The portals read msg.
type ErrorResponse struct {
	Msg  string `json:"msg"`
	Code string `json:"code,omitempty"`
}

// --- Conversion helpers ---

// FromUser converts a domain user to an API response.
func FromUser(u *user.User) UserResponse {
	return UserResponse{
		ID:            u.ID.String(),
		FullName:      u.FullName,
		AccountNumber: u.AccountNumber,
		Username:      u.Username,
		Role:          string(u.Role),
		CreatedAt:     u.CreatedAt,
	}
}

// FromPayment converts a domain payment to an API response.
func FromPayment(p *payment.Payment) *PaymentResponse {
	resp := &PaymentResponse{
		ID:               p.ID.String(),
		UserID:           p.UserID.String(),
		Amount:           centsToFloat(p.Amount.ValueCents),
		Currency:         p.Amount.Currency,
		Provider:         string(p.Provider),
		RecipientAccount: p.RecipientAccount,
		SwiftCode:        p.SwiftCode,
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt,
		ReviewedAt:       p.ReviewedAt,
	}
	if p.ReviewedBy != nil {
		s := p.ReviewedBy.String()
		resp.ReviewedBy = &s
	}
	return resp
}

func floatToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func centsToFloat(cents int64) float64 {
	return float64(cents) / 100
}
