package portal

import (
	"time"

	"github.com/payportal/payportal/pkg/sanitize"
)

// Payment is a payment record as returned by the backend.
type Payment struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId,omitempty"`
	Amount           float64   `json:"amount"`
	Currency         string    `json:"currency"`
	Provider         string    `json:"provider"`
	RecipientAccount string    `json:"recipientAccount"`
	SwiftCode        string    `json:"swiftCode"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}

// sanitized returns a copy with every string field passed through the HTML
// sanitizer, so fetched records are safe to render.
func (p Payment) sanitized() Payment {
	p.ID = sanitize.HTML(p.ID)
	p.UserID = sanitize.HTML(p.UserID)
	p.Currency = sanitize.HTML(p.Currency)
	p.Provider = sanitize.HTML(p.Provider)
	p.RecipientAccount = sanitize.HTML(p.RecipientAccount)
	p.SwiftCode = sanitize.HTML(p.SwiftCode)
	if p.Status == "" {
		p.Status = "Pending"
	}
	p.Status = sanitize.HTML(p.Status)
	return p
}

// User is the account record returned by the auth and admin endpoints.
type User struct {
	ID            string    `json:"id"`
	FullName      string    `json:"fullName"`
	AccountNumber string    `json:"accountNumber,omitempty"`
	Username      string    `json:"username,omitempty"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
}
