package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/payportal/payportal/internal/domain/payment"
	"github.com/payportal/payportal/internal/domain/user"
)

func NewTestPayment(userID uuid.UUID, amountCents int64, currency string) *payment.Payment {
	now := time.Now()
	return &payment.Payment{
		ID:               uuid.New(),
		UserID:           userID,
		Amount:           payment.Amount{ValueCents: amountCents, Currency: currency},
		Provider:         payment.ProviderSWIFT,
		RecipientAccount: "1234567890",
		SwiftCode:        "ABCDUS33XXX",
		Status:           payment.StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func NewTestCustomer() *user.User {
	u, err := user.NewCustomer("Alice Smith", "9001015009087", "1234567890", "Str0ngPass!")
	if err != nil {
		panic(err)
	}
	return u
}

func NewTestEmployee() *user.User {
	u, err := user.NewEmployee("reviewer1", "Bob Jones", "Str0ngPass!")
	if err != nil {
		panic(err)
	}
	return u
}
