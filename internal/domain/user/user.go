package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/payportal/payportal/internal/domain/errors"
	"golang.org/x/crypto/bcrypt"
)

// Role controls which portal surfaces a user may reach.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// User is a portal account: customers register themselves with a bank account
// number and national ID, employees and admins are provisioned by an admin
// with a username.
type User struct {
	ID            uuid.UUID
	FullName      string
	IDNumber      string
	AccountNumber string
	Username      string
	PasswordHash  string
	Role          Role
	CreatedAt     time.Time
}

// NewCustomer creates a customer account from registration input.
func NewCustomer(fullName, idNumber, accountNumber, password string) (*User, error) {
	if fullName == "" || idNumber == "" || accountNumber == "" {
		return nil, errors.ErrInvalidInput
	}
	u := &User{
		ID:            uuid.New(),
		FullName:      fullName,
		IDNumber:      idNumber,
		AccountNumber: accountNumber,
		Role:          RoleCustomer,
		CreatedAt:     time.Now(),
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// NewEmployee creates an employee account provisioned by an admin.
func NewEmployee(username, fullName, password string) (*User, error) {
	if username == "" || fullName == "" {
		return nil, errors.ErrInvalidInput
	}
	u := &User{
		ID:        uuid.New(),
		FullName:  fullName,
		Username:  username,
		Role:      RoleEmployee,
		CreatedAt: time.Now(),
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword hashes and stores the password.
func (u *User) SetPassword(password string) error {
	if password == "" {
		return errors.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// CanReview reports whether the user may approve or deny pending payments.
func (u *User) CanReview() bool {
	return u.Role == RoleEmployee || u.Role == RoleAdmin
}
