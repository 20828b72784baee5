package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/payportal/payportal/internal/domain/errors"
	"github.com/payportal/payportal/internal/domain/payment"
)

// allowedSortColumns is a whitelist of columns valid for ORDER BY.
var allowedSortColumns = map[string]string{
	"created_at": "created_at",
	"amount":     "amount",
	"status":     "status",
	"updated_at": "updated_at",
}

const paymentColumns = `id, user_id, amount, currency, provider, recipient_account,
		        swift_code, status, reviewed_by, created_at, updated_at, reviewed_at`

// PaymentRepository implements payment.Repository using PostgreSQL.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Create inserts a new payment.
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO payments
		 (id, user_id, amount, currency, provider, recipient_account,
		  swift_code, status, reviewed_by, created_at, updated_at, reviewed_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		p.ID, p.UserID, centsToNumericString(p.Amount.ValueCents), p.Amount.Currency,
		string(p.Provider), p.RecipientAccount, p.SwiftCode, string(p.Status),
		p.ReviewedBy, p.CreatedAt, p.UpdatedAt, p.ReviewedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by its ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	return r.scanPayment(r.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
}

// Update persists review-state changes to an existing payment.
func (r *PaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE payments SET status=$1, reviewed_by=$2, updated_at=$3, reviewed_at=$4
		 WHERE id=$5`,
		string(p.Status), p.ReviewedBy, p.UpdatedAt, p.ReviewedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrPaymentNotFound
	}
	return nil
}

// List lists payments with optional filters.
func (r *PaymentRepository) List(ctx context.Context, f payment.ListFilter) ([]*payment.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE 1=1`
	args := []any{}
	argIdx := 1

	if f.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, *f.UserID)
		argIdx++
	}
	if f.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, string(*f.Status))
		argIdx++
	}
	if f.Reviewed {
		query += fmt.Sprintf(" AND status != $%d", argIdx)
		args = append(args, string(payment.StatusPending))
		argIdx++
	}

	// Strict whitelist for sort column
	sortBy := "created_at"
	if col, ok := allowedSortColumns[f.SortBy]; ok {
		sortBy = col
	}
	sortOrder := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		sortOrder = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, sortOrder)

	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, f.Limit)
		argIdx++
	}
	if f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, f.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []*payment.Payment
	for rows.Next() {
		p, err := r.scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) scanPayment(row scanner) (*payment.Payment, error) {
	var (
		p         payment.Payment
		amountStr string
		provider  string
		status    string
	)

	err := row.Scan(
		&p.ID, &p.UserID, &amountStr, &p.Amount.Currency, &provider,
		&p.RecipientAccount, &p.SwiftCode, &status, &p.ReviewedBy,
		&p.CreatedAt, &p.UpdatedAt, &p.ReviewedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domainErrors.ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan payment: %w", err)
	}

	cents, err := numericStringToCents(amountStr)
	if err != nil {
		return nil, err
	}
	p.Amount.ValueCents = cents
	p.Provider = payment.Provider(provider)
	p.Status = payment.Status(status)
	return &p, nil
}
