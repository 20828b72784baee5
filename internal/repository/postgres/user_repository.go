package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/payportal/payportal/internal/domain/errors"
	"github.com/payportal/payportal/internal/domain/user"
)

const userColumns = `id, full_name, id_number, account_number, username, password_hash, role, created_at`

// UserRepository implements user.Repository using PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a new user. Unique violations are mapped to the matching
// duplicate sentinel.
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users
		 (id, full_name, id_number, account_number, username, password_hash, role, created_at)
		 VALUES ($1,$2,NULLIF($3,''),NULLIF($4,''),NULLIF($5,''),$6,$7,$8)`,
		u.ID, u.FullName, u.IDNumber, u.AccountNumber, u.Username,
		u.PasswordHash, string(u.Role), u.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "users_account_number_key":
				return domainErrors.ErrDuplicateAccount
			case "users_id_number_key":
				return domainErrors.ErrDuplicateIDNumber
			case "users_username_key":
				return domainErrors.ErrDuplicateUsername
			}
			return domainErrors.ErrDuplicateAccount
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by its ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByAccountNumber retrieves a customer by bank account number.
func (r *UserRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (*user.User, error) {
	return r.scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE account_number = $1`, accountNumber))
}

// GetByUsername retrieves an employee or admin by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// ListByRole lists users with the given role, newest first.
func (r *UserRepository) ListByRole(ctx context.Context, role user.Role) ([]*user.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at DESC`, string(role))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Delete removes a user by ID.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) scanUser(row scanner) (*user.User, error) {
	var (
		u             user.User
		idNumber      *string
		accountNumber *string
		username      *string
		role          string
	)

	err := row.Scan(&u.ID, &u.FullName, &idNumber, &accountNumber, &username,
		&u.PasswordHash, &role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domainErrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}

	if idNumber != nil {
		u.IDNumber = *idNumber
	}
	if accountNumber != nil {
		u.AccountNumber = *accountNumber
	}
	if username != nil {
		u.Username = *username
	}
	u.Role = user.Role(role)
	return &u, nil
}
