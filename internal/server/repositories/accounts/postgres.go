package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/essabriabdelghani/chatbot-gemini/internal/common"
	"github.com/essabriabdelghani/chatbot-gemini/internal/dbx"
	"github.com/essabriabdelghani/chatbot-gemini/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code for unique constraint
// violations, raised by the accounts_email_key constraint on insert.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {

	query :=
		`INSERT INTO accounts (name, email, password_hash, avatar)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	account.Email = NormalizeEmail(account.Email)

	err := r.db.QueryRowContext(ctx, query,
		account.Name, account.Email, account.PasswordHash, account.Avatar).
		Scan(&account.ID, &account.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorEmailExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	query :=
		`SELECT id, name, email, password_hash, avatar, created_at FROM accounts
		 WHERE email = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, NormalizeEmail(email)))
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	query :=
		`SELECT id, name, email, password_hash, avatar, created_at FROM accounts
		 WHERE id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Account, error) {
	account := &models.Account{}
	err := row.Scan(&account.ID, &account.Name, &account.Email,
		&account.PasswordHash, &account.Avatar, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}
