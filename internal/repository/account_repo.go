package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"waveo-api/internal/model"
	"waveo-api/pkg/apierror"
)

const uniqueViolation = "23505"

const accountColumns = `id, prenom, nom, username, email, location, surf_level,
	        password_hash, role, created_at, updated_at`

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (model.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row, id)
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (model.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE lower(email) = lower($1)`,
		strings.TrimSpace(email))
	return scanAccount(row, email)
}

func (r *AccountRepository) FindLatest(ctx context.Context) (model.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC LIMIT 1`)
	return scanAccount(row, "")
}

func (r *AccountRepository) Create(ctx context.Context, a model.Account) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO accounts (id, prenom, nom, username, email, location, surf_level,
		                       password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.Prenom, a.Nom, a.Username, a.Email, a.Location, a.SurfLevel,
		a.PasswordHash, a.Role, a.CreatedAt, a.UpdatedAt)
	if isUniqueViolation(err) {
		return apierror.New("ALREADY_EXISTS", "email already in use", a.Email, http.StatusConflict)
	}
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) Update(ctx context.Context, a model.Account) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts
		 SET prenom = $2, nom = $3, username = $4, email = $5, location = $6,
		     surf_level = $7, password_hash = $8, updated_at = $9
		 WHERE id = $1`,
		a.ID, a.Prenom, a.Nom, a.Username, a.Email, a.Location,
		a.SurfLevel, a.PasswordHash, a.UpdatedAt)
	if isUniqueViolation(err) {
		return apierror.New("ALREADY_EXISTS", "email already in use", a.Email, http.StatusConflict)
	}
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.New("NOT_FOUND", "account not found", a.ID, http.StatusNotFound)
	}
	return nil
}

func scanAccount(row pgx.Row, ref string) (model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.Prenom, &a.Nom, &a.Username, &a.Email, &a.Location,
		&a.SurfLevel, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Account{}, apierror.New("NOT_FOUND", "account not found", ref, http.StatusNotFound)
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("scan account: %w", err)
	}
	return a, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
