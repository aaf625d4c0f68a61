package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"usersvc/internal/account/models"
	"usersvc/pkg/platform/sentinel"
)

// Postgres persists accounts in the accounts table. The unique indexes on
// id, email and username are the ultimate backstop against check-then-write
// races: violations surface as ConflictError naming the field the index
// covers, never as silent corruption.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Constraint names from db/schema.sql, mapped to the conflicting field.
var accountConstraintFields = map[string]string{
	"accounts_pkey":         "id",
	"accounts_email_key":    "email",
	"accounts_username_key": "username",
}

func mapAccountError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		if field, ok := accountConstraintFields[pqErr.Constraint]; ok {
			return sentinel.Conflict(field)
		}
		return sentinel.ErrConflict
	}
	return err
}

func (s *Postgres) Create(ctx context.Context, a models.Account) error {
	const query = `
		INSERT INTO accounts (id, email, username, fullname, role, deleted)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query, a.ID, a.Email, a.Username, a.Fullname, a.Role, a.Deleted)
	if err != nil {
		return mapAccountError(err)
	}
	return nil
}

const accountColumns = "id, email, username, fullname, role, deleted"

func scanAccount(row *sql.Row) (models.Account, error) {
	var a models.Account
	err := row.Scan(&a.ID, &a.Email, &a.Username, &a.Fullname, &a.Role, &a.Deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Account{}, err
	}
	return a, nil
}

func (s *Postgres) FindByID(ctx context.Context, id string) (models.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id = $1", id)
	return scanAccount(row)
}

func (s *Postgres) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE email = $1", email)
	return scanAccount(row)
}

func (s *Postgres) FindByUsername(ctx context.Context, username string) (models.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE username = $1", username)
	return scanAccount(row)
}

func (s *Postgres) List(ctx context.Context, filter models.ListFilter) ([]models.Account, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !filter.IncludeDeleted {
		conds = append(conds, "deleted = FALSE")
	}
	if filter.FullnameContains != "" {
		conds = append(conds, "fullname LIKE "+arg("%"+filter.FullnameContains+"%"))
	}
	if filter.UsernameContains != "" {
		conds = append(conds, "username LIKE "+arg("%"+filter.UsernameContains+"%"))
	}
	if filter.EmailContains != "" {
		conds = append(conds, "email LIKE "+arg("%"+filter.EmailContains+"%"))
	}
	if filter.Role != "" {
		conds = append(conds, "LOWER(role) = LOWER("+arg(filter.Role)+")")
	}

	query := "SELECT " + accountColumns + " FROM accounts"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.Username, &a.Fullname, &a.Role, &a.Deleted); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (s *Postgres) Update(ctx context.Context, a models.Account) error {
	const query = `
		UPDATE accounts
		SET email = $2, username = $3, fullname = $4, role = $5, deleted = $6
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query, a.ID, a.Email, a.Username, a.Fullname, a.Role, a.Deleted)
	if err != nil {
		return mapAccountError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM accounts WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
