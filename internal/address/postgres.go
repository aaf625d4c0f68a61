package address

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"usersvc/pkg/platform/sentinel"
)

// Postgres persists addresses; the owner foreign key rejects rows for
// unknown accounts.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const addressColumns = "id, owner_id, name, address, details, latitude, longitude"

func (s *Postgres) Create(ctx context.Context, a Address) (Address, error) {
	const query = `
		INSERT INTO addresses (owner_id, name, address, details, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		a.OwnerID, a.Name, a.Address, a.Details, a.Latitude, a.Longitude,
	).Scan(&a.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return Address{}, sentinel.ErrConflict
		}
		return Address{}, err
	}
	return a, nil
}

func (s *Postgres) FindByOwner(ctx context.Context, ownerID string) ([]Address, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+addressColumns+" FROM addresses WHERE owner_id = $1 ORDER BY id", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Address
	for rows.Next() {
		var a Address
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.Name, &a.Address, &a.Details, &a.Latitude, &a.Longitude); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (s *Postgres) FindByIDAndOwner(ctx context.Context, id int, ownerID string) (Address, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+addressColumns+" FROM addresses WHERE id = $1 AND owner_id = $2", id, ownerID)
	return scanAddress(row)
}

func (s *Postgres) FindByID(ctx context.Context, id int) (Address, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+addressColumns+" FROM addresses WHERE id = $1", id)
	return scanAddress(row)
}

func scanAddress(row *sql.Row) (Address, error) {
	var a Address
	err := row.Scan(&a.ID, &a.OwnerID, &a.Name, &a.Address, &a.Details, &a.Latitude, &a.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return Address{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Address{}, err
	}
	return a, nil
}

func (s *Postgres) Update(ctx context.Context, a Address) error {
	const query = `
		UPDATE addresses
		SET name = $2, address = $3, details = $4, latitude = $5, longitude = $6
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query, a.ID, a.Name, a.Address, a.Details, a.Latitude, a.Longitude)
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

func (s *Postgres) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM addresses WHERE id = $1", id)
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
