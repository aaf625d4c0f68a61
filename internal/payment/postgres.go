package payment

import (
	"context"
	"database/sql"
	"errors"

	"usersvc/pkg/platform/sentinel"
)

type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const methodColumns = `id, owner_id, card_number, email, phone, expiry_date,
	card_holder_name, city, first_line, second_line, country, postal_code, state_name`

func (s *Postgres) Create(ctx context.Context, m Method) (Method, error) {
	const query = `
		INSERT INTO payment_methods (owner_id, card_number, email, phone, expiry_date,
			card_holder_name, city, first_line, second_line, country, postal_code, state_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		m.OwnerID, m.CardNumber, m.Email, m.Phone, m.ExpiryDate,
		m.CardHolderName, m.City, m.FirstLine, m.SecondLine, m.Country, m.PostalCode, m.StateName,
	).Scan(&m.ID)
	if err != nil {
		return Method{}, err
	}
	return m, nil
}

func (s *Postgres) FindByOwner(ctx context.Context, ownerID string) ([]Method, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+methodColumns+" FROM payment_methods WHERE owner_id = $1 ORDER BY id", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Method
	for rows.Next() {
		m, err := scanMethod(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (s *Postgres) FindByID(ctx context.Context, id int) (Method, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+methodColumns+" FROM payment_methods WHERE id = $1", id)
	m, err := scanMethod(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Method{}, sentinel.ErrNotFound
	}
	return m, err
}

func (s *Postgres) FindByIDAndOwner(ctx context.Context, id int, ownerID string) (Method, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+methodColumns+" FROM payment_methods WHERE id = $1 AND owner_id = $2", id, ownerID)
	m, err := scanMethod(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Method{}, sentinel.ErrNotFound
	}
	return m, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMethod(row scanner) (Method, error) {
	var m Method
	err := row.Scan(&m.ID, &m.OwnerID, &m.CardNumber, &m.Email, &m.Phone, &m.ExpiryDate,
		&m.CardHolderName, &m.City, &m.FirstLine, &m.SecondLine, &m.Country, &m.PostalCode, &m.StateName)
	if err != nil {
		return Method{}, err
	}
	return m, nil
}

func (s *Postgres) Update(ctx context.Context, m Method) error {
	const query = `
		UPDATE payment_methods
		SET card_number = $2, email = $3, phone = $4, expiry_date = $5, card_holder_name = $6,
			city = $7, first_line = $8, second_line = $9, country = $10, postal_code = $11, state_name = $12
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query, m.ID, m.CardNumber, m.Email, m.Phone, m.ExpiryDate,
		m.CardHolderName, m.City, m.FirstLine, m.SecondLine, m.Country, m.PostalCode, m.StateName)
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
	res, err := s.db.ExecContext(ctx, "DELETE FROM payment_methods WHERE id = $1", id)
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
