package candidatures

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const uniqueViolation = "23505"

// Create inserts a new candidature. A unique-index violation on url is
// translated to ErrDuplicateURL so callers can treat it as an
// already-satisfied outcome.
func (r *PGRepo) Create(ctx context.Context, c Candidature) error {
	const query = `
INSERT INTO candidatures (
    id, company, title, platform, location, url, description,
    contact_email, status, cover_letter, cv, notes, date, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)`

	now := time.Now().UTC()
	_, err := r.DB.ExecContext(
		ctx,
		query,
		c.ID,
		c.Company,
		c.Title,
		string(c.Platform),
		c.Location,
		c.URL,
		c.Description,
		c.ContactEmail,
		string(c.Status),
		nullString(c.CoverLetter),
		nullString(c.CV),
		c.Notes,
		c.Date,
		now,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateURL
		}
		return err
	}
	return nil
}

const selectColumns = `
SELECT id, company, title, platform, location, url, description,
       contact_email, status, cover_letter, cv, notes, date, created_at, updated_at
FROM candidatures`

// GetByID fetches a candidature by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Candidature, error) {
	row := r.DB.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id)
	return scanCandidature(row)
}

// List returns all candidatures newest-first.
func (r *PGRepo) List(ctx context.Context) ([]Candidature, error) {
	rows, err := r.DB.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Candidature
	for rows.Next() {
		c, err := scanCandidature(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update persists all mutable fields of a candidature.
func (r *PGRepo) Update(ctx context.Context, c Candidature) error {
	const query = `
UPDATE candidatures
SET company = $2, title = $3, platform = $4, location = $5, url = $6,
    description = $7, contact_email = $8, status = $9, cover_letter = $10,
    cv = $11, notes = $12, date = $13, updated_at = $14
WHERE id = $1`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		c.ID,
		c.Company,
		c.Title,
		string(c.Platform),
		c.Location,
		c.URL,
		c.Description,
		c.ContactEmail,
		string(c.Status),
		nullString(c.CoverLetter),
		nullString(c.CV),
		c.Notes,
		c.Date,
		time.Now().UTC(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateURL
		}
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a candidature permanently.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM candidatures WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidature(row rowScanner) (Candidature, error) {
	var c Candidature
	var platform, status string
	var letter, cv sql.NullString
	err := row.Scan(
		&c.ID,
		&c.Company,
		&c.Title,
		&platform,
		&c.Location,
		&c.URL,
		&c.Description,
		&c.ContactEmail,
		&status,
		&letter,
		&cv,
		&c.Notes,
		&c.Date,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Candidature{}, ErrNotFound
		}
		return Candidature{}, err
	}
	c.Platform = Platform(platform)
	c.Status = Status(status)
	if letter.Valid {
		c.CoverLetter = &letter.String
	}
	if cv.Valid {
		c.CV = &cv.String
	}
	return c, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
