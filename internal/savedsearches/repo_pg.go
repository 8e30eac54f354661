package savedsearches

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Upsert inserts a saved search or updates the row already holding the URL.
func (r *PGRepo) Upsert(ctx context.Context, s SavedSearch) (SavedSearch, error) {
	const query = `
INSERT INTO saved_searches (id, url, company_name, type, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (url) DO UPDATE SET company_name = EXCLUDED.company_name, type = EXCLUDED.type
RETURNING id, url, company_name, type, created_at`

	row := r.DB.QueryRowContext(ctx, query, uuid.NewString(), s.URL, s.CompanyName, string(s.Type), time.Now().UTC())

	var out SavedSearch
	var searchType string
	if err := row.Scan(&out.ID, &out.URL, &out.CompanyName, &searchType, &out.CreatedAt); err != nil {
		return SavedSearch{}, err
	}
	out.Type = SearchType(searchType)
	return out, nil
}

// List returns all saved searches newest-first.
func (r *PGRepo) List(ctx context.Context) ([]SavedSearch, error) {
	const query = `
SELECT id, url, company_name, type, created_at
FROM saved_searches
ORDER BY created_at DESC, id DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SavedSearch
	for rows.Next() {
		var s SavedSearch
		var searchType string
		if err := rows.Scan(&s.ID, &s.URL, &s.CompanyName, &searchType, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Type = SearchType(searchType)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes a saved search by id.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM saved_searches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
