package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/skiff-term/skiff/internal/session"
)

// VisitRepo handles the session visit log. Private visits are recorded so
// close-private-tabs can purge them, but list queries exclude them.
type VisitRepo struct {
	db   *sql.DB
	keep int
}

// NewVisitRepo returns a visit log capped at keep rows; keep <= 0 means
// uncapped.
func NewVisitRepo(db *sql.DB, keep int) *VisitRepo {
	return &VisitRepo{db: db, keep: keep}
}

// Record inserts a visit and trims the log back to the cap, atomically.
func (r *VisitRepo) Record(ctx context.Context, v Visit) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.VisitedAt.IsZero() {
		v.VisitedAt = session.Now()
	}
	return session.WithTx(r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
	INSERT INTO visits(id, tab_id, url, title, is_private, visited_at)
	VALUES(?, ?, ?, ?, ?, ?);
	`, v.ID, v.TabID, v.URL, v.Title, v.IsPrivate, v.VisitedAt)
		if err != nil {
			return err
		}
		if r.keep <= 0 {
			return nil
		}
		_, err = tx.ExecContext(ctx, `
	DELETE FROM visits WHERE id NOT IN (
		SELECT id FROM visits ORDER BY visited_at DESC, id LIMIT ?)`, r.keep)
		return err
	})
}

// Recent returns up to limit non-private visits, newest first.
func (r *VisitRepo) Recent(ctx context.Context, limit int) ([]Visit, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, tab_id, url, title, is_private, visited_at
	FROM visits WHERE is_private = 0
	ORDER BY visited_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVisits(rows)
}

// Search returns non-private visits whose URL or title contains the term.
func (r *VisitRepo) Search(ctx context.Context, term string, limit int) ([]Visit, error) {
	if limit <= 0 {
		limit = 50
	}
	like := "%" + term + "%"
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, tab_id, url, title, is_private, visited_at
	FROM visits WHERE is_private = 0 AND (url LIKE ? OR title LIKE ?)
	ORDER BY visited_at DESC LIMIT ?`, like, like, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectVisits(rows)
}

// PurgePrivate drops all private visits.
func (r *VisitRepo) PurgePrivate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM visits WHERE is_private = 1`)
	return err
}

// Clear drops the whole visit log (clear-private-data settings action).
func (r *VisitRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM visits`)
	return err
}

func collectVisits(rows *sql.Rows) ([]Visit, error) {
	var out []Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.ID, &v.TabID, &v.URL, &v.Title, &v.IsPrivate, &v.VisitedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
