package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/skiff-term/skiff/internal/session"
)

// TabRepo handles open tabs.
type TabRepo struct {
	db *sql.DB
}

func NewTabRepo(db *sql.DB) *TabRepo { return &TabRepo{db: db} }

// Open creates a tab and returns it.
func (r *TabRepo) Open(ctx context.Context, url, title string, private bool) (Tab, error) {
	now := session.Now()
	t := Tab{
		ID:           uuid.NewString(),
		URL:          url,
		Title:        title,
		IsPrivate:    private,
		CreatedAt:    now,
		LastAccessed: now,
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO tabs(id, url, title, is_private, created_at, last_accessed)
	VALUES(?, ?, ?, ?, ?, ?);
	`, t.ID, t.URL, t.Title, t.IsPrivate, t.CreatedAt, t.LastAccessed)
	if err != nil {
		return Tab{}, err
	}
	return t, nil
}

func (r *TabRepo) Get(ctx context.Context, id string) (*Tab, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, url, title, is_private, created_at, last_accessed
	FROM tabs WHERE id = ?`, id)
	t, err := scanTab(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Touch updates the tab's URL, title and access time on navigation.
func (r *TabRepo) Touch(ctx context.Context, id, url, title string) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE tabs SET url = ?, title = ?, last_accessed = ? WHERE id = ?`,
		url, title, session.Now(), id)
	return err
}

func (r *TabRepo) Close(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tabs WHERE id = ?`, id)
	return err
}

// CloseAllPrivate removes every private tab and reports how many went.
func (r *TabRepo) CloseAllPrivate(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tabs WHERE is_private = 1`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// List returns tabs, most recently accessed first.
func (r *TabRepo) List(ctx context.Context, includePrivate bool) ([]Tab, error) {
	query := `
	SELECT id, url, title, is_private, created_at, last_accessed
	FROM tabs`
	if !includePrivate {
		query += ` WHERE is_private = 0`
	}
	query += ` ORDER BY last_accessed DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Tab
	for rows.Next() {
		t, err := scanTab(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TabRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tabs`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTab(row rowScanner) (Tab, error) {
	var t Tab
	err := row.Scan(&t.ID, &t.URL, &t.Title, &t.IsPrivate, &t.CreatedAt, &t.LastAccessed)
	return t, err
}
