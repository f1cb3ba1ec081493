package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/rota/internal/db"
)

// SQLiteProjectRepo implements ProjectRepo over a DBTX, so the same type
// works against the database handle or inside a unit-of-work transaction.
type SQLiteProjectRepo struct {
	db db.DBTX
}

func NewSQLiteProjectRepo(dbtx db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: dbtx}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, rec *ProjectRecord) error {
	query := `INSERT INTO projects (id, name, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Name,
		rec.Document,
		rec.CreatedAt.UTC().Format(time.RFC3339),
		rec.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*ProjectRecord, error) {
	query := `SELECT id, name, document, created_at, updated_at FROM projects WHERE id = ?`
	return r.scan(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteProjectRepo) GetByName(ctx context.Context, name string) (*ProjectRecord, error) {
	query := `SELECT id, name, document, created_at, updated_at FROM projects WHERE name = ?`
	return r.scan(r.db.QueryRowContext(ctx, query, name))
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*ProjectRecord, error) {
	query := `SELECT id, name, document, created_at, updated_at FROM projects ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var records []*ProjectRecord
	for rows.Next() {
		rec, err := r.scanRows(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return records, nil
}

func (r *SQLiteProjectRepo) UpdateDocument(ctx context.Context, id, document string) error {
	query := `UPDATE projects SET document = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, document, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating project document: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteProjectRepo) Rename(ctx context.Context, id, name string) error {
	query := `UPDATE projects SET name = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, name, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("renaming project: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteProjectRepo) scan(row *sql.Row) (*ProjectRecord, error) {
	var rec ProjectRecord
	var created, updated string
	err := row.Scan(&rec.ID, &rec.Name, &rec.Document, &created, &updated)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, created)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &rec, nil
}

func (r *SQLiteProjectRepo) scanRows(rows *sql.Rows) (*ProjectRecord, error) {
	var rec ProjectRecord
	var created, updated string
	if err := rows.Scan(&rec.ID, &rec.Name, &rec.Document, &created, &updated); err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, created)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &rec, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
