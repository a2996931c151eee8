package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/models"
)

const selectColumns = `id, name, url, username, password_encrypted, notes_encrypted, category, created_at, updated_at`

// SQLRepository implements Repository over a DBTX for SQLite and Postgres.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*models.Record, error) {
	r := &models.Record{}
	if err := s.Scan(&r.ID, &r.Name, &r.URL, &r.Username, &r.Password, &r.Notes, &r.Category, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	return r, nil
}

// Create inserts r and returns the generated id. Timestamps are taken from r.
func (r *SQLRepository) Create(ctx context.Context, rec *models.Record) (int64, error) {
	query := r.dialect.Rebind(`
		INSERT INTO passwords (name, url, username, password_encrypted, notes_encrypted, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		rec.Name, rec.URL, rec.Username, rec.Password, rec.Notes, rec.Category, rec.CreatedAt, rec.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert record: %w", err)
	}
	return id, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.Record, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(`SELECT `+selectColumns+` FROM passwords WHERE id = ?`), id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record %d: %w", id, err)
	}
	return rec, nil
}

// List returns every record ordered by category, then name.
func (r *SQLRepository) List(ctx context.Context) ([]models.Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM passwords ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	var result []models.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return result, nil
}

// Update overwrites every mutable column of the row with rec's values in a
// single statement. created_at is never touched.
func (r *SQLRepository) Update(ctx context.Context, rec *models.Record) error {
	query := r.dialect.Rebind(`
		UPDATE passwords
		SET name = ?, url = ?, username = ?, password_encrypted = ?, notes_encrypted = ?, category = ?, updated_at = ?
		WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query,
		rec.Name, rec.URL, rec.Username, rec.Password, rec.Notes, rec.Category, rec.UpdatedAt, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to update record %d: %w", rec.ID, err)
	}
	return expectOneRow(res)
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM passwords WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete record %d: %w", id, err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}
