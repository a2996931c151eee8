package vaultconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/dbx"
)

// SQLRepository implements Repository for both supported dialects.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(`SELECT value FROM vault_config WHERE key = ?`), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrorNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get vault_config[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLRepository) Insert(ctx context.Context, key, value string) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(`
		INSERT INTO vault_config (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO NOTHING
	`), key, value)
	if err != nil {
		return fmt.Errorf("failed to insert vault_config[%s]: %w", key, err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorAlreadyExists
	}
	return nil
}

func (r *SQLRepository) List(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM vault_config`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vault_config: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan vault_config row: %w", err)
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vault_config rows: %w", err)
	}

	return result, nil
}
