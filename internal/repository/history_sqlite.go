package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS calculation_history (
	id               TEXT PRIMARY KEY,
	request_id       TEXT NOT NULL,
	tenant_id        TEXT NOT NULL,
	calculation_id   TEXT NOT NULL,
	calculation_type TEXT NOT NULL,
	tables_year      INTEGER NOT NULL,
	properties       TEXT NOT NULL,
	result           TEXT NOT NULL,
	created_at       INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_tenant_created
	ON calculation_history (tenant_id, created_at DESC);
`

// SQLiteHistory persists history in a SQLite database file.
type SQLiteHistory struct {
	db *sql.DB
}

func NewSQLiteHistory(path string) (*SQLiteHistory, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; serialize through one connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteHistory{db: db}, nil
}

func (s *SQLiteHistory) Save(ctx context.Context, rec HistoryRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO calculation_history
			(id, request_id, tenant_id, calculation_id, calculation_type, tables_year, properties, result, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.RequestID, rec.TenantID, rec.CalculationID, rec.CalculationType, rec.TablesYear,
		string(rec.Properties), string(rec.Result), rec.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

func (s *SQLiteHistory) List(ctx context.Context, tenantID string, limit int) ([]HistoryRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, request_id, tenant_id, calculation_id, calculation_type, tables_year, properties, result, created_at
		   FROM calculation_history
		  WHERE (? = '' OR tenant_id = ?)
		  ORDER BY created_at DESC, rowid DESC
		  LIMIT ?`,
		tenantID, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	out := []HistoryRecord{}
	for rows.Next() {
		var (
			rec         HistoryRecord
			props, res  string
			createdNano int64
		)
		if err := rows.Scan(&rec.ID, &rec.RequestID, &rec.TenantID, &rec.CalculationID, &rec.CalculationType,
			&rec.TablesYear, &props, &res, &createdNano); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		rec.Properties = []byte(props)
		rec.Result = []byte(res)
		rec.CreatedAt = time.Unix(0, createdNano).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteHistory) Close() error {
	return s.db.Close()
}
