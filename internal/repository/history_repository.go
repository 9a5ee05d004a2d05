package repository

import (
	"context"
	"time"

	json "github.com/goccy/go-json"
)

// HistoryRecord is one successfully computed calculation.
type HistoryRecord struct {
	ID              string          `json:"id"`
	RequestID       string          `json:"request_id"`
	TenantID        string          `json:"tenant_id"`
	CalculationID   string          `json:"calculation_id"`
	CalculationType string          `json:"calculation_type"`
	TablesYear      int             `json:"tables_year"`
	Properties      json.RawMessage `json:"properties"`
	Result          json.RawMessage `json:"result"`
	CreatedAt       time.Time       `json:"created_at"`
}

type HistoryRepository interface {
	Save(ctx context.Context, rec HistoryRecord) error
	// List returns up to limit records for tenantID, newest first. An empty
	// tenantID lists all tenants.
	List(ctx context.Context, tenantID string, limit int) ([]HistoryRecord, error)
}
