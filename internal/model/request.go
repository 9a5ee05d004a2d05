package model

import json "github.com/goccy/go-json"

type CalculationRequest struct {
	TenantID string `json:"tenant_id"`
	// ReferenceYear selects the statutory tables; 0 means the tables in force.
	ReferenceYear int           `json:"reference_year,omitempty"`
	Calculations  []Calculation `json:"calculations"`
}

type Calculation struct {
	CalculationID   string          `json:"calculation_id"`
	CalculationType string          `json:"calculation_type"`
	Properties      json.RawMessage `json:"properties"`
}

const (
	TypeINSS             = "inss"
	TypeContributionTime = "contribution_time"
	TypeLatePayment      = "late_payment"
	TypeBPCEligibility   = "bpc_eligibility"
)
