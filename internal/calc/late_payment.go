package calc

import (
	"math"
	"time"
)

// LatePaymentRules parameterises the late contribution simulation. Interest is
// a flat monthly rate, not the SELIC-indexed figure the tax authority uses.
type LatePaymentRules struct {
	DueDay              int     `yaml:"due_day" json:"due_day"`
	DailyFineRate       float64 `yaml:"daily_fine_rate" json:"daily_fine_rate"`
	FineCap             float64 `yaml:"fine_cap" json:"fine_cap"`
	MonthlyInterestRate float64 `yaml:"monthly_interest_rate" json:"monthly_interest_rate"`
}

var DefaultLatePaymentRules = LatePaymentRules{
	DueDay:              15,
	DailyFineRate:       0.0033,
	FineCap:             0.20,
	MonthlyInterestRate: 0.01,
}

type LatePaymentInput struct {
	Competence  Competence
	Value       float64
	PaymentDate time.Time
}

type LatePaymentResult struct {
	DueDate        time.Time `json:"due_date"`
	Late           bool      `json:"late"`
	DaysLate       int       `json:"days_late"`
	MonthsLate     int       `json:"months_late"`
	FinePercent    float64   `json:"fine_percent"`
	FineAmount     float64   `json:"fine_amount"`
	InterestAmount float64   `json:"interest_amount"`
	TotalDue       float64   `json:"total_due"`
}

// ComputeLatePayment applies the default rules.
func ComputeLatePayment(in LatePaymentInput) (LatePaymentResult, error) {
	return DefaultLatePaymentRules.Compute(in)
}

// DueDate is the due day of the month following the competence month.
func (r LatePaymentRules) DueDate(c Competence) time.Time {
	return time.Date(c.Year, c.Month+1, r.DueDay, 0, 0, 0, 0, time.UTC)
}

func (r LatePaymentRules) Compute(in LatePaymentInput) (LatePaymentResult, error) {
	if math.IsNaN(in.Value) || math.IsInf(in.Value, 0) || in.Value <= 0 {
		return LatePaymentResult{}, invalid("value", "informe um valor de contribuição maior que zero")
	}
	if in.Competence.IsZero() || in.Competence.Month < time.January || in.Competence.Month > time.December {
		return LatePaymentResult{}, invalid("competence", "informe a competência da contribuição")
	}
	if in.PaymentDate.IsZero() {
		return LatePaymentResult{}, invalid("payment_date", "informe a data de pagamento")
	}

	due := r.DueDate(in.Competence)
	res := LatePaymentResult{DueDate: due, TotalDue: in.Value}
	if !in.PaymentDate.After(due) {
		return res, nil
	}

	res.Late = true
	res.DaysLate = int(daysBetween(due, in.PaymentDate))
	res.FinePercent = math.Min(float64(res.DaysLate)*r.DailyFineRate, r.FineCap)
	res.FineAmount = in.Value * res.FinePercent

	py, pm, _ := in.PaymentDate.Date()
	dy, dm, _ := due.Date()
	res.MonthsLate = (py-dy)*12 + int(pm-dm)
	res.InterestAmount = in.Value * float64(res.MonthsLate) * r.MonthlyInterestRate

	res.TotalDue = in.Value + res.FineAmount + res.InterestAmount
	return res, nil
}
