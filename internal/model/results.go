package model

// Result payloads as they appear on the wire. Money is a plain float meant to
// be formatted by the caller; dates are YYYY-MM-DD.

type INSSResult struct {
	GrossSalary   float64 `json:"gross_salary"`
	Discount      float64 `json:"discount"`
	NetAfterINSS  float64 `json:"net_after_inss"`
	EffectiveRate float64 `json:"effective_rate"`
	Bracket       int     `json:"bracket"`
	CapApplied    bool    `json:"cap_applied"`
}

type ContributionTimeResult struct {
	Years     int            `json:"years"`
	Months    int            `json:"months"`
	Days      int            `json:"days"`
	TotalDays int            `json:"total_days"`
	Periods   []PeriodResult `json:"periods"`
}

type PeriodResult struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

type LatePaymentResult struct {
	Competence     string  `json:"competence"`
	Value          float64 `json:"value"`
	DueDate        string  `json:"due_date"`
	PaymentDate    string  `json:"payment_date"`
	Late           bool    `json:"late"`
	DaysLate       int     `json:"days_late"`
	MonthsLate     int     `json:"months_late"`
	FinePercent    float64 `json:"fine_percent"`
	FineAmount     float64 `json:"fine_amount"`
	InterestAmount float64 `json:"interest_amount"`
	TotalDue       float64 `json:"total_due"`
}

type BPCEligibilityResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Details string `json:"details"`
	Path    []int  `json:"path"`
}
