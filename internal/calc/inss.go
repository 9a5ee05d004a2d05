package calc

import "math"

// Bracket is one tier of the progressive INSS table.
type Bracket struct {
	Ceiling   float64 `yaml:"ceiling" json:"ceiling"`
	Rate      float64 `yaml:"rate" json:"rate"`
	Deduction float64 `yaml:"deduction" json:"deduction"`
}

// INSSTable holds the brackets ordered by ascending ceiling plus the global
// contribution ceiling and the flat contribution paid above it.
type INSSTable struct {
	Ceiling         float64   `yaml:"ceiling" json:"ceiling"`
	MaxContribution float64   `yaml:"max_contribution" json:"max_contribution"`
	Brackets        []Bracket `yaml:"brackets" json:"brackets"`
}

// DefaultINSS is the 2024 employee table.
var DefaultINSS = INSSTable{
	Ceiling:         7786.00,
	MaxContribution: 908.85,
	Brackets: []Bracket{
		{Ceiling: 1412.00, Rate: 0.075, Deduction: 0},
		{Ceiling: 2666.68, Rate: 0.09, Deduction: 21.18},
		{Ceiling: 4000.03, Rate: 0.12, Deduction: 101.18},
		{Ceiling: 7786.02, Rate: 0.14, Deduction: 181.18},
	},
}

type INSSResult struct {
	GrossSalary   float64 `json:"gross_salary"`
	Discount      float64 `json:"discount"`
	NetAfterINSS  float64 `json:"net_after_inss"`
	EffectiveRate float64 `json:"effective_rate"`

	// Bracket is the 1-based tier applied, 0 when the flat cap was used.
	Bracket    int  `json:"bracket"`
	CapApplied bool `json:"cap_applied"`
}

// ComputeINSS applies the default table to a gross salary.
func ComputeINSS(grossSalary float64) (INSSResult, error) {
	return DefaultINSS.Compute(grossSalary)
}

// Compute returns the employee withholding for grossSalary. Salaries above the
// contribution ceiling pay MaxContribution flat, not the top bracket formula.
func (t INSSTable) Compute(grossSalary float64) (INSSResult, error) {
	if math.IsNaN(grossSalary) || math.IsInf(grossSalary, 0) || grossSalary < 0 {
		return INSSResult{}, invalid("gross_salary", "insira um salário bruto válido")
	}
	if len(t.Brackets) == 0 {
		return INSSResult{}, invalid("gross_salary", "tabela do INSS sem faixas")
	}

	res := INSSResult{GrossSalary: grossSalary}
	base := math.Min(grossSalary, t.Ceiling)

	if grossSalary > t.Ceiling {
		res.Discount = t.MaxContribution
		res.CapApplied = true
	} else {
		idx := len(t.Brackets) - 1
		for i, b := range t.Brackets {
			if b.Ceiling >= base {
				idx = i
				break
			}
		}
		b := t.Brackets[idx]
		res.Discount = base*b.Rate - b.Deduction
		res.Bracket = idx + 1
	}

	res.NetAfterINSS = grossSalary - res.Discount
	if grossSalary > 0 {
		res.EffectiveRate = res.Discount / grossSalary * 100
	}
	return res, nil
}
