package tables

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"prev-engine/internal/calc"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Tables is the set of statutory parameters in force for one year.
type Tables struct {
	Year             int                    `yaml:"year" json:"year"`
	MinimumWage      float64                `yaml:"minimum_wage" json:"minimum_wage"`
	INSS             calc.INSSTable         `yaml:"inss" json:"inss"`
	LatePayment      calc.LatePaymentRules  `yaml:"late_payment" json:"late_payment"`
	ContributionTime calc.ContributionRules `yaml:"contribution_time" json:"contribution_time"`
	BPC              calc.BPCCriteria       `yaml:"bpc" json:"bpc"`

	fingerprint uint64
}

// Default returns the embedded tables. It panics if the embedded file is
// invalid, which is a build defect.
func Default() *Tables {
	t, err := Parse(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("tables: embedded defaults: %v", err))
	}
	return t
}

// Parse decodes and validates a YAML (or JSON) table document.
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode tables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.seal()
	return &t, nil
}

func (t *Tables) Validate() error {
	var errs []error
	if t.Year <= 0 {
		errs = append(errs, errors.New("year must be positive"))
	}
	if t.MinimumWage <= 0 {
		errs = append(errs, errors.New("minimum_wage must be positive"))
	}
	if t.INSS.Ceiling <= 0 {
		errs = append(errs, errors.New("inss.ceiling must be positive"))
	}
	if t.INSS.MaxContribution < 0 {
		errs = append(errs, errors.New("inss.max_contribution must not be negative"))
	}
	if len(t.INSS.Brackets) == 0 {
		errs = append(errs, errors.New("inss.brackets must not be empty"))
	}
	for i, b := range t.INSS.Brackets {
		if b.Rate < 0 || b.Rate > 1 {
			errs = append(errs, fmt.Errorf("inss.brackets[%d].rate out of range", i))
		}
		if i > 0 && b.Ceiling <= t.INSS.Brackets[i-1].Ceiling {
			errs = append(errs, fmt.Errorf("inss.brackets[%d].ceiling must be greater than the previous one", i))
		}
	}
	lp := t.LatePayment
	if lp.DueDay < 1 || lp.DueDay > 28 {
		errs = append(errs, errors.New("late_payment.due_day must be between 1 and 28"))
	}
	if lp.DailyFineRate < 0 || lp.FineCap < 0 || lp.FineCap > 1 || lp.MonthlyInterestRate < 0 {
		errs = append(errs, errors.New("late_payment rates out of range"))
	}
	if t.ContributionTime.DaysPerYear <= 0 || t.ContributionTime.DaysPerMonth <= 0 {
		errs = append(errs, errors.New("contribution_time divisors must be positive"))
	}
	if t.BPC.MinimumAge <= 0 || t.BPC.IncomeFraction <= 0 {
		errs = append(errs, errors.New("bpc criteria must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid tables: %w", errors.Join(errs...))
	}
	return nil
}

func (t *Tables) seal() {
	b, _ := json.Marshal(t)
	t.fingerprint = xxhash.Sum64(b)
}

// Fingerprint identifies the table contents. Two tables with the same values
// share a fingerprint regardless of where they were loaded from.
func (t *Tables) Fingerprint() uint64 {
	return t.fingerprint
}
