package tables

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prev-engine/internal/calc"
)

func TestDefault_MatchesCoreConstants(t *testing.T) {
	d := Default()
	assert.Equal(t, 2024, d.Year)
	assert.Equal(t, calc.DefaultMinimumWage, d.MinimumWage)
	if diff := cmp.Diff(calc.DefaultINSS, d.INSS); diff != "" {
		t.Errorf("inss table mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, calc.DefaultLatePaymentRules, d.LatePayment)
	assert.Equal(t, calc.DefaultContributionRules, d.ContributionTime)
	assert.Equal(t, calc.DefaultBPCCriteria, d.BPC)
}

func TestFingerprint_StableAcrossLoads(t *testing.T) {
	a, b := Default(), Default()
	assert.NotZero(t, a.Fingerprint())
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	changed := `
year: 2024
minimum_wage: 1412
inss: {ceiling: 7786, max_contribution: 908.86, brackets: [{ceiling: 1412, rate: 0.075, deduction: 0}]}
late_payment: {due_day: 15, daily_fine_rate: 0.0033, fine_cap: 0.2, monthly_interest_rate: 0.01}
contribution_time: {days_per_year: 365.25, days_per_month: 30.4375}
bpc: {minimum_age: 65, income_fraction: 0.25}
`
	c, err := Parse([]byte(changed))
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestParse_RejectsUnorderedBrackets(t *testing.T) {
	doc := `
year: 2025
minimum_wage: 1518
inss:
  ceiling: 8157.41
  max_contribution: 951.63
  brackets:
    - {ceiling: 2793.88, rate: 0.09, deduction: 22.77}
    - {ceiling: 1518.00, rate: 0.075, deduction: 0}
late_payment: {due_day: 15, daily_fine_rate: 0.0033, fine_cap: 0.2, monthly_interest_rate: 0.01}
contribution_time: {days_per_year: 365.25, days_per_month: 30.4375}
bpc: {minimum_age: 65, income_fraction: 0.25}
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inss.brackets[1].ceiling")
}

func TestParse_RejectsMissingSections(t *testing.T) {
	_, err := Parse([]byte("year: 2024\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "minimum_wage")
	assert.Contains(t, err.Error(), "inss.brackets")
}

func TestParse_RejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("year: [unterminated"))
	assert.Error(t, err)
}
