package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeINSS_FirstBracketIsFlatRate(t *testing.T) {
	for _, salary := range []float64{0, 0.01, 500, 1000, 1411.99, 1412.00} {
		res, err := ComputeINSS(salary)
		require.NoError(t, err)
		assert.Equal(t, salary*0.075, res.Discount, "salary %.2f", salary)
		assert.Equal(t, 1, res.Bracket)
	}
}

func TestComputeINSS_Brackets(t *testing.T) {
	tests := []struct {
		salary   float64
		discount float64
		bracket  int
	}{
		{2000, 2000*0.09 - 21.18, 2},
		{2666.68, 2666.68*0.09 - 21.18, 2},
		{3000, 258.82, 3},
		{5000, 5000*0.14 - 181.18, 4},
		{7786.00, 7786.00*0.14 - 181.18, 4},
	}
	for _, tt := range tests {
		res, err := ComputeINSS(tt.salary)
		require.NoError(t, err)
		assert.InDelta(t, tt.discount, res.Discount, 1e-9, "salary %.2f", tt.salary)
		assert.Equal(t, tt.bracket, res.Bracket)
		assert.False(t, res.CapApplied)
	}
}

func TestComputeINSS_FlatCapAboveCeiling(t *testing.T) {
	for _, salary := range []float64{7786.03, 8000, 15000, 1e9} {
		res, err := ComputeINSS(salary)
		require.NoError(t, err)
		assert.Equal(t, 908.85, res.Discount)
		assert.True(t, res.CapApplied)
		assert.Zero(t, res.Bracket)
	}
}

func TestComputeINSS_NetPlusDiscountIsGross(t *testing.T) {
	for _, salary := range []float64{0, 999.99, 1412, 2500, 3999.5, 6000, 7786, 12345.67} {
		res, err := ComputeINSS(salary)
		require.NoError(t, err)
		assert.InDelta(t, salary, res.NetAfterINSS+res.Discount, 1e-9)
	}
}

func TestComputeINSS_ZeroSalaryHasZeroRate(t *testing.T) {
	res, err := ComputeINSS(0)
	require.NoError(t, err)
	assert.Zero(t, res.Discount)
	assert.Zero(t, res.EffectiveRate)
}

func TestComputeINSS_EffectiveRate(t *testing.T) {
	res, err := ComputeINSS(1000)
	require.NoError(t, err)
	assert.InDelta(t, 7.5, res.EffectiveRate, 1e-9)
}

func TestComputeINSS_InvalidSalary(t *testing.T) {
	for _, salary := range []float64{-0.01, -1000, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := ComputeINSS(salary)
		require.Error(t, err)
		assert.True(t, IsInvalidInput(err))

		var inv *InvalidInputError
		require.ErrorAs(t, err, &inv)
		assert.Equal(t, "insira um salário bruto válido", inv.Message)
	}
}

func TestINSSTable_FallsBackToLastBracket(t *testing.T) {
	table := INSSTable{
		Ceiling:         10000,
		MaxContribution: 1000,
		Brackets:        []Bracket{{Ceiling: 1000, Rate: 0.1, Deduction: 0}},
	}
	res, err := table.Compute(2000)
	require.NoError(t, err)
	assert.InDelta(t, 200, res.Discount, 1e-9)
	assert.Equal(t, 1, res.Bracket)
}

func TestINSSTable_EmptyIsRejected(t *testing.T) {
	_, err := INSSTable{Ceiling: 1}.Compute(1)
	assert.True(t, IsInvalidInput(err))
}

func TestComputeINSS_Idempotent(t *testing.T) {
	a, err := ComputeINSS(4321.09)
	require.NoError(t, err)
	b, err := ComputeINSS(4321.09)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
