package calculations

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prev-engine/internal/model"
	"prev-engine/internal/tables"
)

func calculation(typ, props string) *model.Calculation {
	return &model.Calculation{
		CalculationID:   "c1",
		CalculationType: typ,
		Properties:      json.RawMessage(props),
	}
}

func run(t *testing.T, typ, props string) (any, []model.CalculationMessage) {
	t.Helper()
	h, ok := Get(typ)
	require.True(t, ok, "handler %s not registered", typ)

	tbl := tables.Default()
	c := calculation(typ, props)
	msgs := h.Validate(tbl, c)
	if model.HasCritical(msgs) {
		return nil, msgs
	}
	res, applyMsgs := h.Apply(tbl, c)
	return res, append(msgs, applyMsgs...)
}

func codes(msgs []model.CalculationMessage) []string {
	var out []string
	for _, m := range msgs {
		out = append(out, m.Code)
	}
	return out
}

func TestTypes(t *testing.T) {
	assert.Equal(t, []string{"bpc_eligibility", "contribution_time", "inss", "late_payment"}, Types())
	_, ok := Get("revisao_vida_toda")
	assert.False(t, ok)
}

func TestINSS(t *testing.T) {
	res, msgs := run(t, model.TypeINSS, `{"gross_salary": 3000}`)
	require.Empty(t, msgs)
	r := res.(model.INSSResult)
	assert.InDelta(t, 258.82, r.Discount, 1e-9)
	assert.InDelta(t, 2741.18, r.NetAfterINSS, 1e-9)
	assert.Equal(t, 3, r.Bracket)
}

func TestINSS_CapWarning(t *testing.T) {
	res, msgs := run(t, model.TypeINSS, `{"gross_salary": 20000}`)
	assert.Equal(t, []string{"SALARY_ABOVE_CEILING"}, codes(msgs))
	assert.Equal(t, 908.85, res.(model.INSSResult).Discount)
}

func TestINSS_Invalid(t *testing.T) {
	tests := map[string]string{
		"missing":  `{}`,
		"negative": `{"gross_salary": -10}`,
	}
	for name, props := range tests {
		t.Run(name, func(t *testing.T) {
			res, msgs := run(t, model.TypeINSS, props)
			assert.Nil(t, res)
			require.Len(t, msgs, 1)
			assert.Equal(t, model.LevelCritical, msgs[0].Level)
			assert.Equal(t, CodeInvalidInput, msgs[0].Code)
			assert.Equal(t, "insira um salário bruto válido", msgs[0].Message)
		})
	}
}

func TestInvalidProperties(t *testing.T) {
	for _, typ := range Types() {
		_, msgs := run(t, typ, `{"broken"`)
		assert.Equal(t, []string{CodeInvalidProperties}, codes(msgs), typ)

		h, _ := Get(typ)
		msgs = h.Validate(tables.Default(), &model.Calculation{CalculationType: typ})
		assert.Equal(t, []string{CodeInvalidProperties}, codes(msgs), typ)
	}
}

func TestContributionTime(t *testing.T) {
	res, msgs := run(t, model.TypeContributionTime, `{"periods": [
		{"start": "2020-01-01", "end": "2020-12-31"},
		{"start": "2021-01-01", "end": "2021-12-31"}
	]}`)
	require.Empty(t, msgs)
	r := res.(model.ContributionTimeResult)
	assert.Equal(t, 2, r.Years)
	assert.Equal(t, 0, r.Months)
	assert.Equal(t, 731, r.TotalDays)
	assert.Equal(t, []model.PeriodResult{
		{Start: "2020-01-01", End: "2020-12-31", Days: 366},
		{Start: "2021-01-01", End: "2021-12-31", Days: 365},
	}, r.Periods)
}

func TestContributionTime_WarnsButSums(t *testing.T) {
	res, msgs := run(t, model.TypeContributionTime, `{"periods": [
		{"start": "2020-01-01", "end": "2020-01-10"},
		{"start": "2020-01-05", "end": "2020-01-14"},
		{"start": "2020-02-01", "end": ""},
		{"start": "2020-03-10", "end": "2020-03-01"}
	]}`)
	assert.Equal(t, []string{"PERIOD_SKIPPED", "PERIOD_SKIPPED", "OVERLAPPING_PERIODS"}, codes(msgs))
	assert.Equal(t, 20, res.(model.ContributionTimeResult).TotalDays)
}

func TestContributionTime_BadDate(t *testing.T) {
	_, msgs := run(t, model.TypeContributionTime, `{"periods": [{"start": "2020-01-01", "end": "2020-02-30"}]}`)
	require.Len(t, msgs, 1)
	assert.Equal(t, CodeInvalidInput, msgs[0].Code)
	assert.Contains(t, msgs[0].Message, "período 1")
}

func TestLatePayment(t *testing.T) {
	res, msgs := run(t, model.TypeLatePayment, `{"competence": "2024-01", "value": 1000, "payment_date": "2024-05-25"}`)
	assert.Equal(t, []string{"SIMULATED_INTEREST"}, codes(msgs))
	r := res.(model.LatePaymentResult)
	assert.Equal(t, "2024-02-15", r.DueDate)
	assert.Equal(t, "2024-01", r.Competence)
	assert.Equal(t, 100, r.DaysLate)
	assert.Equal(t, 0.20, r.FinePercent)
	assert.InDelta(t, 1230, r.TotalDue, 1e-9)
}

func TestLatePayment_OnTime(t *testing.T) {
	res, msgs := run(t, model.TypeLatePayment, `{"competence": "2024-01", "value": 80.5, "payment_date": "2024-02-15"}`)
	assert.Empty(t, msgs)
	r := res.(model.LatePaymentResult)
	assert.False(t, r.Late)
	assert.Equal(t, 80.5, r.TotalDue)
}

func TestLatePayment_Invalid(t *testing.T) {
	tests := map[string]string{
		"zero value":      `{"competence": "2024-01", "value": 0, "payment_date": "2024-03-01"}`,
		"no competence":   `{"value": 10, "payment_date": "2024-03-01"}`,
		"bad competence":  `{"competence": "janeiro", "value": 10, "payment_date": "2024-03-01"}`,
		"no payment date": `{"competence": "2024-01", "value": 10}`,
		"bad date":        `{"competence": "2024-01", "value": 10, "payment_date": "01/03/2024"}`,
	}
	for name, props := range tests {
		t.Run(name, func(t *testing.T) {
			res, msgs := run(t, model.TypeLatePayment, props)
			assert.Nil(t, res)
			assert.Equal(t, []string{CodeInvalidInput}, codes(msgs))
		})
	}
}

func TestBPCEligibility(t *testing.T) {
	res, msgs := run(t, model.TypeBPCEligibility, `{"answers": [true, null, true, true, false]}`)
	assert.Empty(t, msgs)
	r := res.(model.BPCEligibilityResult)
	assert.Equal(t, "elegivel", r.Status)
	assert.Equal(t, []int{1, 3, 4, 5}, r.Path)

	res, _ = run(t, model.TypeBPCEligibility, `{"answers": [false, false]}`)
	r = res.(model.BPCEligibilityResult)
	assert.Equal(t, "inelegivel", r.Status)
	assert.Equal(t, []int{1, 2}, r.Path)
}

func TestBPCEligibility_PendingCadUnico(t *testing.T) {
	res, msgs := run(t, model.TypeBPCEligibility, `{"answers": [true, null, true, false]}`)
	assert.Equal(t, []string{"PENDING_REQUIREMENT"}, codes(msgs))
	assert.Equal(t, "analise", res.(model.BPCEligibilityResult).Status)
}

func TestBPCEligibility_Invalid(t *testing.T) {
	_, msgs := run(t, model.TypeBPCEligibility, `{"answers": [true]}`)
	assert.Equal(t, []string{CodeInvalidInput}, codes(msgs))

	_, msgs = run(t, model.TypeBPCEligibility, `{"answers": [true, true, true, true, true, true]}`)
	assert.Equal(t, []string{CodeInvalidInput}, codes(msgs))
}
