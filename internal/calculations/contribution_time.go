package calculations

import (
	"errors"
	"fmt"

	"prev-engine/internal/calc"
	"prev-engine/internal/model"
	"prev-engine/internal/tables"
)

type periodProps struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type contributionTimeProps struct {
	Periods []periodProps `json:"periods"`
}

type ContributionTimeHandler struct{}

func (h *ContributionTimeHandler) Validate(t *tables.Tables, c *model.Calculation) []model.CalculationMessage {
	var props contributionTimeProps
	if msgs := decodeProps(c.Properties, &props); msgs != nil {
		return msgs
	}

	periods, err := parsePeriods(props.Periods)
	if err != nil {
		return inputError(err)
	}

	var msgs []model.CalculationMessage
	for i, p := range periods {
		if p.Days() == 0 {
			msgs = append(msgs, model.Warning("PERIOD_SKIPPED",
				fmt.Sprintf("Período %d ignorado: datas ausentes ou término anterior ao início", i+1)))
		}
	}
	// Overlaps are reported but still counted; contribution time is a plain sum.
	for _, pair := range calc.Overlaps(periods) {
		msgs = append(msgs, model.Warning("OVERLAPPING_PERIODS",
			fmt.Sprintf("Os períodos %d e %d se sobrepõem e foram somados integralmente", pair[0]+1, pair[1]+1)))
	}
	return msgs
}

func (h *ContributionTimeHandler) Apply(t *tables.Tables, c *model.Calculation) (any, []model.CalculationMessage) {
	var props contributionTimeProps
	if msgs := decodeProps(c.Properties, &props); msgs != nil {
		return nil, msgs
	}

	periods, err := parsePeriods(props.Periods)
	if err != nil {
		return nil, inputError(err)
	}

	total := t.ContributionTime.Aggregate(periods)
	out := model.ContributionTimeResult{
		Years:     total.Years,
		Months:    total.Months,
		Days:      total.Days,
		TotalDays: total.TotalDays,
		Periods:   make([]model.PeriodResult, len(periods)),
	}
	for i, p := range periods {
		out.Periods[i] = model.PeriodResult{
			Start: props.Periods[i].Start,
			End:   props.Periods[i].End,
			Days:  p.Days(),
		}
	}
	return out, nil
}

func parsePeriods(in []periodProps) ([]calc.Period, error) {
	periods := make([]calc.Period, len(in))
	for i, pp := range in {
		p, err := calc.ParsePeriod(pp.Start, pp.End)
		var inv *calc.InvalidInputError
		if errors.As(err, &inv) {
			return nil, &calc.InvalidInputError{
				Field:   fmt.Sprintf("periods[%d].%s", i, inv.Field),
				Message: fmt.Sprintf("período %d: %s", i+1, inv.Message),
			}
		}
		if err != nil {
			return nil, err
		}
		periods[i] = p
	}
	return periods, nil
}
