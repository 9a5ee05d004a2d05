package calculations

import (
	"fmt"

	"prev-engine/internal/calc"
	"prev-engine/internal/model"
	"prev-engine/internal/tables"
)

type inssProps struct {
	GrossSalary *float64 `json:"gross_salary"`
}

type INSSHandler struct{}

func (h *INSSHandler) Validate(t *tables.Tables, c *model.Calculation) []model.CalculationMessage {
	var props inssProps
	if msgs := decodeProps(c.Properties, &props); msgs != nil {
		return msgs
	}
	if props.GrossSalary == nil {
		return []model.CalculationMessage{model.Critical(CodeInvalidInput, "insira um salário bruto válido")}
	}
	return nil
}

func (h *INSSHandler) Apply(t *tables.Tables, c *model.Calculation) (any, []model.CalculationMessage) {
	var props inssProps
	if msgs := decodeProps(c.Properties, &props); msgs != nil {
		return nil, msgs
	}

	res, err := t.INSS.Compute(*props.GrossSalary)
	if err != nil {
		return nil, inputError(err)
	}

	var msgs []model.CalculationMessage
	if res.CapApplied {
		msgs = append(msgs, model.Warning("SALARY_ABOVE_CEILING",
			fmt.Sprintf("Salário acima do teto de %s; desconto limitado a %s", calc.FormatBRL(t.INSS.Ceiling), calc.FormatBRL(t.INSS.MaxContribution))))
	}

	return model.INSSResult{
		GrossSalary:   res.GrossSalary,
		Discount:      res.Discount,
		NetAfterINSS:  res.NetAfterINSS,
		EffectiveRate: res.EffectiveRate,
		Bracket:       res.Bracket,
		CapApplied:    res.CapApplied,
	}, msgs
}
