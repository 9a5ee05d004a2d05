package calculations

import (
	"fmt"

	"prev-engine/internal/calc"
	"prev-engine/internal/model"
	"prev-engine/internal/tables"
)

type latePaymentProps struct {
	Competence  string  `json:"competence"`
	Value       float64 `json:"value"`
	PaymentDate string  `json:"payment_date"`
}

type LatePaymentHandler struct{}

func (h *LatePaymentHandler) Validate(t *tables.Tables, c *model.Calculation) []model.CalculationMessage {
	var props latePaymentProps
	if msgs := decodeProps(c.Properties, &props); msgs != nil {
		return msgs
	}
	if _, err := props.input(); err != nil {
		return inputError(err)
	}
	return nil
}

func (h *LatePaymentHandler) Apply(t *tables.Tables, c *model.Calculation) (any, []model.CalculationMessage) {
	var props latePaymentProps
	if msgs := decodeProps(c.Properties, &props); msgs != nil {
		return nil, msgs
	}
	in, err := props.input()
	if err != nil {
		return nil, inputError(err)
	}

	res, err := t.LatePayment.Compute(in)
	if err != nil {
		return nil, inputError(err)
	}

	var msgs []model.CalculationMessage
	if res.InterestAmount > 0 {
		msgs = append(msgs, model.Warning("SIMULATED_INTEREST",
			fmt.Sprintf("Juros simulados a %s ao mês; o valor oficial é corrigido pela SELIC", calc.FormatPercent(t.LatePayment.MonthlyInterestRate*100))))
	}

	return model.LatePaymentResult{
		Competence:     in.Competence.String(),
		Value:          in.Value,
		DueDate:        res.DueDate.Format(calc.DateLayout),
		PaymentDate:    in.PaymentDate.Format(calc.DateLayout),
		Late:           res.Late,
		DaysLate:       res.DaysLate,
		MonthsLate:     res.MonthsLate,
		FinePercent:    res.FinePercent,
		FineAmount:     res.FineAmount,
		InterestAmount: res.InterestAmount,
		TotalDue:       res.TotalDue,
	}, msgs
}

func (p latePaymentProps) input() (calc.LatePaymentInput, error) {
	var in calc.LatePaymentInput
	if p.Competence == "" {
		return in, &calc.InvalidInputError{Field: "competence", Message: "informe a competência da contribuição"}
	}
	if p.PaymentDate == "" {
		return in, &calc.InvalidInputError{Field: "payment_date", Message: "informe a data de pagamento"}
	}
	comp, err := calc.ParseCompetence(p.Competence)
	if err != nil {
		return in, err
	}
	paid, err := calc.ParseDate("payment_date", p.PaymentDate)
	if err != nil {
		return in, err
	}
	in.Competence = comp
	in.Value = p.Value
	in.PaymentDate = paid
	return in, nil
}
