package calculations

import (
	"prev-engine/internal/calc"
	"prev-engine/internal/model"
	"prev-engine/internal/tables"
)

type bpcProps struct {
	// Answers are indexed by question; null for questions the path skips.
	Answers []*bool `json:"answers"`
}

type BPCEligibilityHandler struct{}

func (h *BPCEligibilityHandler) Validate(t *tables.Tables, c *model.Calculation) []model.CalculationMessage {
	var props bpcProps
	if msgs := decodeProps(c.Properties, &props); msgs != nil {
		return msgs
	}
	if len(props.Answers) > 5 {
		return []model.CalculationMessage{model.Critical(CodeInvalidInput, "o questionário tem apenas 5 perguntas")}
	}
	return nil
}

func (h *BPCEligibilityHandler) Apply(t *tables.Tables, c *model.Calculation) (any, []model.CalculationMessage) {
	var props bpcProps
	if msgs := decodeProps(c.Properties, &props); msgs != nil {
		return nil, msgs
	}

	out, path, err := calc.EvaluateBPC(t.BPC, t.MinimumWage, props.Answers)
	if err != nil {
		return nil, inputError(err)
	}

	var msgs []model.CalculationMessage
	if out.Status == calc.StatusReview {
		msgs = append(msgs, model.Warning("PENDING_REQUIREMENT", out.Message))
	}

	steps := make([]int, len(path))
	for i, q := range path {
		steps[i] = int(q)
	}
	return model.BPCEligibilityResult{
		Status:  string(out.Status),
		Message: out.Message,
		Details: out.Details,
		Path:    steps,
	}, msgs
}
