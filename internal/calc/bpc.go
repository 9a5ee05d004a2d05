package calc

import "fmt"

// Question identifies a step of the BPC/LOAS questionnaire.
type Question int

const (
	QuestionAge Question = iota + 1
	QuestionDisability
	QuestionIncome
	QuestionCadUnico
	QuestionOtherBenefit
)

const questionCount = 5

type Status string

const (
	StatusEligible   Status = "elegivel"
	StatusIneligible Status = "inelegivel"
	StatusReview     Status = "analise"
)

type Outcome struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Details string `json:"details"`
}

// BPCCriteria are the statutory thresholds quoted in the questions.
type BPCCriteria struct {
	MinimumAge     int     `yaml:"minimum_age" json:"minimum_age"`
	IncomeFraction float64 `yaml:"income_fraction" json:"income_fraction"`
}

var DefaultBPCCriteria = BPCCriteria{MinimumAge: 65, IncomeFraction: 0.25}

// DefaultMinimumWage is the 2024 national minimum wage.
const DefaultMinimumWage = 1412.00

// IncomeLimit is the per capita family income ceiling for a minimum wage.
func (c BPCCriteria) IncomeLimit(minimumWage float64) float64 {
	return minimumWage * c.IncomeFraction
}

// Questionnaire is the eligibility state machine. It is a value: Answer and
// Reset return a new Questionnaire and never modify the receiver.
type Questionnaire struct {
	criteria    BPCCriteria
	minimumWage float64

	step     Question
	answered [questionCount]bool
	answers  [questionCount]bool
	path     []Question
	outcome  *Outcome
}

func NewQuestionnaire(criteria BPCCriteria, minimumWage float64) Questionnaire {
	return Questionnaire{criteria: criteria, minimumWage: minimumWage, step: QuestionAge}
}

// Step is the pending question, or 0 once an outcome is reached.
func (q Questionnaire) Step() Question {
	if q.outcome != nil {
		return 0
	}
	return q.step
}

func (q Questionnaire) Done() bool { return q.outcome != nil }

func (q Questionnaire) Outcome() (Outcome, bool) {
	if q.outcome == nil {
		return Outcome{}, false
	}
	return *q.outcome, true
}

// Path lists the questions answered so far, in order.
func (q Questionnaire) Path() []Question {
	return append([]Question(nil), q.path...)
}

// Answer returns the recorded answer to question, if it was asked.
func (q Questionnaire) Answer(question Question) (yes, ok bool) {
	if question < QuestionAge || question > QuestionOtherBenefit {
		return false, false
	}
	return q.answers[question-1], q.answered[question-1]
}

func (q Questionnaire) Reset() Questionnaire {
	return NewQuestionnaire(q.criteria, q.minimumWage)
}

// Respond answers the pending question and advances the machine.
func (q Questionnaire) Respond(yes bool) (Questionnaire, error) {
	if q.outcome != nil {
		return q, invalid("answers", "o questionário já foi concluído")
	}

	next := q
	next.path = append(q.Path(), q.step)
	next.answered[q.step-1] = true
	next.answers[q.step-1] = yes

	switch q.step {
	case QuestionAge:
		if yes {
			next.step = QuestionIncome
		} else {
			next.step = QuestionDisability
		}
	case QuestionDisability:
		if yes {
			next.step = QuestionIncome
		} else {
			next.outcome = &Outcome{
				Status:  StatusIneligible,
				Message: "Requisito de idade ou deficiência não atendido",
				Details: fmt.Sprintf("O BPC/LOAS exige idade mínima de %d anos ou deficiência de longo prazo.", q.criteria.MinimumAge),
			}
		}
	case QuestionIncome:
		if yes {
			next.step = QuestionCadUnico
		} else {
			next.outcome = &Outcome{
				Status:  StatusIneligible,
				Message: "Renda per capita acima do limite",
				Details: fmt.Sprintf("A renda familiar por pessoa deve ser igual ou inferior a %s.", FormatBRL(q.incomeLimit())),
			}
		}
	case QuestionCadUnico:
		if yes {
			next.step = QuestionOtherBenefit
		} else {
			next.outcome = &Outcome{
				Status:  StatusReview,
				Message: "Inscrição no CadÚnico pendente",
				Details: "A inscrição atualizada no CadÚnico é obrigatória. Regularize o cadastro antes de requerer o benefício.",
			}
		}
	case QuestionOtherBenefit:
		if yes {
			next.outcome = &Outcome{
				Status:  StatusIneligible,
				Message: "Benefício inacumulável",
				Details: "O BPC não pode ser acumulado com outro benefício da seguridade social, salvo assistência médica e pensão especial de natureza indenizatória.",
			}
		} else {
			next.outcome = &Outcome{
				Status:  StatusEligible,
				Message: "Requisitos preenchidos",
				Details: "Todos os critérios foram atendidos. Reúna a documentação e faça o requerimento junto ao INSS.",
			}
		}
	}
	return next, nil
}

// Prompt is the text of the pending question.
func (q Questionnaire) Prompt() string {
	switch q.Step() {
	case QuestionAge:
		return fmt.Sprintf("O requerente tem %d anos ou mais?", q.criteria.MinimumAge)
	case QuestionDisability:
		return "O requerente possui deficiência de longo prazo que impeça sua participação plena na sociedade?"
	case QuestionIncome:
		return fmt.Sprintf("A renda familiar per capita é igual ou inferior a %s?", FormatBRL(q.incomeLimit()))
	case QuestionCadUnico:
		return "A família está inscrita no Cadastro Único (CadÚnico)?"
	case QuestionOtherBenefit:
		return "O requerente já recebe outro benefício inacumulável da seguridade social?"
	}
	return ""
}

func (q Questionnaire) incomeLimit() float64 {
	return q.criteria.IncomeLimit(q.minimumWage)
}

// EvaluateBPC runs the questionnaire over answers indexed by question (answers[0]
// is question 1). Nil entries are allowed for questions the path skips.
func EvaluateBPC(criteria BPCCriteria, minimumWage float64, answers []*bool) (Outcome, []Question, error) {
	q := NewQuestionnaire(criteria, minimumWage)
	for !q.Done() {
		i := int(q.Step()) - 1
		if i >= len(answers) || answers[i] == nil {
			return Outcome{}, nil, invalid("answers", fmt.Sprintf("responda à pergunta %d", i+1))
		}
		var err error
		if q, err = q.Respond(*answers[i]); err != nil {
			return Outcome{}, nil, err
		}
	}
	out, _ := q.Outcome()
	return out, q.Path(), nil
}
