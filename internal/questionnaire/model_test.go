package questionnaire

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prev-engine/internal/calc"
)

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		m = next.(Model)
	}
	return m
}

func newModel() Model {
	return New(calc.NewQuestionnaire(calc.DefaultBPCCriteria, calc.DefaultMinimumWage))
}

func TestModel_EligiblePath(t *testing.T) {
	m := press(t, newModel(), "s", "s", "s", "n")

	out, done := m.Questionnaire().Outcome()
	require.True(t, done)
	assert.Equal(t, calc.StatusEligible, out.Status)
	assert.Contains(t, m.View(), "ELEGÍVEL")
	assert.Contains(t, m.View(), out.Message)
}

func TestModel_AnswersIgnoredAfterOutcome(t *testing.T) {
	m := press(t, newModel(), "n", "n")
	out, done := m.Questionnaire().Outcome()
	require.True(t, done)
	assert.Equal(t, calc.StatusIneligible, out.Status)

	m = press(t, m, "s")
	assert.Equal(t, []calc.Question{calc.QuestionAge, calc.QuestionDisability}, m.Questionnaire().Path())
}

func TestModel_ResetAndView(t *testing.T) {
	m := press(t, newModel(), "s", "r")
	assert.Equal(t, calc.QuestionAge, m.Questionnaire().Step())
	assert.Contains(t, m.View(), "Pergunta 1 de 5")
	assert.Contains(t, m.View(), "65 anos")

	m = press(t, m, "y")
	assert.Contains(t, m.View(), "Pergunta 3 de 5")
}

func TestModel_Quit(t *testing.T) {
	m := newModel()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.(Model).View())
}

func TestModel_IgnoresOtherMessages(t *testing.T) {
	m := newModel()
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Nil(t, cmd)
	assert.Equal(t, calc.QuestionAge, next.(Model).Questionnaire().Step())
}
