package questionnaire

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"prev-engine/internal/calc"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	stepStyle   = lipgloss.NewStyle().Faint(true)
	promptStyle = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	statusStyles = map[calc.Status]lipgloss.Style{
		calc.StatusEligible:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		calc.StatusIneligible: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		calc.StatusReview:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
	}

	statusLabels = map[calc.Status]string{
		calc.StatusEligible:   "ELEGÍVEL",
		calc.StatusIneligible: "INELEGÍVEL",
		calc.StatusReview:     "EM ANÁLISE",
	}
)

// Model is the bubbletea model for the BPC/LOAS questionnaire.
type Model struct {
	q        calc.Questionnaire
	quitting bool
}

func New(q calc.Questionnaire) Model {
	return Model{q: q}
}

func (m Model) Questionnaire() calc.Questionnaire { return m.q }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "r":
		m.q = m.q.Reset()
	case "s", "y":
		m.respond(true)
	case "n":
		m.respond(false)
	}
	return m, nil
}

func (m *Model) respond(yes bool) {
	if m.q.Done() {
		return
	}
	if next, err := m.q.Respond(yes); err == nil {
		m.q = next
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("BPC/LOAS: verificação de elegibilidade"))
	b.WriteString("\n\n")

	if out, done := m.q.Outcome(); done {
		b.WriteString(statusStyles[out.Status].Render(statusLabels[out.Status]))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render(out.Message))
		b.WriteString("\n")
		b.WriteString(out.Details)
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("[r] recomeçar  [q] sair"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(stepStyle.Render(fmt.Sprintf("Pergunta %d de 5", int(m.q.Step()))))
	b.WriteString("\n")
	b.WriteString(promptStyle.Render(m.q.Prompt()))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("[s] sim  [n] não  [r] recomeçar  [q] sair"))
	b.WriteString("\n")
	return b.String()
}

// Run drives the questionnaire interactively and returns its final state.
func Run(ctx context.Context, q calc.Questionnaire, in io.Reader, out io.Writer) (calc.Questionnaire, error) {
	p := tea.NewProgram(New(q),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return q, fmt.Errorf("questionnaire: %w", err)
	}
	return final.(Model).q, nil
}
