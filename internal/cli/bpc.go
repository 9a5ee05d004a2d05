package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"prev-engine/internal/calc"
	"prev-engine/internal/questionnaire"
)

func (a *app) bpcCmd() *cobra.Command {
	var answers string

	cmd := &cobra.Command{
		Use:   "bpc",
		Short: "BPC/LOAS eligibility questionnaire",
		Long: `Runs the BPC/LOAS eligibility questionnaire interactively. With --respostas the
answers are given up front, one per question in order, using s (sim), n (não) or -
for a question the path skips.`,
		Example: "  prev-engine bpc\n  prev-engine bpc --respostas s,-,s,s,n",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := a.loadTables()
			if err != nil {
				return err
			}

			var out calc.Outcome
			if answers == "" {
				q, err := questionnaire.Run(cmd.Context(), calc.NewQuestionnaire(t.BPC, t.MinimumWage), cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				var done bool
				if out, done = q.Outcome(); !done {
					return nil
				}
			} else {
				parsed, err := parseAnswers(answers)
				if err != nil {
					return err
				}
				if out, _, err = calc.EvaluateBPC(t.BPC, t.MinimumWage, parsed); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Resultado: %s\n%s\n%s\n", out.Status, out.Message, out.Details)
			return nil
		},
	}

	cmd.Flags().StringVar(&answers, "respostas", "", "comma separated answers (s, n or -)")
	return cmd
}

func parseAnswers(s string) ([]*bool, error) {
	fields := strings.Split(s, ",")
	out := make([]*bool, len(fields))
	for i, f := range fields {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "s", "sim", "y":
			yes := true
			out[i] = &yes
		case "n", "nao", "não":
			no := false
			out[i] = &no
		case "-", "":
		default:
			return nil, &calc.InvalidInputError{Field: "answers", Message: fmt.Sprintf("resposta inválida %q na pergunta %d", f, i+1)}
		}
	}
	return out, nil
}
