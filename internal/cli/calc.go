package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"prev-engine/internal/calc"
)

func (a *app) inssCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "inss <salario-bruto>",
		Short:   "Compute the employee INSS withholding for a gross salary",
		Example: "  prev-engine inss 3500.00",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTables()
			if err != nil {
				return err
			}
			salary, err := parseMoney(args[0])
			if err != nil {
				return &calc.InvalidInputError{Field: "gross_salary", Message: "insira um salário bruto válido"}
			}
			res, err := t.INSS.Compute(salary)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Salário bruto:   %s\n", calc.FormatBRL(res.GrossSalary))
			fmt.Fprintf(out, "Desconto INSS:   %s\n", calc.FormatBRL(res.Discount))
			fmt.Fprintf(out, "Salário líquido: %s\n", calc.FormatBRL(res.NetAfterINSS))
			fmt.Fprintf(out, "Alíquota efetiva: %s\n", calc.FormatPercent(res.EffectiveRate))
			if res.CapApplied {
				fmt.Fprintf(out, "Salário acima do teto (%s): desconto limitado.\n", calc.FormatBRL(t.INSS.Ceiling))
			}
			return nil
		},
	}
}

func (a *app) tempoCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "tempo <inicio:fim>...",
		Short:   "Sum contribution periods into years, months and days",
		Example: "  prev-engine tempo 2010-03-01:2015-06-30 2016-01-01:2023-12-31",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.loadTables()
			if err != nil {
				return err
			}

			periods := make([]calc.Period, 0, len(args))
			for _, arg := range args {
				start, end, ok := strings.Cut(arg, ":")
				if !ok {
					return &calc.InvalidInputError{Field: "periods", Message: fmt.Sprintf("período inválido %q (use inicio:fim)", arg)}
				}
				p, err := calc.ParsePeriod(start, end)
				if err != nil {
					return err
				}
				periods = append(periods, p)
			}

			total := t.ContributionTime.Aggregate(periods)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Tempo de contribuição: %d anos, %d meses e %d dias (%d dias)\n",
				total.Years, total.Months, total.Days, total.TotalDays)
			if pairs := calc.Overlaps(periods); len(pairs) > 0 {
				fmt.Fprintf(out, "Atenção: %d par(es) de períodos concomitantes foram somados integralmente.\n", len(pairs))
			}
			return nil
		},
	}
}

func (a *app) atrasoCmd() *cobra.Command {
	var competence, payment, value string

	cmd := &cobra.Command{
		Use:     "atraso",
		Short:   "Simulate fine and interest on a late contribution",
		Example: "  prev-engine atraso --competencia 2024-01 --valor 282.40 --pagamento 2024-05-25",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := a.loadTables()
			if err != nil {
				return err
			}
			comp, err := calc.ParseCompetence(competence)
			if err != nil {
				return err
			}
			paid, err := calc.ParseDate("payment_date", payment)
			if err != nil {
				return err
			}
			v, err := parseMoney(value)
			if err != nil {
				return &calc.InvalidInputError{Field: "value", Message: "informe um valor de contribuição maior que zero"}
			}

			res, err := t.LatePayment.Compute(calc.LatePaymentInput{Competence: comp, Value: v, PaymentDate: paid})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Vencimento:  %s\n", res.DueDate.Format("02/01/2006"))
			if !res.Late {
				fmt.Fprintf(out, "Pagamento em dia. Total: %s\n", calc.FormatBRL(res.TotalDue))
				return nil
			}
			fmt.Fprintf(out, "Dias de atraso: %d (%d meses)\n", res.DaysLate, res.MonthsLate)
			fmt.Fprintf(out, "Multa (%s):  %s\n", calc.FormatPercent(res.FinePercent*100), calc.FormatBRL(res.FineAmount))
			fmt.Fprintf(out, "Juros (simulado): %s\n", calc.FormatBRL(res.InterestAmount))
			fmt.Fprintf(out, "Total a pagar: %s\n", calc.FormatBRL(res.TotalDue))
			return nil
		},
	}

	cmd.Flags().StringVar(&competence, "competencia", "", "competence month (YYYY-MM)")
	cmd.Flags().StringVar(&value, "valor", "", "contribution value")
	cmd.Flags().StringVar(&payment, "pagamento", "", "payment date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("competencia")
	_ = cmd.MarkFlagRequired("valor")
	_ = cmd.MarkFlagRequired("pagamento")
	return cmd
}

// parseMoney accepts "1234.56" and the Brazilian "1.234,56".
func parseMoney(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	return strconv.ParseFloat(s, 64)
}
