package calc

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders a money value the way it is shown to users, e.g. "R$ 1.412,00".
func FormatBRL(v float64) string {
	return brPrinter.Sprintf("R$ %.2f", v)
}

// FormatPercent renders a percentage value with two decimals, e.g. "7,50%".
func FormatPercent(v float64) string {
	return brPrinter.Sprintf("%.2f%%", v)
}
