package calculations

import (
	"sort"

	"prev-engine/internal/model"
)

var registry = map[string]CalculationHandler{
	model.TypeINSS:             &INSSHandler{},
	model.TypeContributionTime: &ContributionTimeHandler{},
	model.TypeLatePayment:      &LatePaymentHandler{},
	model.TypeBPCEligibility:   &BPCEligibilityHandler{},
}

func Get(name string) (CalculationHandler, bool) {
	h, ok := registry[name]
	return h, ok
}

// Types lists the registered calculation types in sorted order.
func Types() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
