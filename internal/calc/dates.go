package calc

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	DateLayout       = "2006-01-02"
	CompetenceLayout = "2006-01"

	day = 24 * time.Hour
)

// ParseDate parses a YYYY-MM-DD string as UTC midnight so the calendar date
// never shifts with the local timezone.
func ParseDate(field, s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, invalid(field, fmt.Sprintf("data inválida: %q", s))
	}
	return t, nil
}

// Competence is the contribution month a payment refers to.
type Competence struct {
	Year  int
	Month time.Month
}

func ParseCompetence(s string) (Competence, error) {
	t, err := time.ParseInLocation(CompetenceLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return Competence{}, invalid("competence", fmt.Sprintf("competência inválida: %q (use AAAA-MM)", s))
	}
	return Competence{Year: t.Year(), Month: t.Month()}, nil
}

func (c Competence) IsZero() bool {
	return c.Year == 0 && c.Month == 0
}

func (c Competence) String() string {
	return fmt.Sprintf("%04d-%02d", c.Year, int(c.Month))
}

// daysBetween returns the number of days from start to end, rounded up.
func daysBetween(start, end time.Time) float64 {
	return math.Ceil(float64(end.Sub(start)) / float64(day))
}
