package calc

import (
	"math"
	"time"
)

// Period is one contribution interval. A zero Start or End means the date was
// not provided.
type Period struct {
	Start time.Time
	End   time.Time
}

// ParsePeriod parses both ends of a period. Empty strings are allowed and
// leave the corresponding end unset.
func ParsePeriod(start, end string) (Period, error) {
	var p Period
	var err error
	if start != "" {
		if p.Start, err = ParseDate("start", start); err != nil {
			return Period{}, err
		}
	}
	if end != "" {
		if p.End, err = ParseDate("end", end); err != nil {
			return Period{}, err
		}
	}
	return p, nil
}

// Days is the inclusive day count of the period, or 0 when either end is
// missing or the period is inverted.
func (p Period) Days() int {
	if p.Start.IsZero() || p.End.IsZero() || p.End.Before(p.Start) {
		return 0
	}
	return int(daysBetween(p.Start, p.End)) + 1
}

// ContributionRules sets the calendar approximations used to split a day total.
type ContributionRules struct {
	DaysPerYear  float64 `yaml:"days_per_year" json:"days_per_year"`
	DaysPerMonth float64 `yaml:"days_per_month" json:"days_per_month"`
}

var DefaultContributionRules = ContributionRules{
	DaysPerYear:  365.25,
	DaysPerMonth: 30.4375,
}

type ContributionTime struct {
	Years     int `json:"years"`
	Months    int `json:"months"`
	Days      int `json:"days"`
	TotalDays int `json:"total_days"`
}

// AggregateContributions sums periods with the default rules.
func AggregateContributions(periods []Period) ContributionTime {
	return DefaultContributionRules.Aggregate(periods)
}

// Aggregate sums the inclusive day count of every period and splits the total
// into years, months and days. Overlapping periods are counted independently.
func (r ContributionRules) Aggregate(periods []Period) ContributionTime {
	total := 0
	for _, p := range periods {
		total += p.Days()
	}
	return r.Split(total)
}

func (r ContributionRules) Split(totalDays int) ContributionTime {
	if totalDays <= 0 || r.DaysPerYear <= 0 || r.DaysPerMonth <= 0 {
		return ContributionTime{}
	}
	t := float64(totalDays)
	rem := math.Mod(t, r.DaysPerYear)
	return ContributionTime{
		Years:     int(math.Floor(t / r.DaysPerYear)),
		Months:    int(math.Floor(rem / r.DaysPerMonth)),
		Days:      int(math.Round(math.Mod(rem, r.DaysPerMonth))),
		TotalDays: totalDays,
	}
}

// Overlaps returns the index pairs of complete periods that share at least one day.
func Overlaps(periods []Period) [][2]int {
	var pairs [][2]int
	for i := range periods {
		if periods[i].Days() == 0 {
			continue
		}
		for j := i + 1; j < len(periods); j++ {
			if periods[j].Days() == 0 {
				continue
			}
			if !periods[i].Start.After(periods[j].End) && !periods[j].Start.After(periods[i].End) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}
