// Package rank orders scored postings by one of the dashboard sort strategies.
package rank

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/matheuskafuri/jobtrack/internal/match"
)

// Strategy selects the ordering of the dashboard list.
type Strategy string

const (
	Latest Strategy = "latest"
	Score  Strategy = "score"
	Salary Strategy = "salary"
)

// Strategies returns every strategy in the order the TUI cycles through them.
func Strategies() []Strategy {
	return []Strategy{Latest, Score, Salary}
}

// ParseStrategy maps a case-insensitive name to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case Latest:
		return Latest, nil
	case Score:
		return Score, nil
	case Salary:
		return Salary, nil
	}
	return "", fmt.Errorf("unknown sort %q (valid: latest, score, salary)", s)
}

// Next returns the strategy after s in cycle order.
func (s Strategy) Next() Strategy {
	all := Strategies()
	i := slices.Index(all, s)
	return all[(i+1)%len(all)]
}

// Label is the human-readable name shown in the status bar.
func (s Strategy) Label() string {
	switch s {
	case Score:
		return "Match Score"
	case Salary:
		return "Salary"
	default:
		return "Latest"
	}
}

// Sort returns a new slice ordered by strategy. The input is not modified and
// equal elements keep their relative order.
func Sort(scored []match.Scored, strategy Strategy) []match.Scored {
	out := slices.Clone(scored)
	switch strategy {
	case Score:
		slices.SortStableFunc(out, func(a, b match.Scored) int {
			if a.Score != b.Score {
				return b.Score - a.Score
			}
			return a.PostedAge - b.PostedAge
		})
	case Salary:
		values := make(map[int]int64, len(out))
		for _, p := range out {
			values[p.ID] = SalaryValue(p.SalaryRange)
		}
		slices.SortStableFunc(out, func(a, b match.Scored) int {
			va, vb := values[a.ID], values[b.ID]
			switch {
			case va > vb:
				return -1
			case va < vb:
				return 1
			}
			return 0
		})
	default:
		slices.SortStableFunc(out, func(a, b match.Scored) int {
			return a.PostedAge - b.PostedAge
		})
	}
	return out
}

var numbers = regexp.MustCompile(`\d+(\.\d+)?`)

// SalaryValue reduces free-text salary to a comparable number: the largest
// figure in the text, scaled by 100,000 for "LPA" or 1,000 for "k".
func SalaryValue(text string) int64 {
	var top float64
	for _, m := range numbers.FindAllString(text, -1) {
		v, err := strconv.ParseFloat(m, 64)
		if err == nil && v > top {
			top = v
		}
	}
	if top == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "lpa"):
		top *= 100_000
	case strings.Contains(lower, "k"):
		top *= 1_000
	}
	return int64(math.Round(top))
}

var printer = message.NewPrinter(language.English)

// FormatSalary renders a SalaryValue with digit grouping, e.g. "₹1,800,000".
// Zero renders as "n/a".
func FormatSalary(v int64) string {
	if v <= 0 {
		return "n/a"
	}
	return printer.Sprintf("₹%d", v)
}
