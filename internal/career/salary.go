package career

import (
	"regexp"
	"strconv"
	"strings"
)

// SalaryLevel is the closed set of salary categories a career can carry.
type SalaryLevel string

const (
	SalaryLow    SalaryLevel = "low"
	SalaryMedium SalaryLevel = "medium"
	SalaryHigh   SalaryLevel = "high"
)

// Bracket thresholds in USD per year.
const (
	salaryMediumFloor = 60000
	salaryHighFloor   = 100000
)

var (
	// Matches "$45,000", "90k", "100000", "45". Magnitudes below 1000 are
	// read as thousands, the usual shorthand in model output ("90" == 90k).
	salaryAmountRe = regexp.MustCompile(`(?i)\$?\s*(\d{1,3}(?:,\d{3})+|\d+(?:\.\d+)?)\s*(k)?`)

	salaryLowRe    = regexp.MustCompile(`(?i)\b(low|entry|junior|starting|poor|minimal|below|under)\b`)
	salaryHighRe   = regexp.MustCompile(`(?i)\b(high|senior|lucrative|executive|excellent|premium|above|over|top)\b`)
	salaryMediumRe = regexp.MustCompile(`(?i)\b(medium|mid|middle|moderate|average|fair|decent|competitive)\b`)
)

// StandardizeSalary maps arbitrary salary text to a SalaryLevel. It never
// fails: ambiguous or empty input yields SalaryMedium. The mapping is a pure
// function of the input text.
//
// Numeric magnitudes win over keywords. A range uses its lower bound when both
// ends fall in the same bracket, otherwise the midpoint.
func StandardizeSalary(raw string) SalaryLevel {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return SalaryMedium
	}

	if amounts := extractAmounts(text); len(amounts) > 0 {
		return bracketFor(amounts)
	}

	switch {
	case salaryLowRe.MatchString(text):
		return SalaryLow
	case salaryHighRe.MatchString(text):
		return SalaryHigh
	case salaryMediumRe.MatchString(text):
		return SalaryMedium
	}

	return SalaryMedium
}

func extractAmounts(text string) []float64 {
	matches := salaryAmountRe.FindAllStringSubmatch(text, -1)
	amounts := make([]float64, 0, len(matches))

	for _, m := range matches {
		number := strings.ReplaceAll(m[1], ",", "")
		value, err := strconv.ParseFloat(number, 64)
		if err != nil || value <= 0 {
			continue
		}

		if m[2] != "" || value < 1000 {
			value *= 1000
		}

		amounts = append(amounts, value)
	}

	return amounts
}

func bracketFor(amounts []float64) SalaryLevel {
	lower, upper := amounts[0], amounts[0]
	for _, a := range amounts[1:] {
		if a < lower {
			lower = a
		}
		if a > upper {
			upper = a
		}
	}

	lowerLevel := bracket(lower)
	if lowerLevel == bracket(upper) {
		return lowerLevel
	}

	return bracket((lower + upper) / 2)
}

func bracket(amount float64) SalaryLevel {
	switch {
	case amount < salaryMediumFloor:
		return SalaryLow
	case amount < salaryHighFloor:
		return SalaryMedium
	default:
		return SalaryHigh
	}
}
