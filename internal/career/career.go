// Package career defines the comparison data model. Instances are built
// through construct-or-reject factories, so a CareerInfo or ComparisonResult
// that exists is always valid.
package career

import (
	"fmt"
	"strings"
)

// Exactly this many pros and cons per career, and at least this many
// decision-guide entries, are accepted. The prompt asks the model for the
// same counts.
const (
	ProsConsCount     = 3
	MinDecisionGuides = 2
)

// ValidationKind classifies why a payload was rejected.
type ValidationKind string

const (
	MissingField ValidationKind = "missing-field"
	WrongCount   ValidationKind = "wrong-count"
	EmptyString  ValidationKind = "empty-string"
)

// ValidationError reports the specific field that made a payload unacceptable.
type ValidationError struct {
	Kind  ValidationKind
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Kind, e.Field)
}

// CareerInfo is one career's analysis. Salary is always post-standardization.
type CareerInfo struct {
	Overview    string      `json:"overview"`
	Skills      string      `json:"skills"`
	Salary      SalaryLevel `json:"salary"`
	TimeToEnter string      `json:"time_to_enter"`
	Pros        []string    `json:"pros"`
	Cons        []string    `json:"cons"`
}

// ComparisonResult is the outcome of one comparison. It owns both CareerInfo
// values and is immutable after construction.
type ComparisonResult struct {
	CareerA       *CareerInfo `json:"career_a"`
	CareerB       *CareerInfo `json:"career_b"`
	DecisionGuide []string    `json:"decision_guide"`
}

// NewCareerInfo validates and builds a CareerInfo. String fields are trimmed
// and must be non-empty; pros and cons must hold exactly ProsConsCount
// entries. The salary text is coerced through StandardizeSalary and is never
// a rejection reason. The field prefix (usually "career_a" or "career_b")
// qualifies error messages.
func NewCareerInfo(prefix, overview, skills, salary, timeToEnter string, pros, cons []string) (*CareerInfo, error) {
	info := &CareerInfo{
		Overview:    strings.TrimSpace(overview),
		Skills:      strings.TrimSpace(skills),
		Salary:      StandardizeSalary(salary),
		TimeToEnter: strings.TrimSpace(timeToEnter),
	}

	for _, check := range []struct {
		field string
		value string
	}{
		{"overview", info.Overview},
		{"skills", info.Skills},
		{"time_to_enter", info.TimeToEnter},
	} {
		if check.value == "" {
			return nil, &ValidationError{Kind: EmptyString, Field: prefix + "." + check.field}
		}
	}

	var err error
	if info.Pros, err = trimmedList(prefix+".pros", pros, ProsConsCount); err != nil {
		return nil, err
	}
	if info.Cons, err = trimmedList(prefix+".cons", cons, ProsConsCount); err != nil {
		return nil, err
	}

	return info, nil
}

// NewComparisonResult validates and builds a ComparisonResult from two
// already-valid careers and a decision guide with at least MinDecisionGuides
// non-empty entries.
func NewComparisonResult(careerA, careerB *CareerInfo, decisionGuide []string) (*ComparisonResult, error) {
	if careerA == nil {
		return nil, &ValidationError{Kind: MissingField, Field: "career_a"}
	}
	if careerB == nil {
		return nil, &ValidationError{Kind: MissingField, Field: "career_b"}
	}

	if len(decisionGuide) < MinDecisionGuides {
		return nil, &ValidationError{Kind: WrongCount, Field: "decision_guide"}
	}

	guide := make([]string, 0, len(decisionGuide))
	for i, entry := range decisionGuide {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			return nil, &ValidationError{Kind: EmptyString, Field: fmt.Sprintf("decision_guide[%d]", i)}
		}
		guide = append(guide, entry)
	}

	return &ComparisonResult{
		CareerA:       careerA,
		CareerB:       careerB,
		DecisionGuide: guide,
	}, nil
}

func trimmedList(field string, entries []string, want int) ([]string, error) {
	if len(entries) != want {
		return nil, &ValidationError{Kind: WrongCount, Field: field}
	}

	trimmed := make([]string, 0, want)
	for i, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			return nil, &ValidationError{Kind: EmptyString, Field: fmt.Sprintf("%s[%d]", field, i)}
		}
		trimmed = append(trimmed, entry)
	}

	return trimmed, nil
}
