package referee

import (
	"github.com/mitchellh/mapstructure"

	"github.com/spigell/career-referee/internal/career"
)

type careerPayload struct {
	Overview    string   `mapstructure:"overview"`
	Skills      string   `mapstructure:"skills"`
	Salary      string   `mapstructure:"salary"`
	TimeToEnter string   `mapstructure:"time_to_enter"`
	Pros        []string `mapstructure:"pros"`
	Cons        []string `mapstructure:"cons"`
}

var requiredCareerFields = []string{"overview", "skills", "salary", "time_to_enter", "pros", "cons"}

// ValidateComparison checks the parsed structure against the comparison
// schema and builds the immutable result. Salary is coerced through the
// standardizer, never rejected. Any other shape problem yields a
// career.ValidationError naming the offending field.
func ValidateComparison(parsed map[string]any) (*career.ComparisonResult, error) {
	for _, key := range []string{"career_a", "career_b", "decision_guide"} {
		if _, ok := parsed[key]; !ok {
			return nil, &career.ValidationError{Kind: career.MissingField, Field: key}
		}
	}

	careerA, err := decodeCareer("career_a", parsed["career_a"])
	if err != nil {
		return nil, err
	}

	careerB, err := decodeCareer("career_b", parsed["career_b"])
	if err != nil {
		return nil, err
	}

	var guide []string
	if err := weakDecode(parsed["decision_guide"], &guide); err != nil {
		return nil, &career.ValidationError{Kind: career.MissingField, Field: "decision_guide"}
	}

	return career.NewComparisonResult(careerA, careerB, guide)
}

func decodeCareer(field string, raw any) (*career.CareerInfo, error) {
	object, ok := raw.(map[string]any)
	if !ok {
		return nil, &career.ValidationError{Kind: career.MissingField, Field: field}
	}

	for _, key := range requiredCareerFields {
		if _, ok := object[key]; !ok {
			return nil, &career.ValidationError{Kind: career.MissingField, Field: field + "." + key}
		}
	}

	var payload careerPayload
	if err := weakDecode(object, &payload); err != nil {
		return nil, &career.ValidationError{Kind: career.MissingField, Field: field}
	}

	return career.NewCareerInfo(field, payload.Overview, payload.Skills, payload.Salary, payload.TimeToEnter, payload.Pros, payload.Cons)
}

// weakDecode tolerates near-miss types in model output, such as a numeric
// salary, which the standardizer can still make sense of as text.
func weakDecode(input, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}
