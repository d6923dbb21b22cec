package referee

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractionKind classifies why raw provider output could not be parsed.
type ExtractionKind string

const (
	NoJSONFound  ExtractionKind = "no-json-found"
	ParseFailure ExtractionKind = "parse-failure"
)

// ExtractionError is returned when raw text holds no parseable JSON object.
type ExtractionError struct {
	Kind ExtractionKind
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("extraction failed (%s)", e.Kind)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ExtractJSON pulls the JSON object out of raw model output. Models tend to
// wrap the payload in markdown fences or surround it with prose; both are
// stripped before parsing the substring between the first '{' and the last
// '}'. Malformed JSON is not repaired.
func ExtractJSON(raw string) (map[string]any, error) {
	cleaned := stripFences(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end < start {
		return nil, &ExtractionError{Kind: NoJSONFound}
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &parsed); err != nil {
		return nil, &ExtractionError{Kind: ParseFailure, Err: err}
	}

	return parsed, nil
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
