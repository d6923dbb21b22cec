// Package mock implements the terminal-fallback provider. It always succeeds
// with a deterministic, schema-valid response, which is what guarantees that
// the referee's provider chain terminates with a result.
package mock

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spigell/career-referee/internal/ai"
)

const providerName = "mock"

// Provider is the deterministic fallback. It is also handy for offline runs
// and tests.
type Provider struct{}

func New() *Provider { return &Provider{} }

func (p *Provider) Name() string { return providerName }

// Generate returns a fixed comparison payload with the career names
// interpolated. It never fails and performs no I/O.
func (p *Provider) Generate(_ context.Context, req ai.Request) (string, error) {
	payload := map[string]any{
		"career_a": map[string]any{
			"overview":      fmt.Sprintf("%s involves specialized skills and offers various career paths. This field typically requires dedicated learning and practice.", req.CareerA),
			"skills":        fmt.Sprintf("Core skills for %s include problem-solving, communication, and domain-specific technical abilities.", req.CareerA),
			"salary":        "medium",
			"time_to_enter": "2-4 years",
			"pros":          []string{"Growing field", "Good opportunities", "Skill development"},
			"cons":          []string{"Learning curve", "Competition", "Constant updates"},
		},
		"career_b": map[string]any{
			"overview":      fmt.Sprintf("%s offers unique opportunities and challenges. This career path has its own requirements and growth potential.", req.CareerB),
			"skills":        fmt.Sprintf("Essential skills for %s include analytical thinking, creativity, and relevant technical knowledge.", req.CareerB),
			"salary":        "medium",
			"time_to_enter": "2-4 years",
			"pros":          []string{"Diverse opportunities", "Creative work", "Professional growth"},
			"cons":          []string{"Market variability", "Skill requirements", "Time investment"},
		},
		"decision_guide": []string{
			fmt.Sprintf("Choose %s if you prefer structured problem-solving and technical challenges", req.CareerA),
			fmt.Sprintf("Choose %s if you value creativity and diverse project opportunities", req.CareerB),
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		// Marshalling a map of plain strings and slices cannot fail at
		// runtime; reaching this is a code defect.
		return "", fmt.Errorf("marshal mock payload: %w", err)
	}

	return string(data), nil
}
