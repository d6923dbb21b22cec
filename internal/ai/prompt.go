package ai

import (
	"strings"

	_ "embed"
)

//go:embed prompt.md
var promptTemplate string

// SystemInstruction is sent alongside the prompt by backends that support a
// separate system role.
const SystemInstruction = "You are a neutral career referee. Provide objective career comparisons in JSON format."

// BuildPrompt renders the comparison prompt for the given request.
func BuildPrompt(req Request) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Compare careers: {{CAREER_A}} vs {{CAREER_B}} for {{USER_NAME}}. Respond with JSON."
	}

	prompt := strings.ReplaceAll(template, "{{CAREER_A}}", strings.TrimSpace(req.CareerA))
	prompt = strings.ReplaceAll(prompt, "{{CAREER_B}}", strings.TrimSpace(req.CareerB))
	prompt = strings.ReplaceAll(prompt, "{{USER_NAME}}", strings.TrimSpace(req.UserName))

	return prompt
}
