package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spigell/career-referee/internal/career"
)

// Comparison binds a validated result to the input strings it was produced
// for, so rendering can use the original career names.
type Comparison struct {
	UserName string
	CareerA  string
	CareerB  string
	Result   *career.ComparisonResult
}

// Render writes the side-by-side comparison to w.
func Render(w io.Writer, c *Comparison) error {
	if c == nil || c.Result == nil {
		return fmt.Errorf("nothing to render")
	}

	var b strings.Builder

	fmt.Fprintf(&b, "\nCareer comparison for %s: %s vs %s\n", c.UserName, c.CareerA, c.CareerB)
	b.WriteString(strings.Repeat("=", 60) + "\n")

	renderCareer(&b, c.CareerA, c.Result.CareerA)
	renderCareer(&b, c.CareerB, c.Result.CareerB)

	b.WriteString("\nDecision guide:\n")
	for i, entry := range c.Result.DecisionGuide {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, entry)
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func renderCareer(b *strings.Builder, name string, info *career.CareerInfo) {
	fmt.Fprintf(b, "\n-- %s --\n", name)
	fmt.Fprintf(b, "Overview:      %s\n", info.Overview)
	fmt.Fprintf(b, "Skills:        %s\n", info.Skills)
	fmt.Fprintf(b, "Salary range:  %s\n", info.Salary)
	fmt.Fprintf(b, "Time to enter: %s\n", info.TimeToEnter)

	b.WriteString("Pros:\n")
	for _, pro := range info.Pros {
		fmt.Fprintf(b, "  + %s\n", pro)
	}
	b.WriteString("Cons:\n")
	for _, con := range info.Cons {
		fmt.Fprintf(b, "  - %s\n", con)
	}
}

// DumpToTmpFile writes the comparison result as indented JSON to a temporary
// file and returns its name.
func (c *Comparison) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "comparison_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c.Result); err != nil {
		return "", err
	}
	return file.Name(), nil
}
