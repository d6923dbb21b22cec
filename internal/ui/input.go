// Package ui is the interactive collaborator around the comparison core: it
// validates user input before the referee is invoked and renders the
// resulting comparison.
package ui

import (
	"errors"
	"strings"
)

// Input length limits, enforced before the core is called.
const (
	MaxCareerLength   = 100
	MaxUserNameLength = 50
)

// ValidateCareer checks a career string: non-empty after trimming and within
// the length limit. Suitable as a promptui validator.
func ValidateCareer(input string) error {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return errors.New("career must not be empty")
	}
	if len(trimmed) > MaxCareerLength {
		return errors.New("career must be at most 100 characters")
	}
	return nil
}

// ValidateUserName checks the user name the same way.
func ValidateUserName(input string) error {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return errors.New("name must not be empty")
	}
	if len(trimmed) > MaxUserNameLength {
		return errors.New("name must be at most 50 characters")
	}
	return nil
}

// ValidateDistinct rejects two careers that are equal after trimming,
// case-insensitively. The referee assumes this check already happened.
func ValidateDistinct(careerA, careerB string) error {
	if strings.EqualFold(strings.TrimSpace(careerA), strings.TrimSpace(careerB)) {
		return errors.New("please enter two different career options")
	}
	return nil
}
