package ui

import (
	"strings"
	"testing"
)

func TestValidateCareer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "Software Engineer", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "at limit", input: strings.Repeat("a", 100), wantErr: false},
		{name: "over limit", input: strings.Repeat("a", 101), wantErr: true},
		{name: "padded within limit", input: "  " + strings.Repeat("a", 100) + "  ", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateCareer(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateCareer(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateUserName(t *testing.T) {
	t.Parallel()

	if err := ValidateUserName("Sam"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateUserName("  "); err == nil {
		t.Fatal("expected error for blank name")
	}
	if err := ValidateUserName(strings.Repeat("n", 51)); err == nil {
		t.Fatal("expected error for overlong name")
	}
}

func TestValidateDistinct(t *testing.T) {
	t.Parallel()

	if err := ValidateDistinct("Pilot", "Surgeon"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateDistinct("Pilot", "pilot"); err == nil {
		t.Fatal("expected error for case-insensitive duplicates")
	}
	if err := ValidateDistinct(" Pilot ", "pilot"); err == nil {
		t.Fatal("expected error for padded duplicates")
	}
}
