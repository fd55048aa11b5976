package errors

import (
	"strings"
	"testing"
)

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Person", false},
		{"underscore", "HAS_FRIEND", false},
		{"with space", "Big Company", false},
		{"unicode", "Städte", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"backtick", "Person`) DETACH DELETE n //", true},
		{"quote", "Per\"son", true},
		{"semicolon", "a;b", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidLabel) {
				t.Errorf("ValidateLabel(%q) code = %v", tt.input, GetCode(err))
			}
		})
	}
}

func TestValidatePropertyKey(t *testing.T) {
	if err := ValidatePropertyKey("weight"); err != nil {
		t.Errorf("ValidatePropertyKey(weight) = %v", err)
	}
	err := ValidatePropertyKey("")
	if !Is(err, ErrCodeInvalidProperty) {
		t.Errorf("ValidatePropertyKey(\"\") code = %v", GetCode(err))
	}
}

func TestIsPlainIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Person", true},
		{"_private", true},
		{"HAS_FRIEND2", true},
		{"2fast", false},
		{"Big Company", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsPlainIdentifier(tt.input); got != tt.want {
			t.Errorf("IsPlainIdentifier(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
