package errors

import (
	"strings"
	"testing"
)

func TestValidateItemID(t *testing.T) {
	valid := []string{
		"a",
		"chart-1",
		"widget_42",
		"550e8400-e29b-41d4-a716-446655440000",
		"UPPER.lower",
	}
	for _, id := range valid {
		if err := ValidateItemID(id); err != nil {
			t.Errorf("ValidateItemID(%q) = %v, want nil", id, err)
		}
	}

	invalid := []struct {
		name string
		id   string
	}{
		{"Empty", ""},
		{"EmbeddedSpace", "a b"},
		{"LeadingSpace", " a"},
		{"Tab", "a\tb"},
		{"Newline", "a\nb"},
		{"ControlChar", "a\x01b"},
		{"Slash", "a/b"},
		{"Backslash", "a\\b"},
		{"TooLong", strings.Repeat("x", 257)},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItemID(tt.id)
			if err == nil {
				t.Fatalf("ValidateItemID(%q) = nil, want error", tt.id)
			}
			if !Is(err, ErrCodeInvalidItem) {
				t.Errorf("code = %s, want %s", GetCode(err), ErrCodeInvalidItem)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	valid := []string{
		"out.svg",
		"renders/dashboard.svg",
		"/tmp/gridkit/out.svg",
	}
	for _, p := range valid {
		if err := ValidateOutputPath(p); err != nil {
			t.Errorf("ValidateOutputPath(%q) = %v, want nil", p, err)
		}
	}

	invalid := []struct {
		name string
		path string
	}{
		{"Empty", ""},
		{"Traversal", "../etc/passwd"},
		{"EmbeddedTraversal", "renders/../../secret"},
		{"NullByte", "out\x00.svg"},
		{"TooLong", strings.Repeat("x", 501)},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.path)
			if err == nil {
				t.Fatalf("ValidateOutputPath(%q) = nil, want error", tt.path)
			}
			if !Is(err, ErrCodeInvalidPath) {
				t.Errorf("code = %s, want %s", GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}
