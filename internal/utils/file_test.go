package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(existing, []byte("content"), 0600); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	tests := []struct {
		name        string
		filename    string
		expectError bool
	}{
		{name: "existing file", filename: existing, expectError: false},
		{name: "empty filename", filename: "", expectError: true},
		{name: "missing file", filename: filepath.Join(dir, "missing.txt"), expectError: true},
		{name: "directory instead of file", filename: dir, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputFile(tt.filename)

			if tt.expectError && err == nil {
				t.Errorf("Expected error for %q but got none", tt.filename)
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error for %q, got: %v", tt.filename, err)
			}
		})
	}
}

func TestValidateOutputFile(t *testing.T) {
	dir := t.TempDir()

	if err := ValidateOutputFile(""); err != nil {
		t.Errorf("Expected stdout (empty path) to be valid, got: %v", err)
	}

	nested := filepath.Join(dir, "reports", "analysis.json")
	if err := ValidateOutputFile(nested); err != nil {
		t.Errorf("Expected nested output path to be valid, got: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "reports")); err != nil {
		t.Errorf("Expected parent directory to be created: %v", err)
	}
}

func TestIsTextFile(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"resume.txt", true},
		{"resume.md", true},
		{"resume.MARKDOWN", true},
		{"resume.pdf", false},
		{"resume.docx", false},
		{"resume", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := IsTextFile(tt.filename); got != tt.want {
				t.Errorf("IsTextFile(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}
