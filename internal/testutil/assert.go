package testutil

import (
	"strings"
	"testing"
)

// AssertFileExists fails the test if the file does not exist.
func (o *TestOrgan) AssertFileExists(relPath string) {
	o.t.Helper()
	if !o.FileExists(relPath) {
		o.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (o *TestOrgan) AssertFileNotExists(relPath string) {
	o.t.Helper()
	if o.FileExists(relPath) {
		o.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (o *TestOrgan) AssertFileContains(relPath, substr string) {
	o.t.Helper()
	content := o.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		o.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileNotContains fails the test if the file contains the substring.
func (o *TestOrgan) AssertFileNotContains(relPath, substr string) {
	o.t.Helper()
	content := o.ReadFile(relPath)
	if strings.Contains(content, substr) {
		o.t.Errorf("expected file %s to not contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertHasWarning fails the test if no reported diagnostic has the code.
func (r *CLIResult) AssertHasWarning(t *testing.T, code string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Code == code {
			return
		}
	}
	t.Errorf("expected warning %s, got %+v", code, r.Warnings)
}

// AssertNoWarnings fails the test if any diagnostic was reported.
func (r *CLIResult) AssertNoWarnings(t *testing.T) {
	t.Helper()
	if len(r.Warnings) > 0 {
		t.Errorf("expected no warnings, got %+v", r.Warnings)
	}
}
