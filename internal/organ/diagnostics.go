package organ

import "fmt"

// IssueLevel indicates the severity of a diagnostic.
type IssueLevel int

const (
	// LevelNotice marks bookkeeping such as dropped dangling references.
	LevelNotice IssueLevel = iota
	// LevelWarning marks problems the user should see; parsing continues.
	LevelWarning
	// LevelError marks a failure that aborted parsing.
	LevelError
)

func (l IssueLevel) String() string {
	switch l {
	case LevelNotice:
		return "NOTICE"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Issue codes.
const (
	CodeMalformedSection  = "malformed_section"
	CodeDanglingReference = "dangling_reference"
	CodeStructural        = "structural_warning"
	CodeFatalOpen         = "fatal_open"
)

// Issue is one diagnostic produced while reading an organ.
type Issue struct {
	Level   IssueLevel
	Code    string
	Section string
	Message string
}

func (i Issue) String() string {
	if i.Section == "" {
		return fmt.Sprintf("%s: %s", i.Level, i.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", i.Level, i.Section, i.Message)
}

// Diagnostics accumulates issues in the order they were found. A nil
// *Diagnostics discards everything.
type Diagnostics struct {
	issues []Issue
}

// NewDiagnostics returns an empty log.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// Add records an issue.
func (d *Diagnostics) Add(issue Issue) {
	if d == nil {
		return
	}
	d.issues = append(d.issues, issue)
}

// MissingSection records a group announced by a count but absent from the file.
func (d *Diagnostics) MissingSection(section, announcedBy string) {
	d.Add(Issue{
		Level:   LevelWarning,
		Code:    CodeMalformedSection,
		Section: section,
		Message: fmt.Sprintf("section is announced by %s but missing; skipped", announcedBy),
	})
}

// Dangling records a reference that could not be resolved.
func (d *Diagnostics) Dangling(section, format string, args ...any) {
	d.Add(Issue{
		Level:   LevelNotice,
		Code:    CodeDanglingReference,
		Section: section,
		Message: fmt.Sprintf(format, args...),
	})
}

// Structural records a valid but suspicious construction.
func (d *Diagnostics) Structural(section, format string, args ...any) {
	d.Add(Issue{
		Level:   LevelWarning,
		Code:    CodeStructural,
		Section: section,
		Message: fmt.Sprintf(format, args...),
	})
}

// Issues returns all issues.
func (d *Diagnostics) Issues() []Issue {
	if d == nil {
		return nil
	}
	out := make([]Issue, len(d.issues))
	copy(out, d.issues)
	return out
}

// AtLeast returns issues at or above level.
func (d *Diagnostics) AtLeast(level IssueLevel) []Issue {
	if d == nil {
		return nil
	}
	var out []Issue
	for _, issue := range d.issues {
		if issue.Level >= level {
			out = append(out, issue)
		}
	}
	return out
}

// Warnings returns the user-visible warnings.
func (d *Diagnostics) Warnings() []Issue {
	var out []Issue
	for _, issue := range d.AtLeast(LevelWarning) {
		if issue.Level == LevelWarning {
			out = append(out, issue)
		}
	}
	return out
}

// Count returns the number of issues with the given code.
func (d *Diagnostics) Count(code string) int {
	if d == nil {
		return 0
	}
	n := 0
	for _, issue := range d.issues {
		if issue.Code == code {
			n++
		}
	}
	return n
}
