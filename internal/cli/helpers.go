package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/odfkit/internal/imageprobe"
	"github.com/aidanlsb/odfkit/internal/odf"
	"github.com/aidanlsb/odfkit/internal/organ"
	"github.com/aidanlsb/odfkit/internal/ui"
)

// loadedOrgan is an organ read from disk by a command.
type loadedOrgan struct {
	Path    string
	Organ   *organ.Organ
	Log     *organ.Diagnostics
	Dialect odf.Dialect
	Size    int64
}

// sharedProber caches image sizes across files in one invocation.
var sharedProber = imageprobe.New(0)

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadOrgan parses path, showing progress on a terminal. On failure the
// diagnostics collected so far are still returned.
func loadOrgan(cmd *cobra.Command, path string) (*loadedOrgan, error) {
	return readOrgan(commandContext(cmd), path, !jsonOutput && !quiet)
}

func readOrgan(ctx context.Context, path string, progress bool) (*loadedOrgan, error) {
	opts := odf.Options{Images: sharedProber}
	if progress {
		p := ui.NewProgress("Loading " + filepath.Base(path))
		defer p.Done()
		opts.Observer = p
	}

	o, log, err := odf.Load(ctx, path, opts)
	out := &loadedOrgan{Path: path, Organ: o, Log: log}
	if err != nil {
		return out, err
	}

	if data, err := os.ReadFile(path); err == nil {
		out.Size = int64(len(data))
		if d, err := odf.Sniff(data); err == nil {
			out.Dialect = d
		}
	}
	return out, nil
}

// minIssueLevel is the lowest diagnostic level shown to the user.
func minIssueLevel() organ.IssueLevel {
	if showNotices {
		return organ.LevelNotice
	}
	return organ.LevelWarning
}

// visibleIssues returns the diagnostics at or above minIssueLevel.
func visibleIssues(log *organ.Diagnostics) []organ.Issue {
	return log.AtLeast(minIssueLevel())
}

// printIssues writes one line per diagnostic.
func printIssues(issues []organ.Issue) {
	for _, issue := range issues {
		fmt.Println(ui.IssueLine(issue))
	}
}

// countLevels splits issues into warnings (errors included) and notices.
func countLevels(issues []organ.Issue) (warnings, notices int) {
	for _, issue := range issues {
		if issue.Level >= organ.LevelWarning {
			warnings++
		} else {
			notices++
		}
	}
	return warnings, notices
}

// saveOptions returns the write settings from config, with flag overrides
// applied by the caller.
func saveOptions() odf.SaveOptions {
	w := getConfig().Write
	return odf.SaveOptions{
		BOM:       w.UseBOM(),
		Backup:    w.KeepBackup(),
		Separator: w.Separator(),
	}
}

// choiceValue is a string flag restricted to a fixed set of values.
type choiceValue struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*choiceValue)(nil)

func newChoiceValue(def string, allowed ...string) *choiceValue {
	return &choiceValue{value: def, allowed: allowed}
}

func (c *choiceValue) String() string { return c.value }

func (c *choiceValue) Set(v string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, a := range c.allowed {
		if v == a {
			c.value = v
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(c.allowed, ", "))
}

func (c *choiceValue) Type() string { return "string" }
