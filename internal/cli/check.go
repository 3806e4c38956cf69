package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/odfkit/internal/organ"
	"github.com/aidanlsb/odfkit/internal/ui"
)

var checkStrict bool

// CheckResult is the JSON payload of 'odfkit check'.
type CheckResult struct {
	File     string `json:"file"`
	Dialect  string `json:"dialect"`
	Warnings int    `json:"warnings"`
	Notices  int    `json:"notices"`
}

var checkCmd = &cobra.Command{
	Use:   "check <file.organ>",
	Short: "Parse an organ definition and report problems",
	Long: `Parses an organ definition and lists the problems found: missing sections,
references to objects that do not exist, and structural warnings.

A file without an [Organ] section fails. With --strict, warnings fail too.

Examples:
  odfkit check Burea.organ
  odfkit check Burea.organ --notices
  odfkit check Burea.organ --strict --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadOrgan(cmd, args[0])
		if err != nil {
			if loaded != nil && loaded.Log != nil && !jsonOutput {
				printIssues(loaded.Log.AtLeast(organ.LevelError))
			}
			return handleFault(err)
		}

		issues := visibleIssues(loaded.Log)
		warnings, notices := countLevels(issues)
		result := CheckResult{
			File:     loaded.Path,
			Dialect:  loaded.Dialect.String(),
			Warnings: warnings,
			Notices:  notices,
		}

		if isJSONOutput() {
			if checkStrict && warnings > 0 {
				outputJSON(Response{
					OK:       false,
					Data:     result,
					Warnings: issueWarnings(issues),
					Error: &ErrorInfo{
						Code:    ErrValidationFailed,
						Message: fmt.Sprintf("%d warnings in strict mode", warnings),
					},
				})
				return errReported
			}
			outputSuccessWithWarnings(result, issueWarnings(issues), &Meta{Count: len(issues)})
			return nil
		}

		printIssues(issues)
		if len(issues) > 0 {
			fmt.Println()
		}
		summary := fmt.Sprintf("%s %s", ui.FilePath(loaded.Path), ui.Hint("("+result.Dialect+" layout)"))
		if counts := ui.IssueCounts(warnings, notices); counts != "" {
			summary += " " + counts
		}
		if warnings == 0 {
			fmt.Println(ui.Success(summary))
		} else {
			fmt.Println(ui.Warning(summary))
		}

		if checkStrict && warnings > 0 {
			return fmt.Errorf("%d warnings in strict mode", warnings)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Treat warnings as errors")
	rootCmd.AddCommand(checkCmd)
}
