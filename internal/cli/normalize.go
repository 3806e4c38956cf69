package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/odfkit/internal/odf"
	"github.com/aidanlsb/odfkit/internal/ui"
)

var (
	normalizeOutput    string
	normalizeStdout    bool
	normalizeNoBackup  bool
	normalizeSeparator = newChoiceValue("", "/", `\`)
)

// NormalizeResult is the JSON payload of 'odfkit normalize'.
type NormalizeResult struct {
	File    string `json:"file"`
	Output  string `json:"output"`
	Dialect string `json:"dialect"`
	Changed bool   `json:"changed"`
	Backup  string `json:"backup,omitempty"`
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize <file.organ>",
	Short: "Rewrite an organ definition in the panel-based layout",
	Long: `Parses an organ definition and writes it back in the panel-based layout,
with objects renumbered and references that could not be resolved dropped.

The file is replaced atomically. Unless disabled in config or with
--no-backup, the previous version is kept as <file>.bak.

Examples:
  odfkit normalize Burea.organ
  odfkit normalize Burea.organ -o Burea-new.organ
  odfkit normalize Burea.organ --stdout > out.organ`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if normalizeStdout && jsonOutput {
			return handleErrorMsg(ErrInvalidInput, "--stdout cannot be combined with --json", "")
		}
		if normalizeStdout && normalizeOutput != "" {
			return handleErrorMsg(ErrInvalidInput, "--stdout cannot be combined with --output", "")
		}

		in := args[0]
		loaded, err := loadOrgan(cmd, in)
		if err != nil {
			return handleFault(err)
		}

		opts := saveOptions()
		if normalizeNoBackup {
			opts.Backup = false
		}
		if sep := normalizeSeparator.String(); sep != "" {
			opts.Separator = sep
		}

		if normalizeStdout {
			data, err := odf.Encode(loaded.Organ, opts)
			if err != nil {
				return handleFault(err)
			}
			_, err = os.Stdout.Write(data)
			return err
		}

		out := in
		if normalizeOutput != "" {
			out = normalizeOutput
		}
		before, readErr := os.ReadFile(out)
		if readErr != nil && !errors.Is(readErr, os.ErrNotExist) {
			return handleError(ErrFileReadError, readErr, "")
		}

		if err := odf.Save(loaded.Organ, out, opts); err != nil {
			return handleFault(err)
		}
		after, err := os.ReadFile(out)
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		result := NormalizeResult{
			File:    in,
			Output:  out,
			Dialect: loaded.Dialect.String(),
			Changed: readErr != nil || string(before) != string(after),
		}
		if opts.Backup && readErr == nil {
			result.Backup = out + ".bak"
		}

		issues := visibleIssues(loaded.Log)
		if isJSONOutput() {
			outputSuccessWithWarnings(result, issueWarnings(issues), nil)
			return nil
		}

		if !quiet {
			printIssues(issues)
		}
		abs, _ := filepath.Abs(out)
		if !result.Changed {
			fmt.Println(ui.Success("Already normalized: " + ui.FilePath(abs)))
			return nil
		}
		fmt.Println(ui.Successf("Wrote %s %s", ui.FilePath(abs), ui.Hint("(from "+result.Dialect+" layout)")))
		if result.Backup != "" && !quiet {
			fmt.Println(ui.Hint("Previous version kept as " + result.Backup))
		}
		return nil
	},
}

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeOutput, "output", "o", "", "Write to this file instead of replacing the input")
	normalizeCmd.Flags().BoolVar(&normalizeStdout, "stdout", false, "Print the result instead of writing a file")
	normalizeCmd.Flags().BoolVar(&normalizeNoBackup, "no-backup", false, "Do not keep <file>.bak")
	normalizeCmd.Flags().Var(normalizeSeparator, "separator", `Path separator for file references ("/" or "\")`)
	rootCmd.AddCommand(normalizeCmd)
}
