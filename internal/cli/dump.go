package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/odfkit/internal/odf"
)

var dumpFormat = newChoiceValue("yaml", "yaml", "json")

var dumpCmd = &cobra.Command{
	Use:   "dump <file.organ>",
	Short: "Print the structure of an organ definition",
	Long: `Parses an organ definition and prints its manuals, stops, couplers, ranks
and panels as YAML or JSON.

Examples:
  odfkit dump Burea.organ
  odfkit dump Burea.organ --format json
  odfkit dump Burea.organ --notices`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadOrgan(cmd, args[0])
		if err != nil {
			return handleFault(err)
		}
		outline := odf.Outlines(loaded.Organ, loaded.Log, minIssueLevel())

		if isJSONOutput() {
			outputSuccess(outline, nil)
			return nil
		}

		if dumpFormat.String() == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(outline)
		}

		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(outline); err != nil {
			return handleError(ErrInternal, err, "")
		}
		return enc.Close()
	},
}

func init() {
	dumpCmd.Flags().VarP(dumpFormat, "format", "f", "Output format: yaml or json")
	rootCmd.AddCommand(dumpCmd)
}
