package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/odfkit/internal/odf"
	"github.com/aidanlsb/odfkit/internal/slugs"
	"github.com/aidanlsb/odfkit/internal/ui"
)

var (
	newManuals int
	newPedals  bool
	newDir     string
	newForce   bool
)

// NewResult is the JSON payload of 'odfkit new'.
type NewResult struct {
	File    string `json:"file"`
	Church  string `json:"church"`
	Manuals int    `json:"manuals"`
	Pedals  bool   `json:"pedals"`
}

var newCmd = &cobra.Command{
	Use:   "new <church name>",
	Short: "Create a skeleton organ definition",
	Long: `Creates an organ definition with empty manuals, one windchest group and a
main panel showing each keyboard. The file name is derived from the church
name.

Examples:
  odfkit new "St. Bavo Haarlem" --manuals 3 --pedals
  odfkit new "Test Organ" --dir organs/`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		church := strings.TrimSpace(strings.Join(args, " "))
		if church == "" {
			return handleErrorMsg(ErrMissingArgument, "church name is required", "")
		}
		if newManuals < 0 || newManuals > 16 {
			return handleErrorMsg(ErrInvalidInput, "--manuals must be between 0 and 16", "")
		}
		if newManuals == 0 && !newPedals {
			return handleErrorMsg(ErrInvalidInput, "an organ needs at least one manual or a pedal", "Use --manuals N or --pedals")
		}

		path := filepath.Join(newDir, slugs.FileName(church))
		if _, err := os.Stat(path); err == nil && !newForce {
			return handleErrorMsg(ErrFileExists, fmt.Sprintf("%s already exists", path), "Use --force to overwrite it")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		o := odf.Skeleton(church, newManuals, newPedals)
		if err := odf.Save(o, path, saveOptions()); err != nil {
			return handleFault(err)
		}

		result := NewResult{File: path, Church: church, Manuals: newManuals, Pedals: newPedals}
		if isJSONOutput() {
			outputSuccess(result, nil)
			return nil
		}

		fmt.Println(ui.Successf("Created %s", ui.FilePath(path)))
		if !quiet {
			fmt.Println(ui.Hint("Run 'odfkit check " + path + "' after adding stops and ranks"))
		}
		return nil
	},
}

func init() {
	newCmd.Flags().IntVarP(&newManuals, "manuals", "m", 2, "Number of manual keyboards, not counting the pedal")
	newCmd.Flags().BoolVar(&newPedals, "pedals", false, "Add a pedalboard as Manual000")
	newCmd.Flags().StringVar(&newDir, "dir", ".", "Directory to create the file in")
	newCmd.Flags().BoolVar(&newForce, "force", false, "Overwrite an existing file")
	rootCmd.AddCommand(newCmd)
}
