package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/odfkit/internal/odf"
	"github.com/aidanlsb/odfkit/internal/ui"
)

// StatsResult is the JSON payload of 'odfkit stats'.
type StatsResult struct {
	File    string      `json:"file"`
	Dialect string      `json:"dialect"`
	Size    int64       `json:"size"`
	Summary odf.Summary `json:"summary"`
}

var statsCmd = &cobra.Command{
	Use:   "stats <file.organ>",
	Short: "Show object counts for an organ definition",
	Long: `Parses an organ definition and shows how many manuals, stops, ranks, panels
and panel elements it contains.

Examples:
  odfkit stats Burea.organ
  odfkit stats Burea.organ --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		loaded, err := loadOrgan(cmd, args[0])
		if err != nil {
			return handleFault(err)
		}
		elapsed := time.Since(start).Milliseconds()

		result := StatsResult{
			File:    loaded.Path,
			Dialect: loaded.Dialect.String(),
			Size:    loaded.Size,
			Summary: odf.Summarize(loaded.Organ),
		}

		if isJSONOutput() {
			outputSuccess(result, &Meta{QueryTimeMs: elapsed})
			return nil
		}

		s := result.Summary
		title := s.ChurchName
		if title == "" {
			title = loaded.Path
		}
		fmt.Println(ui.Header(title))
		fmt.Println(ui.Hint(fmt.Sprintf("%s layout, %s", result.Dialect, humanize.Bytes(uint64(result.Size)))))
		fmt.Println()

		pedal := "no"
		if s.HasPedals {
			pedal = "yes"
		}
		tbl := ui.NewTable(2)
		tbl.AlignRight(1)
		rows := []struct {
			label string
			value string
		}{
			{"Manuals", fmt.Sprintf("%d", s.Manuals)},
			{"Pedal", pedal},
			{"Stops", humanize.Comma(int64(s.Stops))},
			{"Couplers", humanize.Comma(int64(s.Couplers))},
			{"Divisionals", humanize.Comma(int64(s.Divisionals))},
			{"Generals", humanize.Comma(int64(s.Generals))},
			{"Ranks", humanize.Comma(int64(s.Ranks))},
			{"Pipes", humanize.Comma(int64(s.Pipes))},
			{"Windchest groups", humanize.Comma(int64(s.WindchestGroups))},
			{"Enclosures", humanize.Comma(int64(s.Enclosures))},
			{"Tremulants", humanize.Comma(int64(s.Tremulants))},
			{"Switches", humanize.Comma(int64(s.Switches))},
			{"Panels", humanize.Comma(int64(s.Panels))},
			{"Panel elements", humanize.Comma(int64(s.Elements))},
			{"Images", humanize.Comma(int64(s.Images))},
		}
		for _, r := range rows {
			tbl.AddRow(ui.Muted.Render(r.label+":"), ui.Accent.Render(r.value))
		}
		fmt.Print(tbl.String())

		if !quiet {
			if warnings, notices := countLevels(visibleIssues(loaded.Log)); warnings+notices > 0 {
				fmt.Println()
				fmt.Println(ui.Hint("Problems found " + ui.IssueCounts(warnings, notices) + "; run 'odfkit check' for details"))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
