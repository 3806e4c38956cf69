package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/odfkit/internal/config"
	"github.com/aidanlsb/odfkit/internal/ui"
)

// ConfigShowResult is the JSON payload of 'odfkit config show'.
type ConfigShowResult struct {
	ConfigPath    string `json:"config_path"`
	CatalogPath   string `json:"catalog_path"`
	BOM           bool   `json:"bom"`
	Backup        bool   `json:"backup"`
	PathSeparator string `json:"path_separator"`
	Accent        string `json:"accent,omitempty"`
	ShowNotices   bool   `json:"show_notices"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the odfkit configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Writes a commented default config file to the --config path, or to
~/.config/odfkit/config.toml. An existing file is left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := getConfigPath()
		created, err := config.CreateDefault(path)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"config_path": path, "created": created}, nil)
			return nil
		}
		if created {
			fmt.Println(ui.Successf("Created %s", ui.FilePath(path)))
		} else {
			fmt.Println(ui.Infof("Config already exists at %s", ui.FilePath(path)))
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getConfig()
		result := ConfigShowResult{
			ConfigPath:    getConfigPath(),
			CatalogPath:   c.CatalogPath(getConfigPath()),
			BOM:           c.Write.UseBOM(),
			Backup:        c.Write.KeepBackup(),
			PathSeparator: c.Write.Separator(),
			Accent:        c.UI.Accent,
			ShowNotices:   c.UI.ShowNotices,
		}

		if isJSONOutput() {
			outputSuccess(result, nil)
			return nil
		}

		tbl := ui.NewTable(2)
		tbl.AddRow(ui.Muted.Render("config:"), ui.FilePath(result.ConfigPath))
		tbl.AddRow(ui.Muted.Render("catalog:"), ui.FilePath(result.CatalogPath))
		tbl.AddRow(ui.Muted.Render("write.bom:"), fmt.Sprintf("%t", result.BOM))
		tbl.AddRow(ui.Muted.Render("write.backup:"), fmt.Sprintf("%t", result.Backup))
		tbl.AddRow(ui.Muted.Render("write.path_separator:"), result.PathSeparator)
		accent := result.Accent
		if accent == "" {
			accent = ui.Hint("(default)")
		}
		tbl.AddRow(ui.Muted.Render("ui.accent:"), accent)
		tbl.AddRow(ui.Muted.Render("ui.show_notices:"), fmt.Sprintf("%t", result.ShowNotices))
		fmt.Print(tbl.String())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
