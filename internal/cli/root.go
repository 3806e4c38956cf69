package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/odfkit/internal/config"
	"github.com/aidanlsb/odfkit/internal/ui"
)

var (
	// Global flags
	configPath  string
	quiet       bool
	showNotices bool

	// Resolved values
	resolvedConfigPath string
	cfg                *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "odfkit",
	Short: "odfkit - inspect and rewrite GrandOrgue organ definitions",
	Long: `odfkit reads GrandOrgue organ definition files (.organ) in both the legacy
and the panel-based layout, reports what it finds, and writes them back in
the panel-based layout.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}

		resolvedConfigPath = config.ResolveConfigPath(configPath)
		loaded, err := config.LoadFrom(resolvedConfigPath)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Fix the file or run 'odfkit config init' with --config pointing elsewhere")
		}
		cfg = loaded
		ui.ConfigureTheme(cfg.UI.Accent)
		if cfg.UI.ShowNotices && !cmd.Flags().Changed("notices") {
			showNotices = true
		}
		return nil
	},
}

// Execute runs the CLI and returns the process exit status. Interrupts
// cancel a parse in progress.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for script use)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress and hints")
	rootCmd.PersistentFlags().BoolVar(&showNotices, "notices", false, "Include notices (dropped references) with warnings")
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

// getConfigPath returns the resolved global config path.
func getConfigPath() string {
	if resolvedConfigPath == "" {
		return config.ResolveConfigPath(configPath)
	}
	return resolvedConfigPath
}
