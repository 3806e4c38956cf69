package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/odfkit/internal/ui"
	"github.com/aidanlsb/odfkit/internal/watcher"
)

var catalogWatchDebug bool

var catalogWatchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Keep the catalog in step with a directory of organs",
	Long: `Adds every organ definition under dir (default: the current directory) to
the catalog, then watches for changes. Modified files are parsed again and
removed files are dropped from the catalog. Stop with Ctrl-C.

Examples:
  odfkit catalog watch ~/GrandOrgue/Organs`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return handleErrorMsg(ErrInvalidInput, "catalog watch does not support --json", "")
		}
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		if st, err := os.Stat(dir); err != nil || !st.IsDir() {
			return handleErrorMsg(ErrFileNotFound, fmt.Sprintf("%s is not a directory", dir), "")
		}

		db, err := openCatalog()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer db.Close()

		refresh := func(ctx context.Context, path string) error {
			loaded, err := readOrgan(ctx, path, false)
			if err != nil {
				return err
			}
			_, err = db.Put(catalogEntryFor(loaded))
			return err
		}

		// Initial scan.
		err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() || !watcher.IsOrganFile(path) {
				return nil
			}
			if err := refresh(commandContext(cmd), path); err != nil {
				fmt.Println(ui.Warningf("Skipped %s: %v", ui.FilePath(path), err))
				return nil
			}
			fmt.Println(ui.Successf("Catalogued %s", ui.FilePath(path)))
			return nil
		})
		if err != nil {
			return err
		}

		w, err := watcher.New(watcher.Config{
			Root:     dir,
			Debug:    catalogWatchDebug,
			OnChange: refresh,
			OnRemove: func(path string) error {
				_, err := db.RemovePath(path)
				return err
			},
			OnEvent: func(path string, removed bool, err error) {
				switch {
				case err != nil:
					fmt.Println(ui.Warningf("%s: %v", ui.FilePath(path), err))
				case removed:
					fmt.Println(ui.Infof("Removed %s", ui.FilePath(path)))
				default:
					fmt.Println(ui.Successf("Refreshed %s", ui.FilePath(path)))
				}
			},
		})
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if !quiet {
			fmt.Println(ui.Hint("Watching " + dir + " (Ctrl-C to stop)"))
		}
		if err := w.Start(commandContext(cmd)); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	catalogWatchCmd.Flags().BoolVar(&catalogWatchDebug, "debug", false, "Log every file event to stderr")
	catalogCmd.AddCommand(catalogWatchCmd)
}
