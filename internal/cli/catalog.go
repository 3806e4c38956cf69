package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/aidanlsb/odfkit/internal/catalog"
	"github.com/aidanlsb/odfkit/internal/odf"
	"github.com/aidanlsb/odfkit/internal/ui"
)

var catalogStaleOnly bool

// CatalogEntry is the JSON form of a catalog entry.
type CatalogEntry struct {
	Slug       string    `json:"slug"`
	Path       string    `json:"path"`
	ChurchName string    `json:"church_name"`
	Dialect    string    `json:"dialect"`
	Manuals    int       `json:"manuals"`
	Stops      int       `json:"stops"`
	Ranks      int       `json:"ranks"`
	Panels     int       `json:"panels"`
	Elements   int       `json:"elements"`
	Warnings   int       `json:"warnings"`
	Size       int64     `json:"size"`
	ModTime    time.Time `json:"mod_time"`
	AddedAt    time.Time `json:"added_at"`
}

func toCatalogEntry(e catalog.Entry) CatalogEntry {
	return CatalogEntry(e)
}

func openCatalog() (*catalog.Catalog, error) {
	return catalog.Open(getConfig().CatalogPath(getConfigPath()))
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Keep a list of known organ definitions",
	Long: `Maintains a local SQLite catalog of organ definitions with their object
counts, so they can be listed without parsing every file again.`,
}

var catalogAddCmd = &cobra.Command{
	Use:   "add <file.organ>...",
	Short: "Add or refresh organ definitions in the catalog",
	Long: `Parses each file and stores its counts in the catalog. Files already in the
catalog are refreshed and keep their slug. Files that cannot be parsed are
skipped with a warning.

Examples:
  odfkit catalog add Burea.organ
  odfkit catalog add organs/*.organ`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openCatalog()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer db.Close()

		var added []CatalogEntry
		var warnings []Warning
		for _, path := range args {
			loaded, err := loadOrgan(cmd, path)
			if err != nil {
				if faultCode(err) == ErrCancelled {
					return handleFault(err)
				}
				warnings = append(warnings, Warning{Code: WarnSkipped, Message: err.Error(), Ref: path})
				continue
			}

			entry, err := db.Put(catalogEntryFor(loaded))
			if err != nil {
				return handleError(ErrDatabaseError, err, "")
			}
			added = append(added, toCatalogEntry(entry))
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]interface{}{"entries": added}, warnings, &Meta{Count: len(added)})
			return nil
		}

		for _, w := range warnings {
			fmt.Println(ui.Warningf("Skipped %s: %s", ui.FilePath(w.Ref), w.Message))
		}
		for _, e := range added {
			fmt.Println(ui.Successf("%s %s", ui.AccentBold.Render(e.Slug), ui.Hint(e.Path)))
		}
		if len(added) == 0 {
			return fmt.Errorf("no organs added")
		}
		return nil
	},
}

func catalogEntryFor(l *loadedOrgan) catalog.Entry {
	s := odf.Summarize(l.Organ)
	e := catalog.Entry{
		Path:       l.Path,
		ChurchName: s.ChurchName,
		Dialect:    l.Dialect.String(),
		Manuals:    s.Manuals,
		Stops:      s.Stops,
		Ranks:      s.Ranks,
		Panels:     s.Panels,
		Elements:   s.Elements,
		Warnings:   len(l.Log.Warnings()),
		Size:       l.Size,
	}
	if st, err := os.Stat(l.Path); err == nil {
		e.Size = st.Size()
		e.ModTime = st.ModTime()
	}
	return e
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalogued organ definitions",
	Long: `Lists the organ definitions in the catalog. With --stale, lists only those
whose file was changed or removed since it was added.

Examples:
  odfkit catalog list
  odfkit catalog list --stale`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openCatalog()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer db.Close()

		var entries []catalog.Entry
		if catalogStaleOnly {
			entries, err = db.Stale()
		} else {
			entries, err = db.List()
		}
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			out := make([]CatalogEntry, 0, len(entries))
			for _, e := range entries {
				out = append(out, toCatalogEntry(e))
			}
			outputSuccess(map[string]interface{}{"entries": out}, &Meta{Count: len(out)})
			return nil
		}

		if len(entries) == 0 {
			if catalogStaleOnly {
				fmt.Println(ui.Success("Catalog is up to date"))
			} else {
				fmt.Println(ui.Info("Catalog is empty. Add organs with 'odfkit catalog add <file>'"))
			}
			return nil
		}

		// Leave room for the count and date columns.
		nameWidth := ui.NewDisplayContext().AvailableWidth(70)
		if nameWidth < 20 {
			nameWidth = 20
		}

		tbl := ui.NewTable(6)
		tbl.AlignRight(2)
		tbl.AlignRight(3)
		tbl.AlignRight(4)
		for _, e := range entries {
			name := ui.Truncate(e.ChurchName, nameWidth)
			if name == "" {
				name = ui.Hint("(unnamed)")
			}
			warn := ""
			if e.Warnings > 0 {
				warn = ui.SymbolWarning
			}
			tbl.AddRow(
				ui.AccentBold.Render(e.Slug),
				name,
				fmt.Sprintf("%d man", e.Manuals),
				fmt.Sprintf("%d stops", e.Stops),
				ui.Muted.Render(humanize.Bytes(uint64(e.Size))),
				ui.Muted.Render("added "+humanize.Time(e.AddedAt))+" "+warn,
			)
		}
		fmt.Print(tbl.String())
		return nil
	},
}

var catalogRemoveCmd = &cobra.Command{
	Use:   "remove <slug>...",
	Short: "Remove organ definitions from the catalog",
	Long: `Removes entries from the catalog. The organ files are not touched.

Examples:
  odfkit catalog remove burea
  odfkit catalog remove $(odfkit catalog list --stale --json | jq -r '.data.entries[].slug')`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openCatalog()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer db.Close()

		n, err := db.Remove(args...)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		if n == 0 {
			return handleErrorMsg(ErrOrganNotFound, "no matching organs in the catalog", "Run 'odfkit catalog list' to see slugs")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"removed": n}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Removed %s", ui.Count(n, "organ", "organs")))
		return nil
	},
}

func init() {
	catalogListCmd.Flags().BoolVar(&catalogStaleOnly, "stale", false, "Only list entries whose file changed or disappeared")
	catalogCmd.AddCommand(catalogAddCmd, catalogListCmd, catalogRemoveCmd)
	rootCmd.AddCommand(catalogCmd)
}
