package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/admariner/ga-extractor/internal/config"
	"github.com/admariner/ga-extractor/internal/output"
	"github.com/admariner/ga-extractor/internal/store"
)

var runsFlagLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List past extract and migrate runs",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&runsFlagLimit, "limit", 20, "Maximum number of runs to show")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(runsFlagLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println(output.StyleMuted.Render("No runs recorded yet."))
		return nil
	}

	tbl := output.NewTable("When", "Command", "Range", "Days", "Rows", "Records", "Output")
	for _, r := range runs {
		tbl.AddRow(
			r.StartedAt.Format("2006-01-02 15:04"),
			r.Command,
			fmt.Sprintf("%s..%s", r.StartDate, r.EndDate),
			fmt.Sprintf("%d", r.Days),
			fmt.Sprintf("%d", r.RowCount),
			fmt.Sprintf("%d", r.Records),
			r.OutputPath,
		)
	}
	tbl.Print()
	return nil
}
