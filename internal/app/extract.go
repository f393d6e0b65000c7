package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/admariner/ga-extractor/internal/config"
	"github.com/admariner/ga-extractor/internal/ga"
	"github.com/admariner/ga-extractor/internal/output"
	"github.com/admariner/ga-extractor/internal/store"
)

var extractFlagReport string

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract report data based on the config",
	Long: `Extract runs the configured report (date range, dimensions, metrics)
against the Reporting API, exhausting pagination, and writes the raw rows
as JSON to the report file. The run is recorded in the local run history.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractFlagReport, "report", config.DefaultReportFile, "Report output file (relative paths land in the config directory)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client, err := ga.NewClient(cmd.Context(), cfg.ServiceAccountKeyPath, cfg.Table)
	if err != nil {
		return err
	}

	verbosef("extracting %s..%s for view %d", cfg.StartDate, cfg.EndDate, cfg.Table)
	rows, err := client.BatchGet(cmd.Context(), ga.Request{
		StartDate:     cfg.StartDate,
		EndDate:       cfg.EndDate,
		Dimensions:    cfg.DimensionList(),
		Metrics:       cfg.MetricList(),
		Filters:       cfg.Filters,
		SamplingLevel: cfg.SamplingLevel,
	})
	if err != nil {
		return fmt.Errorf("extracting report: %w", err)
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	outPath := config.ResolvePath(extractFlagReport)
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	recordRun(&store.Run{
		Command:    "extract",
		StartDate:  cfg.StartDate,
		EndDate:    cfg.EndDate,
		RowCount:   len(rows),
		OutputPath: outPath,
	})

	fmt.Printf("%s %s %s\n",
		output.StyleSuccess.Render("Report written to"), outPath,
		output.StyleMuted.Render(fmt.Sprintf("(%d rows)", len(rows))))
	return nil
}

// recordRun appends a run to the local history. History is best-effort:
// a failure is reported in verbose mode but never fails the command.
func recordRun(run *store.Run) {
	db, err := store.Open(config.DBPath())
	if err != nil {
		verbosef("run history unavailable: %v", err)
		return
	}
	defer db.Close()

	if _, err := db.RecordRun(run); err != nil {
		verbosef("recording run: %v", err)
	}
}
