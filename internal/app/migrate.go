package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/admariner/ga-extractor/internal/config"
	"github.com/admariner/ga-extractor/internal/ga"
	"github.com/admariner/ga-extractor/internal/migrate"
	"github.com/admariner/ga-extractor/internal/output"
	"github.com/admariner/ga-extractor/internal/render"
	"github.com/admariner/ga-extractor/internal/report"
	"github.com/admariner/ga-extractor/internal/store"
	"github.com/admariner/ga-extractor/internal/umami"
)

var (
	migrateFlagFormat string
	migrateFlagOut    string
	migrateFlagApply  bool
	migrateFlagDSN    string
)

// formatSuffixes maps output formats to file suffixes for generated names.
var formatSuffixes = map[string]string{
	"SQL":  "sql",
	"JSON": "json",
	"CSV":  "csv",
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Synthesize records for the target analytics database",
	Long: `Migrate fetches one report per day in the configured date range and
reconstructs synthetic Umami sessions and page views whose daily aggregate
counts match the source data. Exact visit times are not preserved; views
and visitors stay accurate at day-level granularity.

The result is rendered as SQL insert statements (or JSON/CSV records), or
applied directly to a live database with --apply.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFlagFormat, "format", "SQL", "Output format: SQL, JSON, or CSV")
	migrateCmd.Flags().StringVar(&migrateFlagOut, "out", "", "Output file (default: a generated name in the config directory)")
	migrateCmd.Flags().BoolVar(&migrateFlagApply, "apply", false, "Apply records directly to the target database instead of writing a file")
	migrateCmd.Flags().StringVar(&migrateFlagDSN, "dsn", "", "Target Postgres DSN (required with --apply)")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	format := strings.ToUpper(migrateFlagFormat)
	suffix, ok := formatSuffixes[format]
	if !ok {
		return fmt.Errorf("invalid format %q (valid: SQL, JSON, CSV)", migrateFlagFormat)
	}
	if migrateFlagApply && migrateFlagDSN == "" {
		return fmt.Errorf("--apply requires --dsn")
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	start, end, err := cfg.DateRange()
	if err != nil {
		return err
	}

	client, err := ga.NewClient(cmd.Context(), cfg.ServiceAccountKeyPath, cfg.Table)
	if err != nil {
		return err
	}

	verbosef("fetching daily reports %s..%s", cfg.StartDate, cfg.EndDate)
	rep, err := report.Daily(cmd.Context(), start, end, client.FetchDay)
	if err != nil {
		return err
	}

	records, err := migrate.Synthesize(rep, migrate.Options{
		WebsiteID: cfg.WebsiteID,
		Hostname:  cfg.Hostname,
	})
	if err != nil {
		return err
	}

	outPath := ""
	if migrateFlagApply {
		applier, err := umami.Connect(cmd.Context(), migrateFlagDSN)
		if err != nil {
			return err
		}
		defer applier.Close(cmd.Context())

		if err := applier.Apply(cmd.Context(), records); err != nil {
			return fmt.Errorf("applying records: %w", err)
		}
	} else {
		var data []byte
		switch format {
		case "SQL":
			data = []byte(render.SQL(records))
		case "JSON":
			data, err = render.JSON(records)
		case "CSV":
			var s string
			s, err = render.CSV(records)
			data = []byte(s)
		}
		if err != nil {
			return fmt.Errorf("rendering %s: %w", format, err)
		}

		outPath = migrateFlagOut
		if outPath == "" {
			outPath = fmt.Sprintf("%s_extract.%s", uuid.New(), suffix)
		}
		outPath = config.ResolvePath(outPath)
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	recordRun(&store.Run{
		Command:    "migrate",
		StartDate:  cfg.StartDate,
		EndDate:    cfg.EndDate,
		Days:       len(rep.Days),
		RowCount:   rep.TotalRows(),
		Records:    len(records),
		OutputPath: outPath,
	})

	printMigrateSummary(rep, records, outPath)
	return nil
}

func printMigrateSummary(rep *report.DailyReport, records []migrate.Record, outPath string) {
	sessions, views := 0, 0
	for _, rec := range records {
		switch rec.Kind() {
		case migrate.KindSession:
			sessions++
		case migrate.KindPageView:
			views++
		}
	}

	fmt.Println(output.Section("Migration"))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Days:"),
		output.StyleValue.Render(fmt.Sprintf("%d", len(rep.Days))))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Dimension rows:"),
		output.StyleValue.Render(fmt.Sprintf("%d", rep.TotalRows())))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Sessions:"),
		output.StyleValue.Render(fmt.Sprintf("%d", sessions)))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Page views:"),
		output.StyleValue.Render(fmt.Sprintf("%d", views)))
	if outPath != "" {
		fmt.Printf(" %s %s\n", output.StyleLabel.Render("Output:"), outPath)
	} else {
		fmt.Printf(" %s %s\n", output.StyleLabel.Render("Output:"),
			output.StyleSuccess.Render("applied to target database"))
	}
}
