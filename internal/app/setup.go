package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/admariner/ga-extractor/internal/config"
	"github.com/admariner/ga-extractor/internal/output"
)

var (
	setupFlagMetrics    string
	setupFlagDimensions string
	setupFlagSAKeyPath  string
	setupFlagTableID    int64
	setupFlagFilters    string
	setupFlagSampling   string
	setupFlagStartDate  string
	setupFlagEndDate    string
	setupFlagWebsiteID  uint64
	setupFlagHostname   string
	setupFlagDryRun     bool
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Generate configuration file from arguments",
	RunE:  runSetup,
}

func init() {
	setupCmd.Flags().StringVar(&setupFlagMetrics, "metrics", "", "Comma-separated metric expressions (e.g. ga:pageviews,ga:sessions)")
	setupCmd.Flags().StringVar(&setupFlagDimensions, "dimensions", "", "Comma-separated dimension names (e.g. ga:pagePath,ga:browser)")
	setupCmd.Flags().StringVar(&setupFlagSAKeyPath, "sa-key-path", "", "Path to the service account key file")
	setupCmd.Flags().Int64Var(&setupFlagTableID, "table-id", 0, "Google Analytics view (table) ID")
	setupCmd.Flags().StringVar(&setupFlagFilters, "filters", "", "Optional filters expression")
	setupCmd.Flags().StringVar(&setupFlagSampling, "sampling-level", config.DefaultSamplingLevel, "Report sampling level")
	setupCmd.Flags().StringVar(&setupFlagStartDate, "start-date", "", "Start date (YYYY-MM-DD, inclusive)")
	setupCmd.Flags().StringVar(&setupFlagEndDate, "end-date", "", "End date (YYYY-MM-DD, inclusive)")
	setupCmd.Flags().Uint64Var(&setupFlagWebsiteID, "website-id", config.DefaultWebsiteID, "Website ID stamped on migrated records")
	setupCmd.Flags().StringVar(&setupFlagHostname, "hostname", config.DefaultHostname, "Hostname stamped on migrated sessions")
	setupCmd.Flags().BoolVar(&setupFlagDryRun, "dry-run", false, "Output config to terminal instead of config file")

	for _, name := range []string{"metrics", "dimensions", "sa-key-path", "table-id", "start-date", "end-date"} {
		_ = setupCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg := &config.Config{
		ServiceAccountKeyPath: setupFlagSAKeyPath,
		Table:                 setupFlagTableID,
		Metrics:               setupFlagMetrics,
		Dimensions:            setupFlagDimensions,
		Filters:               setupFlagFilters,
		SamplingLevel:         setupFlagSampling,
		StartDate:             setupFlagStartDate,
		EndDate:               setupFlagEndDate,
		WebsiteID:             setupFlagWebsiteID,
		Hostname:              setupFlagHostname,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if setupFlagDryRun {
		out, err := cfg.YAML()
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	}

	path, err := config.Save(cfg, flagConfig)
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Printf("%s %s\n", output.StyleSuccess.Render("Config written to"), path)
	return nil
}
