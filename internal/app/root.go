// Package app contains the Cobra command tree for ga-extractor.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/admariner/ga-extractor/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "ga-extractor",
	Short: "Extract and migrate Google Analytics report data",
	Long: `ga-extractor pulls report data from the Google Analytics Reporting API
and converts it to other formats, including insert statements for an
Umami analytics database.

Run 'setup' once to generate the config file, then 'extract' for raw
reports or 'migrate' to synthesize Umami session and page-view records.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		output.SetNoColor(flagNoColor || !output.StdoutIsTerminal())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("ga-extractor", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  setup      Generate the configuration file from arguments")
		fmt.Println("  auth       Test authentication using the generated configuration")
		fmt.Println("  extract    Extract report data based on the config")
		fmt.Println("  transform  Transform an extracted report to CSV or JSON")
		fmt.Println("  migrate    Synthesize records for the target analytics database")
		fmt.Println("  runs       List past extract and migrate runs")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/ga-extractor/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}

// verbosef prints a muted diagnostic line when --verbose is set.
func verbosef(format string, args ...any) {
	if flagVerbose {
		fmt.Println(output.StyleMuted.Render(fmt.Sprintf(format, args...)))
	}
}
