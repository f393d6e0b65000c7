package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/admariner/ga-extractor/internal/config"
	"github.com/admariner/ga-extractor/internal/ga"
	"github.com/admariner/ga-extractor/internal/output"
	"github.com/admariner/ga-extractor/internal/render"
)

var (
	transformFlagIn     string
	transformFlagOut    string
	transformFlagFormat string
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Transform an extracted report to other formats (CSV, JSON)",
	RunE:  runTransform,
}

func init() {
	transformCmd.Flags().StringVar(&transformFlagIn, "in", config.DefaultReportFile, "Input report file from a previous extract")
	transformCmd.Flags().StringVar(&transformFlagOut, "out", "", "Output file (default: stdout)")
	transformCmd.Flags().StringVar(&transformFlagFormat, "output-format", "CSV", "Output format: CSV or JSON")
	rootCmd.AddCommand(transformCmd)
}

func runTransform(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	inPath := config.ResolvePath(transformFlagIn)
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("input file doesn't exist; run 'extract' first: %w", err)
	}
	var rows []ga.ReportRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("parsing report %s: %w", inPath, err)
	}

	var out []byte
	switch strings.ToUpper(transformFlagFormat) {
	case "CSV":
		s, err := render.ReportCSV(rows, cfg.DimensionList(), cfg.MetricList())
		if err != nil {
			return fmt.Errorf("rendering CSV: %w", err)
		}
		out = []byte(s)
	case "JSON":
		out, err = render.ReportJSON(rows)
		if err != nil {
			return fmt.Errorf("rendering JSON: %w", err)
		}
	default:
		return fmt.Errorf("invalid output format %q (valid: CSV, JSON)", transformFlagFormat)
	}

	if transformFlagOut == "" {
		fmt.Print(string(out))
		return nil
	}

	outPath := config.ResolvePath(transformFlagOut)
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	fmt.Printf("%s %s\n", output.StyleSuccess.Render("Report written to"), outPath)
	return nil
}
