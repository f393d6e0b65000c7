package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/admariner/ga-extractor/internal/config"
	"github.com/admariner/ga-extractor/internal/ga"
	"github.com/admariner/ga-extractor/internal/output"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Test authentication using the generated configuration",
	RunE:  runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.ServiceAccountKeyPath == "" {
		return fmt.Errorf("config file doesn't exist yet; run 'setup' first")
	}

	email, expiry, err := ga.CheckCredentials(cmd.Context(), cfg.ServiceAccountKeyPath)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	fmt.Printf("%s %s\n", output.StyleSuccess.Render("Successfully authenticated as"), email)
	verbosef("token valid until %s", expiry.UTC().Format("2006-01-02 15:04:05 UTC"))
	return nil
}
