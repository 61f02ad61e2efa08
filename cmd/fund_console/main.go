// Package main provides the entry point for the fund console HTTP API server
// and its companion CLI commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fund_console",
	Short: "Venture fund back-office console",
	Long:  "Fund console manages a small fund's portfolio: quick-paste extraction of deal memos and diligence notes, address normalization, draft persistence for the investment wizard, and LLM enrichment of company records, exposed over a REST API.",
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
