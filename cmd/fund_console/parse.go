package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/meridian/fund-console/internal/address"
	"github.com/meridian/fund-console/internal/config"
	"github.com/meridian/fund-console/internal/logger"
	"github.com/meridian/fund-console/internal/quickpaste"
)

var (
	parseInputFile string
	parseVariant   string
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a pasted memo or diligence blob from a file or stdin",
	Long:  "Run the quick-paste extraction engine over a text file (or stdin with -) and print the extraction result as JSON. Useful for tuning matchers against real paste samples.",
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseInputFile, "in", "i", "-", "Path to text file, or - for stdin")
	parseCmd.Flags().StringVar(&parseVariant, "variant", "memo", "Extraction variant: memo or diligence")
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, _ []string) error {
	var (
		input []byte
		err   error
	)
	if parseInputFile == "-" {
		input, err = io.ReadAll(os.Stdin)
	} else {
		input, err = os.ReadFile(parseInputFile)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync() //nolint:errcheck

	var normalizer *address.Normalizer
	if parseVariant == "diligence" {
		normalizer, err = buildNormalizer(cfg, log)
		if err != nil {
			return err
		}
	}
	engine := quickpaste.New(normalizer)

	switch parseVariant {
	case "memo":
		return printJSON(engine.Parse(string(input)))
	case "diligence":
		result, err := engine.ParseDiligence(context.Background(), string(input))
		if err != nil {
			return fmt.Errorf("parse interrupted: %w", err)
		}
		return printJSON(result)
	default:
		return fmt.Errorf("unknown variant %q (want memo or diligence)", parseVariant)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
