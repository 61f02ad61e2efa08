package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meridian/fund-console/internal/config"
	"github.com/meridian/fund-console/internal/logger"
)

var normalizeAddressCmd = &cobra.Command{
	Use:   "normalize-address [address]",
	Short: "Run an address through the normalization chain",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNormalizeAddress,
}

func init() {
	rootCmd.AddCommand(normalizeAddressCmd)
}

func runNormalizeAddress(_ *cobra.Command, args []string) error {
	raw := strings.Join(args, " ")
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("address is empty")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync() //nolint:errcheck

	normalizer, err := buildNormalizer(cfg, log)
	if err != nil {
		return err
	}

	result := normalizer.Normalize(context.Background(), raw)
	return printJSON(result)
}
