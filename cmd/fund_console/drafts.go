package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meridian/fund-console/internal/config"
	"github.com/meridian/fund-console/internal/draft"
)

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "Inspect or clear stored form drafts",
}

var draftsShowCmd = &cobra.Command{
	Use:   "show [form-id]",
	Short: "Print the stored draft snapshot for a form",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftsShow,
}

var draftsClearCmd = &cobra.Command{
	Use:   "clear [form-id]",
	Short: "Remove the stored draft for a form",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftsClear,
}

func init() {
	draftsCmd.AddCommand(draftsShowCmd)
	draftsCmd.AddCommand(draftsClearCmd)
	rootCmd.AddCommand(draftsCmd)
}

func openStore(ctx context.Context) (draft.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return buildDraftStore(ctx, cfg)
}

func runDraftsShow(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	data, ok, err := store.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("draft store error: %w", err)
	}
	if !ok {
		return fmt.Errorf("no draft for form %q", args[0])
	}

	snapshot, err := draft.UnmarshalSnapshot(data)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(snapshot)
}

func runDraftsClear(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	if err := store.Remove(ctx, args[0]); err != nil {
		return fmt.Errorf("draft store error: %w", err)
	}
	fmt.Printf("Draft cleared for form %s\n", args[0])
	return nil
}
