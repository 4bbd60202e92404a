package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/papergest/internal/config"
	"github.com/dgallion1/papergest/internal/index"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List previously ingested papers",
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 100, "maximum papers to list")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	idx, err := index.Open(filepath.Join(cfg.CacheDir, "index.db"))
	if err != nil {
		return err
	}
	defer idx.Close()

	records, err := idx.List(cmd.Context(), listLimit)
	if err != nil {
		return err
	}
	if records == nil {
		records = []index.Record{}
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
