package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/papergest/internal/config"
	"github.com/dgallion1/papergest/internal/index"
	"github.com/dgallion1/papergest/internal/pipeline"
	"github.com/dgallion1/papergest/internal/source"
)

const usageLine = "Usage: papergest <arxiv|local|url> <source>"

var rootCmd = &cobra.Command{
	Use:   "papergest <arxiv|local|url> <source>",
	Short: "Fetch an academic paper and segment it into titled sections",
	Long: `papergest resolves a paper source (an arXiv id, a URL, or a local file),
caches a local copy, extracts its text page by page, and prints a JSON
document with the detected title and the ordered sections.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errors.New(usageLine)
		}
		return nil
	},
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	kind, err := source.ParseKind(args[0])
	if err != nil {
		return err
	}

	// Logs go to stderr; stdout carries only the JSON result.
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	cfg := config.Load()

	pipe, idx, err := buildPipeline(cfg, log)
	if err != nil {
		return err
	}
	if idx != nil {
		defer idx.Close()
	}

	doc, err := pipe.Ingest(cmd.Context(), source.Descriptor{Kind: kind, Value: args[1]})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}

// buildPipeline wires the resolver, cache, and index from config. The index
// is optional; a failure to open it disables it rather than failing the run.
func buildPipeline(cfg config.Config, log *slog.Logger) (*pipeline.Pipeline, *index.Index, error) {
	arxiv := source.NewArxivClient(cfg.ArxivAPIURL, cfg.LookupTimeout)
	resolver, err := source.NewResolver(source.Options{
		CacheDir:         cfg.CacheDir,
		Arxiv:            arxiv,
		DownloadTimeout:  cfg.DownloadTimeout,
		DownloadAttempts: cfg.DownloadAttempts,
		ValidateCache:    cfg.ValidateCache,
		Log:              log,
	})
	if err != nil {
		return nil, nil, err
	}

	var idx *index.Index
	if cfg.IndexEnabled {
		idx, err = index.Open(filepath.Join(cfg.CacheDir, "index.db"))
		if err != nil {
			log.Warn("paper index unavailable", "error", err)
			idx = nil
		}
	}

	return pipeline.New(resolver, idx, log), idx, nil
}
