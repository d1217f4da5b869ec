// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"maps"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/infobox-engine/internal/extract"
	"github.com/pdiddy/infobox-engine/internal/factstore"
	"github.com/pdiddy/infobox-engine/internal/schema"
	"github.com/pdiddy/infobox-engine/internal/source"
	"github.com/pdiddy/infobox-engine/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [dump]",
	Short: "Extract infobox facts from a markup dump",
	Long: `Extract scans a markup dump (a local file, a .bz2 or .gz archive, or an
http(s) URL) once from front to back. Every <title> names the subject of the
infoboxes that follow it; attributes with a schema pattern become facts after
their values pass the syntax and type checks of the target relation.

Facts, infobox types, and source records are written to the infoboxFactsVeryDirty,
infoboxTypes, and infoboxSources themes. With --format sqlite the whole run is
one transaction; an interrupted run stores nothing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

var extractKeys = map[string]string{
	"source.input":       "input",
	"source.timeout":     "timeout",
	"source.user_agent":  "user-agent",
	"source.max_retries": "max-retries",
	"schema.path":        "schema",
	"store.format":       "format",
	"progress_every":     "progress-every",
}

func runExtract(cmd *cobra.Command, args []string) error {
	keys := maps.Clone(storeKeys)
	maps.Copy(keys, extractKeys)
	cfg, err := loadConfig(cmd, keys)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Source.Input = args[0]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	snap, err := schema.Load(cfg.Schema.Path, logger)
	if err != nil {
		return err
	}
	logger.Info("loaded schema", zap.String("path", cfg.Schema.Path), zap.Int("facts", snap.Len()))

	in, err := source.Open(ctx, cfg.Source.Input, cfg.Source, logger)
	if err != nil {
		return err
	}
	defer in.Close()

	sink, finish, err := openSink(ctx, cfg.Store)
	if err != nil {
		return err
	}

	x := extract.New(snap, sink, extract.Options{
		Logger:        logger,
		Progress:      os.Stdout,
		ProgressEvery: cfg.ProgressEvery,
	})
	summary, err := x.Run(ctx, bufio.NewReaderSize(in, 1<<20))
	if err != nil {
		finish(false)
		return err
	}
	if err := finish(true); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "\nextracted: %s\n", summary)
	return nil
}

// openSink opens the configured output. finish commits (or, with false,
// discards where the format allows it) and releases the output.
func openSink(ctx context.Context, cfg types.StoreConfig) (extract.Sink, func(commit bool) error, error) {
	switch cfg.Format {
	case types.FormatSQLite, "":
		store, err := factstore.NewStore(cfg)
		if err != nil {
			return nil, nil, err
		}
		batch, err := store.Begin(ctx)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		finish := func(commit bool) error {
			defer store.Close()
			if !commit {
				return batch.Rollback()
			}
			if err := batch.Commit(); err != nil {
				return err
			}
			for theme, n := range batch.Written() {
				logger.Info("stored facts", zap.String("theme", theme), zap.Int("facts", n))
			}
			return nil
		}
		return batch, finish, nil

	case types.FormatTSV:
		w, err := factstore.NewTSVWriter(cfg.OutputDir)
		if err != nil {
			return nil, nil, err
		}
		return w, func(bool) error { return w.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unsupported format %q: use sqlite or tsv", cfg.Format)
}

func init() {
	def := types.DefaultExtractionConfig()

	storeFlags(extractCmd.Flags())
	extractCmd.Flags().String("format", string(def.Store.Format), "output format: sqlite or tsv")
	extractCmd.Flags().String("input", "", "dump to read: a path (.xml, .bz2, .gz) or an http(s) URL")
	extractCmd.Flags().String("schema", def.Schema.Path, "YAML file of schema facts")
	extractCmd.Flags().Duration("timeout", def.Source.Timeout, "HTTP timeout for remote dumps (0 = none)")
	extractCmd.Flags().String("user-agent", def.Source.UserAgent, "User-Agent header for remote dumps")
	extractCmd.Flags().Int("max-retries", def.Source.MaxRetries, "retries on HTTP 429 and 503")
	extractCmd.Flags().Int("progress-every", def.ProgressEvery, "print a progress line every N pages (0 = never)")

	rootCmd.AddCommand(extractCmd)
}
