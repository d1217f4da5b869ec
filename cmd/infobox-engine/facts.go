// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/infobox-engine/internal/factstore"
	"github.com/pdiddy/infobox-engine/pkg/types"
)

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Inspect stored facts (list, trace, export, stats, themes)",
	Long: `Facts reads the SQLite fact store written by extract --format sqlite.
Use subcommands to query facts, trace a fact to its source, export a
subset, or count facts per theme.`,
}

// --- list subcommand ---

var factsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List facts matching theme, subject, relation, or object filters",
	RunE:  runFactsList,
}

func runFactsList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd)
	if opts.IsEmpty() {
		return fmt.Errorf("filter required: provide --theme, --subject, --relation, or --object")
	}
	if err := checkTheme(opts.Theme); err != nil {
		return err
	}

	results, err := store.Query(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatListOutput(results, jsonOutput)
}

func formatListOutput(results []factstore.Record, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No facts found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-18s  %-30s  %-24s  %s\n", "ID", "Subject", "Relation", "Object")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
	for _, r := range results {
		fmt.Fprintf(os.Stdout, "%-18s  %-30s  %-24s  %s\n",
			r.ID, truncate(r.Subject, 30), truncate(r.Relation, 24), r.Object)
	}

	fmt.Fprintf(os.Stdout, "\n%d facts\n", len(results))
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// --- trace subcommand ---

var factsTraceCmd = &cobra.Command{
	Use:   "trace <fact-id>",
	Short: "Show where a fact was extracted from",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		sources, err := store.Trace(context.Background(), args[0])
		if err != nil {
			return err
		}
		for _, f := range sources {
			fmt.Println(f.String())
		}
		return nil
	},
}

// --- export subcommand ---

var factsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export facts to YAML or JSON",
	Long: `Export writes the stored facts (or a filtered subset) to export.yaml
or export.json in the output directory. Supports the same filter flags as
list for partial exports.`,
	RunE: runFactsExport,
}

func runFactsExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd)
	if err := checkTheme(opts.Theme); err != nil {
		return err
	}

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(context.Background(), opts)
	case "json":
		path, err = store.ExportJSON(context.Background(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Println("Exported to", path)
	return nil
}

// --- stats subcommand ---

var factsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count stored facts per theme",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		counts, err := store.Counts(context.Background())
		if err != nil {
			return err
		}
		total := 0
		for _, c := range counts {
			fmt.Fprintf(os.Stdout, "%-24s  %d\n", c.Theme, c.Facts)
			total += c.Facts
		}
		fmt.Fprintf(os.Stdout, "%-24s  %d\n", "total", total)
		return nil
	},
}

// --- themes subcommand ---

var factsThemesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the themes extract writes and the themes later stages derive",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Written by extract:")
		for _, th := range types.OutputThemes() {
			fmt.Printf("  %-24s  %s\n", th.Name, th.Description)
		}
		fmt.Println("Derived by later stages:")
		for _, th := range types.FollowUpThemes() {
			fmt.Printf("  %-24s  %s\n", th.Name, th.Description)
		}
	},
}

// --- shared helpers ---

func openStore(cmd *cobra.Command) (*factstore.Store, error) {
	cfg, err := loadConfig(cmd, storeKeys)
	if err != nil {
		return nil, err
	}
	return factstore.NewStore(cfg.Store)
}

func queryOptsFromFlags(cmd *cobra.Command) factstore.QueryOptions {
	theme, _ := cmd.Flags().GetString("theme")
	subject, _ := cmd.Flags().GetString("subject")
	relation, _ := cmd.Flags().GetString("relation")
	object, _ := cmd.Flags().GetString("object")
	limit, _ := cmd.Flags().GetInt("limit")

	return factstore.QueryOptions{
		Theme:      theme,
		Subject:    subject,
		Relation:   relation,
		Object:     object,
		MaxResults: limit,
	}
}

func checkTheme(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := types.ThemeByName(name); !ok {
		return fmt.Errorf("unknown theme %q: see facts themes", name)
	}
	return nil
}

func filterFlags(cmd *cobra.Command) {
	cmd.Flags().String("theme", "", "filter by theme, e.g. infoboxFactsVeryDirty")
	cmd.Flags().String("subject", "", "filter by subject, e.g. <Ada_Lovelace>")
	cmd.Flags().String("relation", "", "filter by relation, e.g. <wasBornOnDate>")
	cmd.Flags().String("object", "", "filter by text contained in the object")
	cmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	storeFlags(factsCmd.PersistentFlags())

	filterFlags(factsListCmd)
	factsListCmd.Flags().Bool("json", false, "output results as JSON")

	filterFlags(factsExportCmd)
	factsExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	factsCmd.AddCommand(factsListCmd)
	factsCmd.AddCommand(factsTraceCmd)
	factsCmd.AddCommand(factsExportCmd)
	factsCmd.AddCommand(factsStatsCmd)
	factsCmd.AddCommand(factsThemesCmd)

	rootCmd.AddCommand(factsCmd)
}
