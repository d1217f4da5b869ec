// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pdiddy/infobox-engine/internal/schema"
	"github.com/pdiddy/infobox-engine/internal/term"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect the schema file",
}

var schemaCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Compile the schema and report what extract would use",
	Long: `Check loads the schema file, compiles the infobox patterns, combination
rules, replacements, title patterns and preferred meanings, and resolves every
pattern relation. Relations without a declared domain or range are listed;
extract treats their objects as plain entities.`,
	RunE: runSchemaCheck,
}

// SchemaReport summarizes a compiled schema.
type SchemaReport struct {
	Facts             int               `json:"facts"`
	Attributes        int               `json:"attributes"`
	Relations         int               `json:"relations"`
	Combinations      int               `json:"combinations"`
	Replacements      int               `json:"replacements"`
	TitlePatterns     int               `json:"title_patterns"`
	PreferredMeanings int               `json:"preferred_meanings"`
	Strategies        map[string]string `json:"strategies"`
	Unknown           []string          `json:"unknown_relations,omitempty"`
}

func runSchemaCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, map[string]string{"schema.path": "schema"})
	if err != nil {
		return err
	}
	snap, err := schema.Load(cfg.Schema.Path, logger)
	if err != nil {
		return err
	}

	report := buildReport(snap)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Printf("schema %s\n", cfg.Schema.Path)
	fmt.Printf("  facts:              %d\n", report.Facts)
	fmt.Printf("  attributes:         %d\n", report.Attributes)
	fmt.Printf("  relations:          %d\n", report.Relations)
	fmt.Printf("  combinations:       %d\n", report.Combinations)
	fmt.Printf("  replacements:       %d\n", report.Replacements)
	fmt.Printf("  title patterns:     %d\n", report.TitlePatterns)
	fmt.Printf("  preferred meanings: %d\n", report.PreferredMeanings)
	for _, rel := range report.Unknown {
		fmt.Printf("  unknown relation:   %s\n", rel)
	}
	return nil
}

func buildReport(snap *schema.Snapshot) SchemaReport {
	patterns := schema.CompilePatterns(snap, logger)
	resolver := schema.NewResolver(snap, logger)

	report := SchemaReport{
		Facts:             snap.Len(),
		Attributes:        len(patterns),
		Combinations:      len(schema.Combinations(snap)),
		Replacements:      schema.Replacements(snap, logger).Len(),
		TitlePatterns:     schema.TitlePatterns(snap, logger).Len(),
		PreferredMeanings: len(schema.PreferredMeanings(snap)),
		Strategies:        make(map[string]string),
	}
	for _, rels := range patterns {
		for _, r := range rels {
			rel := resolver.Relation(r)
			report.Strategies[r] = term.StrategyFor(rel.Class, snap).String()
			if !rel.Known && !slices.Contains(report.Unknown, rel.ID) {
				report.Unknown = append(report.Unknown, rel.ID)
			}
		}
	}
	report.Relations = resolver.Len()
	slices.Sort(report.Unknown)
	return report
}

func init() {
	schemaCheckCmd.Flags().String("schema", "schema/infobox.yaml", "YAML file of schema facts")
	schemaCheckCmd.Flags().Bool("json", false, "output the report as JSON")

	schemaCmd.AddCommand(schemaCheckCmd)
	rootCmd.AddCommand(schemaCmd)
}
