// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the infobox-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/infobox-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE from the --verbose flag.
var logger = zap.NewNop()

// rootCmd is the base command for the infobox-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "infobox-engine",
	Short: "Extract typed facts from encyclopedia infoboxes",
	Long: `infobox-engine scans an encyclopedia markup dump for infobox templates and
turns their attributes into subject-relation-object facts. A schema file
declares which attributes map to which relations, the classes those
relations expect, and the patterns used to clean values.

Facts are written by theme to a SQLite database or to TSV files, together
with source records naming the article and the raw value each fact came from.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./infobox-engine.yaml or ~/.config/infobox-engine/infobox-engine.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug diagnostics (rejected candidates, skipped pages)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("infobox-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "infobox-engine"))
		}
	}

	viper.SetEnvPrefix("INFOBOX_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig binds the given config keys to cmd's flags and decodes the
// merged flags, environment and config file over the defaults.
func loadConfig(cmd *cobra.Command, keys map[string]string) (types.ExtractionConfig, error) {
	for key, flag := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return types.ExtractionConfig{}, fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}

	cfg := types.DefaultExtractionConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// storeFlags adds the fact store flags shared by extract and facts.
func storeFlags(fs *pflag.FlagSet) {
	def := types.DefaultExtractionConfig().Store
	fs.String("output-dir", def.OutputDir, "directory for facts.db or <theme>.tsv files")
	fs.Int("max-results", def.MaxResults, "default maximum number of query results")
}

var storeKeys = map[string]string{
	"store.output_dir":  "output-dir",
	"store.max_results": "max-results",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
