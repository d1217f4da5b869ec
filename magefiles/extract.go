//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Extract builds the CLI and runs extraction over a dump, writing facts
// to facts/facts.db with the schema in schema/infobox.yaml.
func Extract(dump string) error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "extract", dump,
		"--schema", "schema/infobox.yaml",
		"--output-dir", "facts")
}

// Facts prints the number of stored facts per theme.
func Facts() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "facts", "stats", "--output-dir", "facts")
}
