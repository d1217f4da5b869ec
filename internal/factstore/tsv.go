// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package factstore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/pdiddy/infobox-engine/pkg/types"
)

// TSVWriter writes each theme to <dir>/<theme>.tsv, one fact per line:
// id, subject, relation, object separated by tabs. Files are created on
// the first write to their theme.
type TSVWriter struct {
	dir   string
	files map[string]*tsvFile
}

type tsvFile struct {
	f *os.File
	w *bufio.Writer
}

// NewTSVWriter creates dir if needed.
func NewTSVWriter(dir string) (*TSVWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &TSVWriter{dir: dir, files: make(map[string]*tsvFile)}, nil
}

// Path returns the file a theme is written to.
func (t *TSVWriter) Path(theme types.Theme) string {
	return filepath.Join(t.dir, theme.Name+".tsv")
}

// Write appends f to its theme file.
func (t *TSVWriter) Write(theme types.Theme, f types.Fact) error {
	tf, ok := t.files[theme.Name]
	if !ok {
		file, err := os.Create(t.Path(theme))
		if err != nil {
			return fmt.Errorf("creating %s: %w", theme.Name, err)
		}
		tf = &tsvFile{f: file, w: bufio.NewWriterSize(file, 1<<16)}
		t.files[theme.Name] = tf
	}
	if f.ID == "" {
		f = types.NewFact(f.Subject, f.Relation, f.Object)
	}
	line := strings.Join([]string{f.ID, f.Subject, f.Relation, f.Object}, "\t")
	if _, err := tf.w.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("writing %s: %w", theme.Name, err)
	}
	return nil
}

// Close flushes and closes every theme file.
func (t *TSVWriter) Close() error {
	var err error
	for name, tf := range t.files {
		if ferr := tf.w.Flush(); ferr != nil {
			err = multierr.Append(err, fmt.Errorf("flushing %s: %w", name, ferr))
		}
		if cerr := tf.f.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("closing %s: %w", name, cerr))
		}
	}
	t.files = make(map[string]*tsvFile)
	return err
}
