// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source opens markup dumps from local files or http(s) URLs,
// decompressing .bz2 and .gz dumps while they are read.
package source

import (
	"compress/bzip2"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/infobox-engine/internal/httputil"
	"github.com/pdiddy/infobox-engine/pkg/types"
)

// Open returns a reader over the decompressed dump at location. The
// caller must close it.
func Open(ctx context.Context, location string, cfg types.SourceConfig, logger *zap.Logger) (io.ReadCloser, error) {
	if location == "" {
		return nil, errors.New("no input given")
	}

	var (
		rc   io.ReadCloser
		name = location
		err  error
	)
	if u, perr := url.Parse(location); perr == nil && (u.Scheme == "http" || u.Scheme == "https") {
		name = u.Path
		rc, err = fetch(ctx, location, cfg.HTTPConfig, logger)
	} else {
		rc, err = os.Open(location)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", location, err)
	}

	dec, err := decompress(rc, name)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("opening %s: %w", location, err)
	}
	return dec, nil
}

func fetch(ctx context.Context, location string, cfg types.HTTPConfig, logger *zap.Logger) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	client := &http.Client{Timeout: cfg.Timeout}
	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries, logger)
	if err != nil {
		return nil, fmt.Errorf("fetching: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("fetching: HTTP %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// readCloser pairs a decompressing reader with the underlying closer.
type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error { return r.close() }

func decompress(rc io.ReadCloser, name string) (io.ReadCloser, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".bz2":
		return readCloser{Reader: bzip2.NewReader(rc), close: rc.Close}, nil
	case ".gz":
		zr, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("reading gzip header: %w", err)
		}
		return readCloser{Reader: zr, close: func() error {
			zr.Close()
			return rc.Close()
		}}, nil
	}
	return rc, nil
}
