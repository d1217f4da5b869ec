// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/infobox-engine/internal/httputil"
	"github.com/pdiddy/infobox-engine/pkg/types"
)

const page = "<title>Ada Lovelace</title>{{Infobox person | born = 1815 }}"

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

func gzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func readAll(t *testing.T, rc io.ReadCloser) string {
	t.Helper()
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func TestOpenLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.xml")
	require.NoError(t, os.WriteFile(path, []byte(page), 0o644))

	rc, err := Open(context.Background(), path, types.SourceConfig{}, nil)
	require.NoError(t, err)
	assert.Equal(t, page, readAll(t, rc))
}

func TestOpenGzipFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.xml.gz")
	require.NoError(t, os.WriteFile(path, gzipped(t, page), 0o644))

	rc, err := Open(context.Background(), path, types.SourceConfig{}, nil)
	require.NoError(t, err)
	assert.Equal(t, page, readAll(t, rc))
}

func TestOpenBadGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.xml.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip"), 0o644))

	_, err := Open(context.Background(), path, types.SourceConfig{}, nil)
	assert.ErrorContains(t, err, "gzip")
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing.xml"), types.SourceConfig{}, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Open(context.Background(), "", types.SourceConfig{}, nil)
	assert.Error(t, err)
}

func TestOpenURL(t *testing.T) {
	var (
		calls     int32
		userAgent atomic.Value
	)
	body := gzipped(t, page)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		userAgent.Store(r.UserAgent())
		w.Write(body)
	}))
	defer ts.Close()

	cfg := types.SourceConfig{HTTPConfig: types.HTTPConfig{UserAgent: "infobox-engine/test", MaxRetries: 2}}
	rc, err := Open(context.Background(), ts.URL+"/dumps/enwiki.xml.gz?mirror=1", cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, page, readAll(t, rc))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, "infobox-engine/test", userAgent.Load())
}

func TestOpenURLNotFound(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	_, err := Open(context.Background(), ts.URL+"/missing.xml", types.SourceConfig{}, nil)
	assert.ErrorContains(t, err, "HTTP 404")
}
