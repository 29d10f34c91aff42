package dvf

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zipArchive(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, body)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func serve(t *testing.T, status int, body []byte) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_FetchSales(t *testing.T) {
	t.Parallel()

	archive := zipArchive(t, map[string]string{
		"valeursfoncieres-2023.txt": file(leMans, paris, saintGeorges),
	})
	srv := serve(t, http.StatusOK, archive)
	dir := t.TempDir()

	f := NewFetcher(WithHTTPClient(srv.Client()), WithTempDir(dir))
	sales, stats, err := f.FetchSales(context.Background(), srv.URL+"/valeursfoncieres-2023.txt.zip", Filter{Departments: []string{"72"}})
	require.NoError(t, err)

	assert.Len(t, sales, 2)
	assert.Equal(t, 3, stats.Lines)
	assert.Equal(t, 1, stats.Filtered)

	left, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, left, "staged archive is removed")
}

func TestFetcher_Fetch_PicksTextEntry(t *testing.T) {
	t.Parallel()

	archive := zipArchive(t, map[string]string{
		"notice.pdf":                "%PDF",
		"valeursfoncieres-2024.TXT": "hello",
	})
	srv := serve(t, http.StatusOK, archive)

	var got string
	f := NewFetcher(WithHTTPClient(srv.Client()), WithTempDir(t.TempDir()))
	err := f.Fetch(context.Background(), srv.URL, func(name string, r io.Reader) error {
		b, err := io.ReadAll(r)
		got = name + ":" + string(b)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "valeursfoncieres-2024.TXT:hello", got)
}

func TestFetcher_Fetch_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    func(t *testing.T) []byte
		wantErr error
		wantMsg string
	}{
		{
			name:    "not found",
			status:  http.StatusNotFound,
			body:    func(*testing.T) []byte { return []byte("missing") },
			wantMsg: "unexpected status 404",
		},
		{
			name:   "archive without text entry",
			status: http.StatusOK,
			body: func(t *testing.T) []byte {
				return zipArchive(t, map[string]string{"readme.md": "x"})
			},
			wantErr: ErrNoTextEntry,
		},
		{
			name:    "not a zip",
			status:  http.StatusOK,
			body:    func(*testing.T) []byte { return []byte("plain text") },
			wantMsg: "opening dataset archive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := serve(t, tt.status, tt.body(t))
			f := NewFetcher(WithHTTPClient(srv.Client()), WithTempDir(t.TempDir()))

			err := f.Fetch(context.Background(), srv.URL, func(string, io.Reader) error {
				t.Fatal("callback must not run")
				return nil
			})
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestFetcher_Fetch_CanceledContext(t *testing.T) {
	t.Parallel()

	srv := serve(t, http.StatusOK, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFetcher(WithHTTPClient(srv.Client()), WithTempDir(t.TempDir()))
	err := f.Fetch(ctx, srv.URL, func(string, io.Reader) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}
