package dvf

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

// ErrNoTextEntry is returned when a dataset archive holds no .txt file.
var ErrNoTextEntry = errors.New("dataset archive has no .txt entry")

const defaultHTTPTimeout = 10 * time.Minute

// Fetcher downloads yearly dataset archives and parses their TXT entry.
type Fetcher struct {
	client  *http.Client
	tempDir string
	log     *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient sets the HTTP client used for downloads.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithTempDir sets where archives are staged. Defaults to os.TempDir.
func WithTempDir(dir string) FetcherOption {
	return func(f *Fetcher) {
		f.tempDir = dir
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.log = l
	}
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: defaultHTTPTimeout},
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchSales downloads the archive at url and parses its TXT entry with f.
func (f *Fetcher) FetchSales(
	ctx context.Context,
	url string,
	filter Filter,
) ([]domain.Sale, ParseStats, error) {
	var (
		sales []domain.Sale
		stats ParseStats
	)
	err := f.Fetch(ctx, url, func(name string, r io.Reader) error {
		var err error
		sales, stats, err = Parse(ctx, r, filter)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", name, err)
		}
		f.log.Info("dataset parsed",
			"entry", name,
			"lines", stats.Lines,
			"kept", stats.Kept,
			"duplicates", stats.Duplicates,
		)
		return nil
	})
	return sales, stats, err
}

// Fetch downloads the ZIP archive at url to a temporary file and calls fn
// with the first .txt entry. The temporary file is removed on return.
func (f *Fetcher) Fetch(
	ctx context.Context,
	url string,
	fn func(name string, r io.Reader) error,
) error {
	archive, size, err := f.download(ctx, url)
	if err != nil {
		return err
	}
	defer os.Remove(archive) //nolint:errcheck // temp file cleanup

	f.log.Debug("dataset downloaded", "url", url, "bytes", size)

	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("opening dataset archive: %w", err)
	}
	defer zr.Close() //nolint:errcheck // read-only archive

	for _, entry := range zr.File {
		if !strings.EqualFold(path.Ext(entry.Name), ".txt") {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return fmt.Errorf("opening %s: %w", entry.Name, err)
		}
		err = fn(entry.Name, rc)
		_ = rc.Close()
		return err
	}
	return ErrNoTextEntry
}

func (f *Fetcher) download(ctx context.Context, url string) (string, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", 0, fmt.Errorf("creating download request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("downloading dataset: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("downloading dataset: unexpected status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(f.tempDir, "dvf-*.zip")
	if err != nil {
		return "", 0, fmt.Errorf("creating temp file: %w", err)
	}

	n, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", 0, fmt.Errorf("writing dataset archive: %w", err)
	}
	return tmp.Name(), n, nil
}
