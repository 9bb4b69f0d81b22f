package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/grizzco/salmon-rotation-bot/internal/rotation"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrDownload marks asset download failures.
var ErrDownload = errors.New("asset download failed")

const (
	stageFile         = "stage.png"
	weaponFilePattern = "weapon%d.png"
)

// Fetcher downloads remote images into the scratch directory at
// deterministic paths so the compositor can find them.
type Fetcher struct {
	httpClient *http.Client
	dir        string
	log        *zap.Logger
}

// NewFetcher creates a fetcher writing into dir, creating it if needed.
func NewFetcher(dir string, timeout time.Duration, log *zap.Logger) (*Fetcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating asset directory %s: %w", dir, err)
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		dir:        dir,
		log:        log,
	}, nil
}

// DownloadAll fetches the stage photo and every weapon icon for one
// rotation. Downloads run concurrently; DownloadAll returns only once all
// of them have finished, so rendering never starts on partial assets.
func (f *Fetcher) DownloadAll(ctx context.Context, entry rotation.Entry) (string, []string, error) {
	g, ctx := errgroup.WithContext(ctx)

	stagePath := filepath.Join(f.dir, stageFile)
	g.Go(func() error {
		return f.download(ctx, entry.StageImageURL, stagePath)
	})

	weaponPaths := make([]string, len(entry.Weapons))
	for i, w := range entry.Weapons {
		path := filepath.Join(f.dir, fmt.Sprintf(weaponFilePattern, i+1))
		weaponPaths[i] = path
		url := w.ImageURL
		g.Go(func() error {
			return f.download(ctx, url, path)
		})
	}

	if err := g.Wait(); err != nil {
		return "", nil, err
	}
	return stagePath, weaponPaths, nil
}

func (f *Fetcher) download(ctx context.Context, url, path string) error {
	f.log.Debug("downloading asset", zap.String("url", url), zap.String("path", path))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrDownload, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: GET %s: unexpected status %d", ErrDownload, url, resp.StatusCode)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrDownload, path, err)
	}
	return nil
}
