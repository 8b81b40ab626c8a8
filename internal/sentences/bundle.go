// Package sentences splits text into sentences with punkt training data.
//
// The training data ("bundle") is fetched once at process start into the data
// directory when it is not already present; the English data compiled into
// github.com/neurosnap/sentences is used whenever no bundle is available.
package sentences

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"summaryd/internal/common/fsutil"
)

// DefaultBundleURL points at the English punkt parameters.
const DefaultBundleURL = "https://raw.githubusercontent.com/neurosnap/sentences/master/data/english.json"

// BundleFile is the bundle's file name inside the data directory.
const BundleFile = "punkt/english.json"

// EnsureBundle downloads the bundle from url into dataDir unless it exists.
// It returns the local path of the bundle.
func EnsureBundle(ctx context.Context, client *http.Client, dataDir, url string, log zerolog.Logger) (string, error) {
	local := filepath.Join(dataDir, filepath.FromSlash(BundleFile))
	if fsutil.FileExists(local) {
		return local, nil
	}
	if url == "" {
		url = DefaultBundleURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	log.Info().Str("url", url).Msg("sentence bundle not found locally, downloading")
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download sentence bundle: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download sentence bundle: unexpected status %s", resp.Status)
	}
	n, err := fsutil.WriteFileAtomic(local, resp.Body)
	if err != nil {
		return "", err
	}
	log.Info().Str("path", local).Int64("bytes", n).Dur("dur", time.Since(start)).Msg("sentence bundle downloaded")
	return local, nil
}
