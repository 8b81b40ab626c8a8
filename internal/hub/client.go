// Package hub fetches model repository artifacts from a Hugging Face compatible
// model hub and keeps them in a local on-disk cache.
//
// Files are addressed as {endpoint}/{repo}/resolve/{revision}/{file} and cached
// under {cache}/models--{org}--{name}/snapshots/{revision}/{file}. A cached file
// is never re-downloaded.
package hub

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"summaryd/internal/common/fsutil"
)

// DefaultEndpoint is the public Hugging Face hub.
const DefaultEndpoint = "https://huggingface.co"

// DefaultRevision is the branch fetched when none is configured.
const DefaultRevision = "main"

// Options configures a Client.
type Options struct {
	Endpoint string
	CacheDir string
	// Token is sent as a bearer token when set (private repositories).
	Token string
	// HTTPClient overrides the default transport (tests).
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client downloads repository files into the cache.
type Client struct {
	endpoint   string
	cacheDir   string
	token      string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient constructs a hub client. Requests carry no client-level timeout;
// deadlines come from the caller's context.
func NewClient(opts Options) *Client {
	ep := strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/")
	if ep == "" {
		ep = DefaultEndpoint
	}
	cli := opts.HTTPClient
	if cli == nil {
		tr := &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          16,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		}
		cli = &http.Client{Transport: tr, Timeout: 0}
	}
	return &Client{
		endpoint:   ep,
		cacheDir:   opts.CacheDir,
		token:      opts.Token,
		httpClient: cli,
		log:        opts.Logger,
	}
}

// FileURL returns the resolve URL of a repository file.
func (c *Client) FileURL(repoID, revision, file string) string {
	return c.endpoint + "/" + repoID + "/resolve/" + revision + "/" + file
}

// SnapshotDir returns the cache directory holding files of repoID@revision.
func (c *Client) SnapshotDir(repoID, revision string) string {
	return filepath.Join(c.cacheDir, "models--"+strings.ReplaceAll(repoID, "/", "--"), "snapshots", revision)
}

// Fetch returns the local path of file in repoID@revision, downloading it
// into the cache first when absent.
func (c *Client) Fetch(ctx context.Context, repoID, revision, file string) (string, error) {
	if err := validateRepoID(repoID); err != nil {
		return "", err
	}
	if revision == "" {
		revision = DefaultRevision
	}
	if file == "" || strings.Contains(file, "..") || strings.HasPrefix(file, "/") {
		return "", fmt.Errorf("invalid file name %q", file)
	}
	local := filepath.Join(c.SnapshotDir(repoID, revision), filepath.FromSlash(file))
	if fsutil.FileExists(local) {
		c.log.Debug().Str("repo", repoID).Str("file", file).Msg("hub cache hit")
		return local, nil
	}

	start := time.Now()
	url := c.FileURL(repoID, revision, file)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrNotFound(repoID, file)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// The hub answers 401 for repositories that do not exist or are private.
		return "", ErrNotFound(repoID, file)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	n, err := fsutil.WriteFileAtomic(local, resp.Body)
	if err != nil {
		return "", err
	}
	c.log.Info().
		Str("repo", repoID).
		Str("revision", revision).
		Str("file", file).
		Int64("bytes", n).
		Dur("dur", time.Since(start)).
		Msg("hub download")
	return local, nil
}

func validateRepoID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("empty repository id")
	}
	if strings.Contains(id, "..") || strings.HasPrefix(id, "/") || strings.HasSuffix(id, "/") {
		return fmt.Errorf("invalid repository id %q", id)
	}
	if strings.Count(id, "/") > 1 {
		return fmt.Errorf("invalid repository id %q", id)
	}
	return nil
}
