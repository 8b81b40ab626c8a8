package hub

import (
	"context"
	"fmt"
)

// Snapshot is a set of repository files resolved into the local cache.
type Snapshot struct {
	RepoID   string
	Revision string
	Dir      string
	// Files maps repository file names to local paths.
	Files map[string]string

	Model     ModelConfig
	Tokenizer *TokenizerConfig
}

// Path returns the local path of a fetched file.
func (s *Snapshot) Path(file string) (string, bool) {
	p, ok := s.Files[file]
	return p, ok
}

// Download fetches config.json (required), the optional tokenizer config,
// and any extra files. A missing tokenizer config is skipped; any other
// failure aborts the download.
func (c *Client) Download(ctx context.Context, repoID, revision string, extra ...string) (*Snapshot, error) {
	if revision == "" {
		revision = DefaultRevision
	}
	snap := &Snapshot{
		RepoID:   repoID,
		Revision: revision,
		Dir:      c.SnapshotDir(repoID, revision),
		Files:    make(map[string]string),
	}

	p, err := c.Fetch(ctx, repoID, revision, ConfigFile)
	if err != nil {
		return nil, err
	}
	snap.Files[ConfigFile] = p
	if err := decodeJSONFile(p, &snap.Model); err != nil {
		return nil, fmt.Errorf("model config: %w", err)
	}

	p, err = c.Fetch(ctx, repoID, revision, TokenizerConfigFile)
	switch {
	case IsNotFound(err):
	case err != nil:
		return nil, err
	default:
		snap.Files[TokenizerConfigFile] = p
		var tc TokenizerConfig
		if err := decodeJSONFile(p, &tc); err != nil {
			return nil, fmt.Errorf("tokenizer config: %w", err)
		}
		snap.Tokenizer = &tc
	}

	for _, f := range extra {
		if f == "" {
			continue
		}
		p, err := c.Fetch(ctx, repoID, revision, f)
		if err != nil {
			return nil, err
		}
		snap.Files[f] = p
	}
	return snap, nil
}
