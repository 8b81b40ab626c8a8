package hub

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"summaryd/internal/hub/hubtest"
)

const testRepo = "acme/summarizer"

func newTestClient(t *testing.T, srv *hubtest.Server) *Client {
	t.Helper()
	return NewClient(Options{Endpoint: srv.URL, CacheDir: t.TempDir(), Logger: zerolog.Nop()})
}

func TestFetch_DownloadsOnceThenCaches(t *testing.T) {
	srv := hubtest.NewServer()
	defer srv.Close()
	srv.AddRepo(testRepo, hubtest.SummarizerRepo())
	c := newTestClient(t, srv)

	p1, err := c.Fetch(context.Background(), testRepo, "", ConfigFile)
	require.NoError(t, err)
	p2, err := c.Fetch(context.Background(), testRepo, "main", ConfigFile)
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	assert.Equal(t, 1, srv.Hits(testRepo, ConfigFile))
	assert.Equal(t, filepath.Join(c.SnapshotDir(testRepo, "main"), ConfigFile), p1)

	b, err := os.ReadFile(p1)
	require.NoError(t, err)
	assert.Contains(t, string(b), "pegasus")
}

func TestFetch_NotFound(t *testing.T) {
	srv := hubtest.NewServer()
	defer srv.Close()
	srv.AddRepo(testRepo, map[string]string{ConfigFile: `{}`})
	c := newTestClient(t, srv)

	_, err := c.Fetch(context.Background(), testRepo, "main", "missing.bin")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	_, err = c.Fetch(context.Background(), "nobody/nothing", "main", ConfigFile)
	require.Error(t, err)
	assert.True(t, IsNotFound(err), "unknown repository should map to not found: %v", err)
}

func TestFetch_ServerErrorIsNotCached(t *testing.T) {
	srv := hubtest.NewServer()
	defer srv.Close()
	srv.AddRepo(testRepo, hubtest.SummarizerRepo())
	c := newTestClient(t, srv)

	srv.SetDown(true)
	_, err := c.Fetch(context.Background(), testRepo, "main", ConfigFile)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))

	srv.SetDown(false)
	_, err = c.Fetch(context.Background(), testRepo, "main", ConfigFile)
	require.NoError(t, err)
	assert.Equal(t, 2, srv.Hits(testRepo, ConfigFile))
}

func TestFetch_RejectsBadNames(t *testing.T) {
	c := NewClient(Options{Endpoint: "http://127.0.0.1:1", CacheDir: t.TempDir(), Logger: zerolog.Nop()})
	for _, repo := range []string{"", "  ", "../etc", "/abs", "a/b/c", "trailing/"} {
		_, err := c.Fetch(context.Background(), repo, "main", ConfigFile)
		assert.Error(t, err, "repo %q", repo)
	}
	_, err := c.Fetch(context.Background(), testRepo, "main", "../../secret")
	assert.Error(t, err)
}

func TestFetch_ContextCanceled(t *testing.T) {
	srv := hubtest.NewServer()
	defer srv.Close()
	srv.AddRepo(testRepo, hubtest.SummarizerRepo())
	c := newTestClient(t, srv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Fetch(ctx, testRepo, "main", ConfigFile)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDownload_ParsesConfigs(t *testing.T) {
	srv := hubtest.NewServer()
	defer srv.Close()
	srv.AddRepo(testRepo, hubtest.SummarizerRepo())
	c := newTestClient(t, srv)

	snap, err := c.Download(context.Background(), testRepo, "")
	require.NoError(t, err)
	assert.Equal(t, "main", snap.Revision)
	assert.Equal(t, "pegasus", snap.Model.ModelType)
	assert.True(t, snap.Model.IsEncoderDecoder)
	assert.Equal(t, 1024, snap.Model.MaxPositionEmbeddings)
	require.NotNil(t, snap.Tokenizer)
	assert.Equal(t, 1024, snap.Tokenizer.ModelMaxLength())
	_, ok := snap.Path(TokenizerConfigFile)
	assert.True(t, ok)
}

func TestDownload_OptionalConfigsMayBeAbsent(t *testing.T) {
	srv := hubtest.NewServer()
	defer srv.Close()
	srv.AddRepo(testRepo, map[string]string{ConfigFile: `{"model_type":"bart"}`})
	c := newTestClient(t, srv)

	snap, err := c.Download(context.Background(), testRepo, "main")
	require.NoError(t, err)
	assert.Nil(t, snap.Tokenizer)
}

func TestDownload_RequiredFilesMustExist(t *testing.T) {
	srv := hubtest.NewServer()
	defer srv.Close()
	srv.AddRepo(testRepo, map[string]string{ConfigFile: `{"model_type":"llama"}`})
	c := newTestClient(t, srv)

	_, err := c.Download(context.Background(), testRepo, "main", "model.gguf")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	srv.AddRepo(testRepo, map[string]string{ConfigFile: `not json`})
	c = newTestClient(t, srv)
	_, err = c.Download(context.Background(), testRepo, "main")
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestDownload_UnboundedModelMaxLength(t *testing.T) {
	srv := hubtest.NewServer()
	defer srv.Close()
	files := hubtest.SummarizerRepo()
	files[TokenizerConfigFile] = `{"tokenizer_class":"PegasusTokenizer","model_max_length":1000000000000000019884624838656}`
	srv.AddRepo(testRepo, files)
	c := newTestClient(t, srv)

	snap, err := c.Download(context.Background(), testRepo, "main")
	require.NoError(t, err)
	require.NotNil(t, snap.Tokenizer)
	assert.Equal(t, 0, snap.Tokenizer.ModelMaxLength())
}

func TestTokenizerConfig_ModelMaxLength(t *testing.T) {
	cases := map[string]int{
		"":      0,
		"512":   512,
		"512.0": 512,
		"-1":    0,
		"1e30":  0,
	}
	for raw, want := range cases {
		tc := TokenizerConfig{RawModelMaxLength: json.Number(raw)}
		assert.Equal(t, want, tc.ModelMaxLength(), "raw=%q", raw)
	}
}
