package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\nrepo_id: acme/sum\nruntime: openai\nnum_beams: 2\nearly_stopping: false\ncors_origins: [\"http://a\", \"http://b\"]\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.RepoID != "acme/sum" || cfg.Runtime != "openai" || cfg.NumBeams != 2 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.EarlyStopping == nil || *cfg.EarlyStopping {
		t.Fatalf("early_stopping should be explicit false")
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("cors_origins=%v", cfg.CORSOrigins)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","revision":"v2","max_input_tokens":512,"max_output_tokens":64,"infer_timeout_seconds":30}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.Revision != "v2" || cfg.MaxInputTokens != 512 || cfg.MaxOutputTokens != 64 || cfg.InferTimeoutSeconds != 30 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nhub_endpoint=\"http://hub\"\nllama_threads=8\nllama_weights=\"w.gguf\"\nlog_format=\"json\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.HubEndpoint != "http://hub" || cfg.LlamaThreads != 8 || cfg.LlamaWeights != "w.gguf" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
	if _, err := Load("/definitely/not/a/real/file-12345.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent file")
	}
}

func TestLoad_InvalidContent(t *testing.T) {
	d := t.TempDir()
	cases := map[string]string{
		"bad.yaml": "addr: :8080\n: broken\n",
		"bad.json": `{ "addr": ":8080", "repo_id": }`,
		"bad.toml": "addr=:8080\nrepo_id\n",
	}
	for name, content := range cases {
		if _, err := Load(writeTempFile(t, d, name, content)); err == nil {
			t.Fatalf("%s: expected unmarshal error", name)
		}
	}
}
