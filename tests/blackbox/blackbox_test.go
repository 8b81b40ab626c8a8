package blackbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"summaryd/internal/hub/hubtest"
)

const repoID = "acme/summarizer"

// findFreePort picks an available TCP port on localhost.
func findFreePort(t *testing.T) (int, func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	return port, func() { _ = ln.Close() }
}

func projectRootFromThisFile(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	// this file: <root>/tests/blackbox/blackbox_test.go
	return filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
}

func buildBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("black-box tests build the binary; skipped in -short mode")
	}
	binPath := filepath.Join(t.TempDir(), "summaryd")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/summaryd")
	cmd.Dir = projectRootFromThisFile(t)
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("go build failed: %v\n%s", err, string(out))
	}
	return binPath
}

type serverProc struct {
	cmd  *exec.Cmd
	base string // http base URL, e.g. http://127.0.0.1:18080
}

func startServer(t *testing.T, bin, hubURL string) *serverProc {
	t.Helper()
	port, release := findFreePort(t)
	release()
	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	cmd := exec.Command(bin, "serve", "--addr", fmt.Sprintf("127.0.0.1:%d", port), "--repo-id", repoID, "--log-format", "json")
	cmd.Env = append(os.Environ(),
		"SUMMARYD_HUB_ENDPOINT="+hubURL,
		"SUMMARYD_CACHE_DIR="+t.TempDir(),
		"SUMMARYD_DATA_DIR="+t.TempDir(),
		"SUMMARYD_SENTENCES_URL=off",
		"SUMMARYD_RUNTIME=extractive",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	t.Cleanup(func() { _ = cmd.Process.Kill(); _ = cmd.Wait() })

	deadline := time.Now().Add(10 * time.Second)
	for {
		resp, err := http.Get(base + "/healthz")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not become healthy in time")
		}
		time.Sleep(50 * time.Millisecond)
	}
	return &serverProc{cmd: cmd, base: base}
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func postJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func TestBlackbox_Flow(t *testing.T) {
	bin := buildBinary(t)
	hub := hubtest.NewServer()
	defer hub.Close()
	hub.AddRepo(repoID, hubtest.SummarizerRepo())
	sp := startServer(t, bin, hub.URL)

	// Lazy: nothing is fetched before the first summarize request.
	resp, body := get(t, sp.base+"/readyz")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("/readyz initial %d %s", resp.StatusCode, string(body))
	}
	if n := hub.Hits(repoID, "config.json"); n != 0 {
		t.Fatalf("config.json fetched %d times before first request", n)
	}

	resp, body = postJSON(t, sp.base+"/summarize", []byte(`{"text":"The cat sat on the mat.   The dog ran\nto the park. It rained!"}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/summarize %d %s", resp.StatusCode, string(body))
	}
	var out struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("/summarize json: %v body=%s", err, string(body))
	}
	if out.Summary != "The cat sat on the mat. The dog ran to the park." {
		t.Fatalf("summary=%q", out.Summary)
	}

	resp, _ = get(t, sp.base+"/readyz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/readyz after load %d", resp.StatusCode)
	}

	// A second request reuses the loaded model.
	resp, body = postJSON(t, sp.base+"/summarize", []byte(`{"text":"One. Two. Three."}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/summarize second %d %s", resp.StatusCode, string(body))
	}
	if n := hub.Hits(repoID, "config.json"); n != 1 {
		t.Fatalf("config.json fetched %d times, want 1", n)
	}

	resp, body = postJSON(t, sp.base+"/summarize", []byte(`{"body":"no text field"}`))
	if resp.StatusCode != http.StatusBadRequest || !strings.Contains(string(body), "No text provided") {
		t.Fatalf("missing text: %d %s", resp.StatusCode, string(body))
	}

	resp, body = get(t, sp.base+"/status")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/status %d %s", resp.StatusCode, string(body))
	}
	var st struct {
		Loaded    bool   `json:"loaded"`
		RepoID    string `json:"repo_id"`
		ModelType string `json:"model_type"`
	}
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("/status json: %v", err)
	}
	if !st.Loaded || st.RepoID != repoID || st.ModelType != "pegasus" {
		t.Fatalf("unexpected status: %s", string(body))
	}
}

func TestBlackbox_MissingRepo_503ThenRecovers(t *testing.T) {
	bin := buildBinary(t)
	hub := hubtest.NewServer()
	defer hub.Close()
	sp := startServer(t, bin, hub.URL)

	resp, body := postJSON(t, sp.base+"/summarize", []byte(`{"text":"Hello there. General Kenobi."}`))
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d, body=%s", resp.StatusCode, string(body))
	}
	if !strings.Contains(string(body), "could not be loaded") {
		t.Fatalf("unexpected error body: %s", string(body))
	}

	// The failed load is retried on the next request.
	hub.AddRepo(repoID, hubtest.SummarizerRepo())
	resp, body = postJSON(t, sp.base+"/summarize", []byte(`{"text":"Hello there. General Kenobi."}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 after repo appeared, got %d, body=%s", resp.StatusCode, string(body))
	}
}
