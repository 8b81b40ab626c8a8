// Package hubtest provides an in-memory model hub for tests.
package hubtest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Server serves repository files at /{repo}/resolve/{revision}/{file}.
type Server struct {
	*httptest.Server

	mu    sync.Mutex
	repos map[string]map[string]string
	hits  map[string]int
	down  bool
}

// NewServer starts a hub serving no repositories. Callers must Close it.
func NewServer() *Server {
	s := &Server{repos: make(map[string]map[string]string), hits: make(map[string]int)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// AddRepo registers (or replaces) the files of a repository.
func (s *Server) AddRepo(repoID string, files map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make(map[string]string, len(files))
	for k, v := range files {
		cp[k] = v
	}
	s.repos[repoID] = cp
}

// SetDown makes every request fail with 503 until called with false.
func (s *Server) SetDown(down bool) {
	s.mu.Lock()
	s.down = down
	s.mu.Unlock()
}

// Hits returns how many times a repository file was requested.
func (s *Server) Hits(repoID, file string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[repoID+"/"+file]
}

// SummarizerRepo returns a minimal seq2seq repository layout.
func SummarizerRepo() map[string]string {
	return map[string]string{
		"config.json":           `{"model_type":"pegasus","architectures":["PegasusForConditionalGeneration"],"is_encoder_decoder":true,"vocab_size":96103,"max_position_embeddings":1024,"eos_token_id":1,"pad_token_id":0,"decoder_start_token_id":0}`,
		"tokenizer_config.json": `{"tokenizer_class":"PegasusTokenizer","model_max_length":1024}`,
	}
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")
	idx := strings.Index(path, "/resolve/")
	if idx < 0 {
		http.NotFound(w, r)
		return
	}
	repo := path[:idx]
	rest := strings.TrimPrefix(path[idx:], "/resolve/")
	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		http.NotFound(w, r)
		return
	}
	file := rest[slash+1:]

	s.mu.Lock()
	s.hits[repo+"/"+file]++
	down := s.down
	files, ok := s.repos[repo]
	body, found := "", false
	if ok {
		body, found = files[file]
	}
	s.mu.Unlock()

	if down {
		http.Error(w, "hub unavailable", http.StatusServiceUnavailable)
		return
	}
	if !ok {
		// Mirrors the public hub: unknown repositories answer 401.
		http.Error(w, "Repository not found", http.StatusUnauthorized)
		return
	}
	if !found {
		http.Error(w, "Entry not found", http.StatusNotFound)
		return
	}
	_, _ = w.Write([]byte(body))
}
