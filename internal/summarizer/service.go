package summarizer

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"summaryd/internal/hub"
	"summaryd/internal/tokenizer"
	"summaryd/pkg/types"
)

// State represents the loader lifecycle.
type State string

const (
	StateUnloaded State = "unloaded"
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateError    State = "error"
)

// Model is the immutable handle published after a successful load.
type Model struct {
	RepoID    string
	Revision  string
	ModelType string
	Runtime   string
	Tokenizer tokenizer.Tokenizer
	Session   Session
	Params    GenerateParams
	LoadedAt  time.Time
}

// Service lazily loads the model and serves summaries.
type Service struct {
	repoID       string
	revision     string
	hub          *hub.Client
	runtime      Runtime
	encoding     string
	newTokenizer func(string) (tokenizer.Tokenizer, error)
	params       GenerateParams
	inferTimeout time.Duration
	fetchTimeout time.Duration
	log          zerolog.Logger
	startTime    time.Time

	model    atomic.Pointer[Model]
	loads    singleflight.Group
	attempts atomic.Uint64

	mu      sync.RWMutex
	state   State
	lastErr string
}

// Ready reports whether the model is loaded. It never triggers a load.
func (s *Service) Ready() bool { return s.model.Load() != nil }

// Model returns the loaded model handle, or nil.
func (s *Service) Model() *Model { return s.model.Load() }

// Status builds the /status payload.
func (s *Service) Status() types.StatusResponse {
	s.mu.RLock()
	state, lastErr := s.state, s.lastErr
	s.mu.RUnlock()
	now := time.Now()
	resp := types.StatusResponse{
		State:          string(state),
		RepoID:         s.repoID,
		Revision:       s.revision,
		Runtime:        s.runtime.Name(),
		LoadAttempts:   s.attempts.Load(),
		LastError:      lastErr,
		UptimeSeconds:  int64(now.Sub(s.startTime) / time.Second),
		ServerTimeUnix: now.Unix(),
	}
	if m := s.model.Load(); m != nil {
		resp.Loaded = true
		resp.ModelType = m.ModelType
		resp.LoadedAtUnix = m.LoadedAt.Unix()
	}
	return resp
}

// Close releases the loaded session, if any.
func (s *Service) Close() error {
	if m := s.model.Load(); m != nil && m.Session != nil {
		return m.Session.Close()
	}
	return nil
}

func (s *Service) setState(st State, errMsg string) {
	s.mu.Lock()
	s.state = st
	s.lastErr = errMsg
	s.mu.Unlock()
}
