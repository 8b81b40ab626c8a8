package summarizer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"summaryd/internal/hub"
	"summaryd/internal/hub/hubtest"
	"summaryd/internal/tokenizer"
)

const testRepo = "acme/summarizer"

// runeTokenizer maps each rune to its code point; 0 is the only special token.
type runeTokenizer struct{ encodeErr error }

func (r runeTokenizer) Encode(text string) ([]int32, error) {
	if r.encodeErr != nil {
		return nil, r.encodeErr
	}
	return []int32(text), nil
}
func (runeTokenizer) Decode(tokens []int32) (string, error) { return string(tokens), nil }
func (runeTokenizer) IsSpecialToken(tok int32) bool        { return tok == 0 }
func (runeTokenizer) Name() string                         { return "runes" }

func runeTokenizerFactory(string) (tokenizer.Tokenizer, error) { return runeTokenizer{}, nil }

// fakeRuntime is a lightweight in-memory runtime used for tests.
type fakeRuntime struct {
	binds     atomic.Int32
	bindDelay time.Duration
	bindErr   error
	session   *fakeSession
}

func (f *fakeRuntime) Name() string { return "fake" }

func (f *fakeRuntime) Bind(ctx context.Context, art Artifacts) (Session, error) {
	f.binds.Add(1)
	if f.bindDelay > 0 {
		time.Sleep(f.bindDelay)
	}
	if f.bindErr != nil {
		return nil, f.bindErr
	}
	if f.session == nil {
		f.session = &fakeSession{}
	}
	return f.session, nil
}

type fakeSession struct {
	mu     sync.Mutex
	out    string
	genErr error
	panics bool
	lastIn Input
	lastP  GenerateParams
	closed bool
	calls  int
}

func (s *fakeSession) Generate(ctx context.Context, in Input, p GenerateParams) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastIn, s.lastP = in, p
	if s.panics {
		panic("boom")
	}
	if s.genErr != nil {
		return "", s.genErr
	}
	if s.out != "" {
		return s.out, nil
	}
	return "summary of: " + in.Text, nil
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

func (s *fakeSession) input() Input {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastIn
}

var errBind = errors.New("incompatible artifacts")

// newTestService wires a service to an in-memory hub serving testRepo.
func newTestService(t *testing.T, rt Runtime, mutate func(*Config)) (*Service, *hubtest.Server) {
	t.Helper()
	srv := hubtest.NewServer()
	t.Cleanup(srv.Close)
	srv.AddRepo(testRepo, hubtest.SummarizerRepo())
	cfg := Config{
		RepoID:       testRepo,
		Hub:          hub.NewClient(hub.Options{Endpoint: srv.URL, CacheDir: t.TempDir(), Logger: zerolog.Nop()}),
		Runtime:      rt,
		NewTokenizer: runeTokenizerFactory,
		Logger:       zerolog.Nop(),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, srv
}
