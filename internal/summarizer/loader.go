package summarizer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"summaryd/internal/hub"
	"summaryd/internal/tokenizer"
)

// EnsureLoaded loads the tokenizer and model on first use. When the model is
// already loaded it is a no-op. Concurrent callers share one in-flight load;
// a failed load leaves the service empty and is retried by the next call.
//
// The load runs detached from ctx cancellation so one disconnecting client
// does not abort a load other requests are waiting on; FetchTimeout bounds it.
func (s *Service) EnsureLoaded(ctx context.Context) error {
	if s.model.Load() != nil {
		return nil
	}
	_, err, _ := s.loads.Do("load", func() (any, error) {
		if s.model.Load() != nil {
			return nil, nil
		}
		loadCtx := context.WithoutCancel(ctx)
		if s.fetchTimeout > 0 {
			var cancel context.CancelFunc
			loadCtx, cancel = context.WithTimeout(loadCtx, s.fetchTimeout)
			defer cancel()
		}
		return nil, s.load(loadCtx)
	})
	return err
}

func (s *Service) load(ctx context.Context) (err error) {
	loadID := uuid.NewString()
	attempt := s.attempts.Add(1)
	start := time.Now()
	log := s.log.With().Str("load_id", loadID).Str("repo", s.repoID).Str("runtime", s.runtime.Name()).Logger()
	log.Info().Uint64("attempt", attempt).Msg("loading model from hub")
	s.setState(StateLoading, "")

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during load: %v", r)
		}
		if err != nil {
			err = &LoadError{RepoID: s.repoID, Err: err}
			s.setState(StateError, err.Error())
			modelLoadsTotal.WithLabelValues("error").Inc()
			log.Error().Err(err).Dur("dur", time.Since(start)).
				Msgf("could not load the model; ensure the repository '%s' exists and is public", s.repoID)
			return
		}
		s.setState(StateReady, "")
		modelLoadsTotal.WithLabelValues("ok").Inc()
		modelLoadDuration.Observe(time.Since(start).Seconds())
		modelLoaded.Set(1)
		log.Info().Dur("dur", time.Since(start)).Msg("model and tokenizer loaded")
	}()

	snap, err := s.hub.Download(ctx, s.repoID, s.revision)
	if err != nil {
		return fmt.Errorf("fetch artifacts: %w", err)
	}

	enc := s.encoding
	if enc == "" && snap.Tokenizer != nil {
		enc = snap.Tokenizer.TiktokenEncoding
	}
	if enc == "" {
		enc = tokenizer.DefaultEncoding
	}
	tok, err := s.newTokenizer(enc)
	if err != nil {
		return fmt.Errorf("tokenizer: %w", err)
	}

	params := s.params
	params.MaxInputTokens = capInputTokens(params.MaxInputTokens, snap)
	ev := log.Info().Str("model_type", snap.Model.ModelType).
		Strs("architectures", snap.Model.Architectures).
		Bool("encoder_decoder", snap.Model.IsEncoderDecoder).
		Str("encoding", enc).
		Int("max_input_tokens", params.MaxInputTokens)
	if snap.Tokenizer != nil {
		ev = ev.Str("tokenizer_class", snap.Tokenizer.TokenizerClass)
	}
	ev.Msg("repository artifacts resolved")

	sess, err := s.runtime.Bind(ctx, Artifacts{
		Snapshot: snap,
		Fetch: func(ctx context.Context, file string) (string, error) {
			return s.hub.Fetch(ctx, s.repoID, s.revision, file)
		},
	})
	if err != nil {
		return fmt.Errorf("bind %s runtime: %w", s.runtime.Name(), err)
	}

	s.model.Store(&Model{
		RepoID:    s.repoID,
		Revision:  snap.Revision,
		ModelType: snap.Model.ModelType,
		Runtime:   s.runtime.Name(),
		Tokenizer: tok,
		Session:   sess,
		Params:    params,
		LoadedAt:  time.Now(),
	})
	return nil
}

// capInputTokens lowers n to the limits the repository declares: the
// tokenizer's model_max_length and the model's max_position_embeddings.
func capInputTokens(n int, snap *hub.Snapshot) int {
	limits := []int{snap.Model.MaxPositionEmbeddings}
	if snap.Tokenizer != nil {
		limits = append(limits, snap.Tokenizer.ModelMaxLength())
	}
	for _, l := range limits {
		if l > 0 && l < n {
			n = l
		}
	}
	return n
}
