package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"summaryd/internal/config"
	"summaryd/internal/httpapi"
	"summaryd/internal/hub"
	"summaryd/internal/sentences"
	"summaryd/internal/summarizer"
	"summaryd/internal/tokenizer"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Short:   "Run the HTTP server (the model loads on the first request)",
		Example: "  summaryd serve --addr :5000 --runtime openai\n  SUMMARYD_REPO_ID=org/model summaryd serve",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			log := newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc, err := buildService(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer svc.Close()
			return runServer(ctx, cfg, svc, log)
		},
	}
}

// buildService wires the hub client, sentence splitter and tokenizer data
// into a summarizer. No model download happens here.
func buildService(ctx context.Context, cfg config.Config, log zerolog.Logger) (*summarizer.Service, error) {
	tokenizer.UseOfflineEncodings()

	bundle := ""
	if cfg.SentencesURL != "off" {
		p, err := sentences.EnsureBundle(ctx, nil, cfg.DataDir, cfg.SentencesURL, log)
		if err != nil {
			log.Warn().Err(err).Msg("sentence bundle unavailable, using built-in English data")
		} else {
			bundle = p
		}
	}
	splitter, err := sentences.NewSplitter(bundle)
	if err != nil {
		log.Warn().Err(err).Str("bundle", bundle).Msg("could not load sentence bundle, using built-in English data")
		if splitter, err = sentences.NewSplitter(""); err != nil {
			return nil, err
		}
	}

	hc := hub.NewClient(hub.Options{
		Endpoint: cfg.HubEndpoint,
		CacheDir: cfg.CacheDir,
		Token:    cfg.HubToken,
		Logger:   log,
	})
	return summarizer.New(summarizerConfig(cfg, hc, splitter, log))
}

// summarizerConfig maps process config onto summarizer.Config.
func summarizerConfig(cfg config.Config, hc *hub.Client, splitter *sentences.Splitter, log zerolog.Logger) summarizer.Config {
	return summarizer.Config{
		RepoID:            cfg.RepoID,
		Revision:          cfg.Revision,
		Hub:               hc,
		RuntimeName:       cfg.Runtime,
		TokenizerEncoding: cfg.TokenizerEncoding,
		MaxInputTokens:    cfg.MaxInputTokens,
		MaxOutputTokens:   cfg.MaxOutputTokens,
		NumBeams:          cfg.NumBeams,
		EarlyStopping:     cfg.EarlyStopping,
		InferTimeout:      time.Duration(cfg.InferTimeoutSeconds) * time.Second,
		FetchTimeout:      time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
		Splitter:          splitter,
		OpenAI: summarizer.OpenAIConfig{
			BaseURL: cfg.OpenAIBaseURL,
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
		},
		Llama: summarizer.LlamaConfig{
			WeightsFile: cfg.LlamaWeights,
			Threads:     cfg.LlamaThreads,
			CtxSize:     cfg.LlamaCtx,
		},
		Logger: log,
	}
}

func runServer(ctx context.Context, cfg config.Config, svc httpapi.Service, log zerolog.Logger) error {
	httpapi.SetLogger(log)
	httpapi.SetBaseContext(ctx)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(true, cfg.CORSOrigins, nil, nil)
	if cfg.LogLevel == "debug" {
		httpapi.SetRequestLogLevel("debug")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("repo", cfg.RepoID).Str("runtime", cfg.Runtime).Msg("summaryd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}
