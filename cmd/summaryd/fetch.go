package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"summaryd/internal/hub"
	"summaryd/internal/sentences"
)

// newFetchCmd pre-populates the hub cache and the sentence bundle so a
// server can start without network access.
func newFetchCmd(opts *options) *cobra.Command {
	var weights string
	cmd := &cobra.Command{
		Use:     "fetch",
		Short:   "Download the model repository and sentence data into the cache",
		Example: "  summaryd fetch --repo-id TheOCEAN/summarizer-portable",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			log := newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			hc := hub.NewClient(hub.Options{
				Endpoint: cfg.HubEndpoint,
				CacheDir: cfg.CacheDir,
				Token:    cfg.HubToken,
				Logger:   log,
			})
			if weights == "" {
				weights = cfg.LlamaWeights
			}
			var extra []string
			if weights != "" {
				extra = append(extra, weights)
			}
			snap, err := hc.Download(ctx, cfg.RepoID, cfg.Revision, extra...)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", cfg.RepoID, err)
			}
			if snap.Model.GGUFFile != "" && weights == "" {
				if _, err := hc.Fetch(ctx, cfg.RepoID, cfg.Revision, snap.Model.GGUFFile); err != nil {
					return fmt.Errorf("fetch weights: %w", err)
				}
			}
			if cfg.SentencesURL != "off" {
				if _, err := sentences.EnsureBundle(ctx, nil, cfg.DataDir, cfg.SentencesURL, log); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), snap.Dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&weights, "weights", "", "Extra repository file to fetch (e.g. a GGUF weights file)")
	return cmd
}
