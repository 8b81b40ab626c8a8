package main

import (
	"strings"

	"github.com/spf13/cobra"

	"summaryd/internal/common/fsutil"
	"summaryd/internal/config"
)

// options collects command-line flags. Flags that were set explicitly
// override the config file and SUMMARYD_* environment variables.
type options struct {
	configPath  string
	addr        string
	repoID      string
	revision    string
	runtime     string
	cacheDir    string
	logLevel    string
	logFormat   string
	corsOrigins string
}

func newRootCmd() *cobra.Command { return newRootCmdWith(&options{}) }

// newRootCmdWith builds the command tree with flags bound to opts.
func newRootCmdWith(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "summaryd",
		Short:         "HTTP text summarization service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to a YAML/JSON/TOML config file")
	pf.StringVar(&opts.repoID, "repo-id", "", "Model repository on the hub (default "+config.DefaultRepoID+")")
	pf.StringVar(&opts.revision, "revision", "", "Repository revision (default main)")
	pf.StringVar(&opts.runtime, "runtime", "", "Generation runtime: extractive|openai|llama")
	pf.StringVar(&opts.cacheDir, "cache-dir", "", "Hub cache directory")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	pf.StringVar(&opts.logFormat, "log-format", "", "Log format: console|json")

	pf.StringVar(&opts.addr, "addr", "", "HTTP listen address (default "+config.DefaultAddr+")")
	pf.StringVar(&opts.corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins (default *)")

	serve := newServeCmd(opts)
	// Running the bare binary serves, like `summaryd serve`.
	root.RunE = serve.RunE
	root.AddCommand(serve, newFetchCmd(opts))
	return root
}

// resolveConfig merges file, environment and flags, then applies defaults.
func resolveConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	var cfg config.Config
	if opts.configPath != "" {
		p, err := fsutil.ExpandHome(opts.configPath)
		if err != nil {
			return cfg, err
		}
		cfg, err = config.Load(p)
		if err != nil {
			return cfg, err
		}
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	override := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	override("addr", &cfg.Addr, opts.addr)
	override("repo-id", &cfg.RepoID, opts.repoID)
	override("revision", &cfg.Revision, opts.revision)
	override("runtime", &cfg.Runtime, opts.runtime)
	override("cache-dir", &cfg.CacheDir, opts.cacheDir)
	override("log-level", &cfg.LogLevel, opts.logLevel)
	override("log-format", &cfg.LogFormat, opts.logFormat)
	if flags.Changed("cors-origins") {
		cfg.CORSOrigins = splitCSV(opts.corsOrigins)
	}
	cfg = cfg.WithDefaults()
	for _, dir := range []*string{&cfg.CacheDir, &cfg.DataDir} {
		p, err := fsutil.ExpandHome(*dir)
		if err != nil {
			return cfg, err
		}
		*dir = p
	}
	return cfg, nil
}

// splitCSV splits a comma-separated list and trims spaces. Empty entries are dropped.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
