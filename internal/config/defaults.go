package config

import "strings"

const (
	DefaultAddr            = ":5000"
	DefaultRepoID          = "TheOCEAN/summarizer-portable"
	DefaultRevision        = "main"
	DefaultHubEndpoint     = "https://huggingface.co"
	DefaultCacheDir        = "~/.cache/summaryd/hub"
	DefaultDataDir         = "~/.local/share/summaryd"
	DefaultRuntime         = "extractive"
	DefaultMaxInputTokens  = 1024
	DefaultMaxOutputTokens = 150
	DefaultNumBeams        = 4
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"
)

// WithDefaults returns a copy of cfg with unset fields filled in.
func (c Config) WithDefaults() Config {
	setStr(&c.Addr, DefaultAddr)
	setStr(&c.RepoID, DefaultRepoID)
	setStr(&c.Revision, DefaultRevision)
	setStr(&c.HubEndpoint, DefaultHubEndpoint)
	setStr(&c.CacheDir, DefaultCacheDir)
	setStr(&c.DataDir, DefaultDataDir)
	setStr(&c.Runtime, DefaultRuntime)
	setStr(&c.LogLevel, DefaultLogLevel)
	setStr(&c.LogFormat, DefaultLogFormat)
	c.Runtime = strings.ToLower(c.Runtime)
	if c.MaxInputTokens <= 0 {
		c.MaxInputTokens = DefaultMaxInputTokens
	}
	if c.MaxOutputTokens <= 0 {
		c.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if c.NumBeams <= 0 {
		c.NumBeams = DefaultNumBeams
	}
	if c.EarlyStopping == nil {
		t := true
		c.EarlyStopping = &t
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}
	return c
}

func setStr(p *string, def string) {
	if strings.TrimSpace(*p) == "" {
		*p = def
	}
}
