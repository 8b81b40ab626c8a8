package config

import "github.com/caarlos0/env/v11"

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "SUMMARYD_"

// ApplyEnv overlays SUMMARYD_* environment variables onto cfg. Variables
// that are unset leave the corresponding field untouched.
func ApplyEnv(cfg *Config) error {
	return env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix})
}

// FromEnv returns a Config populated only from the environment.
func FromEnv() (Config, error) {
	var cfg Config
	err := ApplyEnv(&cfg)
	return cfg, err
}
