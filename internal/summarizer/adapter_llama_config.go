package summarizer

// LlamaConfig configures the in-process llama.cpp runtime.
type LlamaConfig struct {
	// WeightsFile names the GGUF file in the repository; falls back to
	// config.json's gguf_file.
	WeightsFile string
	Threads     int
	CtxSize     int
}

// LlamaBuilt reports whether the binary carries the llama.cpp runtime.
func LlamaBuilt() bool { return llamaBuilt }

func weightsFile(cfg LlamaConfig, art Artifacts) string {
	if cfg.WeightsFile != "" {
		return cfg.WeightsFile
	}
	if art.Snapshot != nil {
		return art.Snapshot.Model.GGUFFile
	}
	return ""
}
