// Package summarizer owns the summarization model: it loads the model lazily
// from a remote repository, keeps the loaded handle for the process lifetime,
// and runs the normalize → tokenize → generate → detokenize pipeline.
//
// Files by concern:
//
//   - config.go: Config, package defaults; New applies defaults.
//   - service.go: Service type, readiness and status reporting.
//   - loader.go: EnsureLoaded, the serialized lazy load.
//   - summarize.go: the per-request pipeline.
//   - errors.go: typed errors mapped to HTTP statuses by the API layer.
//   - adapter_iface.go: Runtime and Session interfaces, generation params.
//   - adapter_extractive.go: lead-sentence runtime (always available).
//   - adapter_openai.go: OpenAI-compatible completion server runtime.
//   - adapter_llama.go / adapter_llama_stub.go: in-process llama.cpp runtime.
//   - metrics.go: Prometheus collectors for loads and generation.
//
// Build tags and runtimes:
//
//   - In-process llama: uses go-llama.cpp and GGUF weights fetched from the
//     repository. Enabled with `-tags=llama`. Without the tag a stub fails
//     every bind with a dependency-unavailable error, which surfaces as a
//     load failure (503).
//
// The loaded model is published once through an atomic pointer and shared
// read-only by all requests; concurrent first requests share a single load.
package summarizer
