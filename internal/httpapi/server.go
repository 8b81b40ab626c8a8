package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"summaryd/internal/summarizer"
	"summaryd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	EnsureLoaded(ctx context.Context) error
	Summarize(ctx context.Context, text string) (string, error)
	Status() types.StatusResponse
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}
	r.Use(middleware.Compress(5))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	h := &handlers{svc: svc}
	r.Post("/summarize", h.summarize)
	r.Get("/status", h.status)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	MountSwagger(r)

	return r
}

type handlers struct {
	svc Service
}

// summarize godoc
//
//	@Summary		Summarize text
//	@Description	Loads the model on first use, then returns an abstractive summary of the given text.
//	@Tags			summarize
//	@Accept			json
//	@Produce		json
//	@Param			request	body		types.SummarizeRequest	true	"Text to summarize"
//	@Success		200		{object}	types.SummarizeResponse
//	@Failure		400		{object}	types.ErrorResponse
//	@Failure		415		{object}	types.ErrorResponse
//	@Failure		500		{object}	types.ErrorResponse
//	@Failure		503		{object}	types.ErrorResponse
//	@Router			/summarize [post]
func (h *handlers) summarize(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	lvl := requestLogLevel(r)
	log := reqLogger(r)

	// Join server base context with request context so shutdown cancels work too.
	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()

	// The model is made ready before the body is looked at.
	if err := h.svc.EnsureLoaded(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		summarizeErrorsTotal.WithLabelValues("load").Inc()
		log.Error().Err(err).Msg("summarize: model not ready")
		writeJSONError(w, http.StatusServiceUnavailable, summarizer.MsgModelNotReady)
		return
	}

	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		summarizeErrorsTotal.WithLabelValues("validation").Inc()
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		summarizeErrorsTotal.WithLabelValues("validation").Inc()
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		summarizeErrorsTotal.WithLabelValues("validation").Inc()
		writeJSONError(w, http.StatusBadRequest, summarizer.MsgNoText)
		return
	}

	if lvl >= LevelInfo {
		log.Info().Int("text_len", len(req.Text)).Msg("summarize start")
	}
	summary, err := h.svc.Summarize(ctx, req.Text)
	if err != nil {
		// Client disconnect or shutdown: nobody is left to answer.
		if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
			return
		}
		status, msg, kind := errorStatus(err)
		summarizeErrorsTotal.WithLabelValues(kind).Inc()
		if lvl >= LevelError {
			log.Error().Err(err).Int("status", status).Dur("dur", time.Since(start)).Msg("summarize end")
		}
		writeJSONError(w, status, msg)
		return
	}
	if lvl >= LevelInfo {
		log.Info().Int("status", http.StatusOK).Int("summary_len", len(summary)).Dur("dur", time.Since(start)).Msg("summarize end")
	}
	if lvl >= LevelDebug {
		log.Debug().Str("summary", summary).Msg("summarize output")
	}
	writeJSON(w, http.StatusOK, types.SummarizeResponse{Summary: summary})
}

// status godoc
//
//	@Summary	Loader status
//	@Tags		status
//	@Produce	json
//	@Success	200	{object}	types.StatusResponse
//	@Router		/status [get]
func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Status())
}
