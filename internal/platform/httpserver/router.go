package httpserver

import (
	"net/http"
	"os"
	"runtime/debug"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/example/forum-platform/internal/platform/api"
)

// RouterConfig tunes SetupRouter. The zero value is valid.
type RouterConfig struct {
	// ReadyFunc backs /readyz; nil means always ready.
	ReadyFunc func() error
	// CORSOrigins is a comma separated list; empty falls back to
	// CORS_ALLOWED_ORIGINS and then to "*".
	CORSOrigins string
	Logger      *zap.Logger
}

// SetupRouter attaches base middlewares and common endpoints.
// IMPORTANT: must be called before registering any routes.
func SetupRouter(r chi.Router, cfgs ...RouterConfig) {
	var cfg RouterConfig
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	origins := cfg.CORSOrigins
	if strings.TrimSpace(origins) == "" {
		origins = os.Getenv("CORS_ALLOWED_ORIGINS")
	}

	r.Use(RequestIDMiddleware("X-Request-Id"))
	r.Use(AccessLog(cfg.Logger))
	r.Use(recoverer(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   parseCORSOrigins(origins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		api.NotFound(w, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		api.Fail(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if cfg.ReadyFunc != nil {
			if err := cfg.ReadyFunc(); err != nil {
				cfg.Logger.Warn("readiness check failed",
					zap.String("request_id", RequestIDFromContext(r.Context())),
					zap.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("not ready"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
}

func recoverer(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				rid := RequestIDFromContext(r.Context())
				log.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("request_id", rid),
					zap.ByteString("stack", debug.Stack()))
				api.Internal(w, rid)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func parseCORSOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
