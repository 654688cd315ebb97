package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/yndnr/respkv-go/internal/telemetry/logger"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Metrics serves GET /metrics. Nil disables the route.
	Metrics http.Handler

	// Ready reports readiness for GET /ready. Nil means always ready.
	Ready func() bool

	// Logger for request logging.
	Logger logger.Logger

	// EnableAccessLog logs every request at debug level.
	EnableAccessLog bool
}

// NewRouter creates the operations router.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	mws := []Middleware{RequestID(log), Recover()}
	if cfg.EnableAccessLog {
		mws = append(mws, AccessLog())
	}

	mux := http.NewServeMux()
	mux.Handle("GET /health", Chain(http.HandlerFunc(handleHealth), mws...))
	mux.Handle("GET /ready", Chain(readyHandler(cfg.Ready), mws...))
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", Chain(cfg.Metrics, mws...))
	}
	return mux
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, "healthy")
}

func readyHandler(ready func() bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if ready != nil && !ready() {
			writeJSON(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		writeJSON(w, http.StatusOK, "ready")
	})
}

func writeJSON(w http.ResponseWriter, status int, state string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": state,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
