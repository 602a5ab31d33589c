package http

import (
	"context"
	"net/http"
	"time"

	"github.com/creativestories/backend/internal/common/logger"
)

// HealthHandler reports liveness plus, when a ping func is supplied, store
// reachability. A failing store ping degrades the response to 503.
func HealthHandler(log *logger.Logger, pingStore func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		if pingStore == nil {
			WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := pingStore(ctx); err != nil {
			log.Warnf("health check: store ping failed: %v", err)
			WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"store":  "unreachable",
			})
			return
		}

		WriteJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"store":  "ok",
		})
	}
}
