package http

import (
	"net/http"
	"time"

	"github.com/yourfavcrm/crm/internal/crm/store"
	"github.com/yourfavcrm/crm/pkg/httpx"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// HealthHandler reports liveness. A failing store ping turns it into a 503 so
// orchestrators stop routing traffic to a broken instance.
func HealthHandler(st store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC().Format(time.RFC3339)

		if err := st.Ping(r.Context()); err != nil {
			httpx.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{
				Status:    "unavailable",
				Timestamp: now,
			})
			return
		}

		httpx.WriteJSON(w, http.StatusOK, healthResponse{
			Status:    "OK",
			Timestamp: now,
		})
	})
}
