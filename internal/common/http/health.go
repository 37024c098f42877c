package http

import (
	"net/http"

	"github.com/kariua-parish/parish-site/internal/common/clock"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func HealthHandler(clk clock.Clock) http.HandlerFunc {
	return RequireMethod(http.MethodGet)(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, healthResponse{
			Status:    "ok",
			Timestamp: clk.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		})
	})
}
