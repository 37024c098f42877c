package http

import (
	"net/http"
	"time"

	"github.com/kariua-parish/parish-site/internal/common/constants"
	commonhttp "github.com/kariua-parish/parish-site/internal/common/http"
	"github.com/kariua-parish/parish-site/internal/common/logger"
	"github.com/kariua-parish/parish-site/internal/common/validation"
	"github.com/kariua-parish/parish-site/internal/intention/domain"
	"github.com/kariua-parish/parish-site/internal/intention/service"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type Handler struct {
	intentions *service.IntentionService
	log        *logger.Logger
}

type intentionResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Intention string `json:"intention"`
	CreatedAt string `json:"createdAt"`
}

type createIntentionRequest struct {
	Name      string `json:"name"`
	Intention string `json:"intention"`
}

func NewHandler(intentions *service.IntentionService, requestTimeout time.Duration, log *logger.Logger) http.Handler {
	h := &Handler{intentions: intentions, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc(constants.RoutePrayerIntentions, commonhttp.WithTimeout(requestTimeout)(h.route))

	return mux
}

func (h *Handler) route(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", nil, commonhttp.TraceIDFromContext(r.Context()))
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	intentions, err := h.intentions.List(r.Context())
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toIntentionResponses(intentions))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createIntentionRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		if commonhttp.IsBodyTooLarge(err) {
			commonhttp.WriteBodyTooLarge(w, r)
			return
		}
		commonhttp.HandleError(w, r, validation.Malformed(err), h.log)
		return
	}

	result, err := h.intentions.Submit(ctx, service.SubmitInput{Name: req.Name, Intention: req.Intention})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	h.log.WithFields(ctx, logger.Fields{
		"intention_id": string(result.Intention.ID),
		"notified":     result.Notification.Delivered,
		"action":       "create_intention_success",
	}).Info("prayer intention created")
	commonhttp.WriteJSON(w, http.StatusOK, toIntentionResponse(result.Intention))
}

func toIntentionResponse(it domain.PrayerIntention) intentionResponse {
	return intentionResponse{
		ID:        string(it.ID),
		Name:      it.Name,
		Intention: it.Intention,
		CreatedAt: it.CreatedAt.UTC().Format(timestampLayout),
	}
}

func toIntentionResponses(intentions []domain.PrayerIntention) []intentionResponse {
	resp := make([]intentionResponse, len(intentions))
	for i, it := range intentions {
		resp[i] = toIntentionResponse(it)
	}
	return resp
}
