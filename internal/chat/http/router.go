package http

import (
	"net/http"
	"time"

	"github.com/kariua-parish/parish-site/internal/chat/service"
	"github.com/kariua-parish/parish-site/internal/common/constants"
	commonhttp "github.com/kariua-parish/parish-site/internal/common/http"
	"github.com/kariua-parish/parish-site/internal/common/logger"
	"github.com/kariua-parish/parish-site/internal/common/validation"
)

type Handler struct {
	chat *service.ChatService
	log  *logger.Logger
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func NewHandler(chat *service.ChatService, chatTimeout time.Duration, log *logger.Logger) http.Handler {
	h := &Handler{chat: chat, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc(constants.RouteChat, commonhttp.RequireMethod(http.MethodPost)(commonhttp.WithTimeout(chatTimeout)(h.reply)))

	return mux
}

func (h *Handler) reply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req chatRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		if commonhttp.IsBodyTooLarge(err) {
			commonhttp.WriteBodyTooLarge(w, r)
			return
		}
		commonhttp.HandleError(w, r, validation.Malformed(err), h.log)
		return
	}

	reply, err := h.chat.Reply(ctx, req.Message)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	h.log.WithFields(ctx, logger.Fields{
		"message_length": len(req.Message),
		"reply_length":   len(reply),
		"action":         "chat_reply_success",
	}).Debug("chat reply sent")
	commonhttp.WriteJSON(w, http.StatusOK, chatResponse{Response: reply})
}
