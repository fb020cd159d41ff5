package handler

import (
	"net/http"

	"lagerbok/internal/deadlines/service"
	httputil "lagerbok/pkg/http"
	"lagerbok/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type DeadlineHandler struct {
	service service.DeadlineService
	log     *logger.Logger
}

func NewDeadlineHandler(service service.DeadlineService, log *logger.Logger) *DeadlineHandler {
	return &DeadlineHandler{
		service: service,
		log:     log,
	}
}

func (h *DeadlineHandler) Expiring(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	expiring, err := h.service.Expiring(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Expiring", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, expiring); err != nil {
		h.log.Error("failed to write success response", "handler", "Expiring", "operation", "WriteSuccess", "error", err)
	}
}

func (h *DeadlineHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/deadlines", h.Expiring)
}
