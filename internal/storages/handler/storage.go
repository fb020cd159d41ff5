package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"lagerbok/internal/storages/service"
	apperrors "lagerbok/pkg/errors"
	httputil "lagerbok/pkg/http"
	"lagerbok/pkg/logger"
	"lagerbok/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type StorageHandler struct {
	service service.StorageService
	log     *logger.Logger
}

func NewStorageHandler(service service.StorageService, log *logger.Logger) *StorageHandler {
	return &StorageHandler{
		service: service,
		log:     log,
	}
}

// searchRequest is the wire form of a search query. Dates arrive as
// YYYY-MM-DD strings; everything else is optional.
type searchRequest struct {
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	MinAvailableMeters float64 `json:"min_available_meters"`
	StorageType        string  `json:"storage_type"`
	CargoHeight        float64 `json:"cargo_height"`
	CargoWidth         float64 `json:"cargo_width"`
	FrostFreeOnly      bool    `json:"frost_free_only"`
	MafiTrailer        bool    `json:"mafi_trailer"`
}

func (req searchRequest) toFilter() (model.SearchFilter, error) {
	filter := model.SearchFilter{
		MinAvailableMeters: req.MinAvailableMeters,
		StorageType:        model.StorageType(req.StorageType),
		CargoHeight:        req.CargoHeight,
		CargoWidth:         req.CargoWidth,
		FrostFreeOnly:      req.FrostFreeOnly,
		MafiTrailer:        req.MafiTrailer,
	}

	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return filter, fmt.Errorf("invalid start_date: %s", req.StartDate)
		}
		filter.StartDate = start
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return filter, fmt.Errorf("invalid end_date: %s", req.EndDate)
		}
		filter.EndDate = end
	}

	return filter, nil
}

func (h *StorageHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Search", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	filter, err := req.toFilter()
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(err.Error())); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Search", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	results, err := h.service.Search(r.Context(), filter)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Search", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, results); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "operation", "WriteSuccess", "error", err)
	}
}

func (h *StorageHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(err.Error())); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	storages, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, storages, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *StorageHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := parseStorageID(ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	storage, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, storage); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *StorageHandler) Capacity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := parseStorageID(ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Capacity", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	capacity, err := h.service.Capacity(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Capacity", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, capacity); err != nil {
		h.log.Error("failed to write success response", "handler", "Capacity", "operation", "WriteSuccess", "error", err)
	}
}

func (h *StorageHandler) SystemCapacity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	capacity, err := h.service.SystemCapacity(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SystemCapacity", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, capacity); err != nil {
		h.log.Error("failed to write success response", "handler", "SystemCapacity", "operation", "WriteSuccess", "error", err)
	}
}

func parseStorageID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInput(fmt.Sprintf("invalid storage id: %s", raw))
	}
	return id, nil
}

func (h *StorageHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/storages", h.GetAll)
	router.POST("/api/v1/storages/search", h.Search)
	router.GET("/api/v1/storages/capacity", h.SystemCapacity)
	router.GET("/api/v1/storages/id/:id", h.GetByID)
	router.GET("/api/v1/storages/id/:id/capacity", h.Capacity)
}
