package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"lagerbok/internal/bookings/service"
	apperrors "lagerbok/pkg/errors"
	httputil "lagerbok/pkg/http"
	"lagerbok/pkg/logger"
	"lagerbok/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

// commitRequest is the wire form of a multi-slot commit. Dates arrive as
// YYYY-MM-DD strings and cover every selected slot identically.
type commitRequest struct {
	StorageID         int64   `json:"storage_id"`
	SlotIDs           []int64 `json:"slot_ids"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	ResponsiblePerson string  `json:"responsible_person"`
	Administrator     string  `json:"administrator"`
	CompanyName       string  `json:"company_name"`
	CompanyEmail      string  `json:"company_email"`
	CompanyTlf        string  `json:"company_tlf"`
}

func (req commitRequest) toInput() (*service.CommitInput, error) {
	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		return nil, err
	}

	return &service.CommitInput{
		StorageID: req.StorageID,
		SlotIDs:   req.SlotIDs,
		Payload: model.Booking{
			StartDate:         start,
			EndDate:           end,
			ResponsiblePerson: req.ResponsiblePerson,
			Administrator:     req.Administrator,
			CompanyName:       req.CompanyName,
			CompanyEmail:      req.CompanyEmail,
			CompanyTlf:        req.CompanyTlf,
		},
	}, nil
}

type suggestRequest struct {
	StorageID int64   `json:"storage_id"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	MinMeters float64 `json:"min_meters"`
}

func (req suggestRequest) toInput() (*service.SuggestInput, error) {
	start, err := parseDate(req.StartDate, "start_date")
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate, "end_date")
	if err != nil {
		return nil, err
	}

	return &service.SuggestInput{
		StorageID: req.StorageID,
		StartDate: start,
		EndDate:   end,
		MinMeters: req.MinMeters,
	}, nil
}

func parseDate(raw, field string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %s", field, raw)
	}
	return t, nil
}

func (h *BookingHandler) Commit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req commitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Commit", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	input, err := req.toInput()
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(err.Error())); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Commit", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	confirmation, err := h.service.Commit(r.Context(), input)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Commit", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, confirmation); err != nil {
		h.log.Error("failed to write created response", "handler", "Commit", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) Suggest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Suggest", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	input, err := req.toInput()
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(err.Error())); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Suggest", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	suggestion, err := h.service.Suggest(r.Context(), input)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Suggest", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, suggestion); err != nil {
		h.log.Error("failed to write success response", "handler", "Suggest", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Remove(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("id")

	storageID, err := parsePositiveInt(r.URL.Query().Get("storage_id"), "storage_id")
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Remove", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	slotID, err := parsePositiveInt(r.URL.Query().Get("slot_id"), "slot_id")
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Remove", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.Remove(r.Context(), storageID, slotID, bookingID); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Remove", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func parsePositiveInt(raw, field string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInput(fmt.Sprintf("invalid %s: %s", field, raw))
	}
	return id, nil
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Commit)
	router.POST("/api/v1/bookings/suggest", h.Suggest)
	router.DELETE("/api/v1/bookings/id/:id", h.Remove)
}
