package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/fieldops/worklog-backend-go/internal/domain/workentry"
	"github.com/fieldops/worklog-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WorkEntryHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type WorkEntryHandlerImpl struct {
	workEntryService workentry.WorkEntryService
}

func NewWorkEntryHandler(workEntryService workentry.WorkEntryService) WorkEntryHandler {
	return &WorkEntryHandlerImpl{workEntryService: workEntryService}
}

// Create implements WorkEntryHandler.
func (h *WorkEntryHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq workentry.CreateWorkEntryRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateWorkEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Call service; field validation and numeric coercion happen there so
	// the full error taxonomy comes from one place.
	entryResponse, err := h.workEntryService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateWorkEntry service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Work entry created successfully", "entry_id", entryResponse.ID)
	response.Created(w, "Work entry created successfully", entryResponse)
}

// Update implements WorkEntryHandler.
func (h *WorkEntryHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")

	var updateReq workentry.UpdateWorkEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateWorkEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entryResponse, err := h.workEntryService.Update(r.Context(), entryID, updateReq)
	if err != nil {
		slog.Error("UpdateWorkEntry service error", "error", err, "entry_id", entryID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Work entry updated successfully", "entry_id", entryID)
	response.Success(w, entryResponse)
}

// Delete implements WorkEntryHandler.
func (h *WorkEntryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")

	entryResponse, err := h.workEntryService.Delete(r.Context(), entryID)
	if err != nil {
		slog.Error("DeleteWorkEntry service error", "error", err, "entry_id", entryID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Work entry deleted successfully", "entry_id", entryID)
	response.Success(w, entryResponse)
}

// List implements WorkEntryHandler.
func (h *WorkEntryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := listFilterFromQuery(r)
	if err != nil {
		slog.Error("ListWorkEntries filter error", "error", err)
		response.BadRequest(w, "Invalid date filter, expected YYYY-MM-DD", nil)
		return
	}

	entries, err := h.workEntryService.List(r.Context(), filter)
	if err != nil {
		slog.Error("ListWorkEntries service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

func listFilterFromQuery(r *http.Request) (workentry.ListFilter, error) {
	var filter workentry.ListFilter

	if workerID := r.URL.Query().Get("worker_id"); workerID != "" {
		filter.WorkerID = &workerID
	}
	if from := r.URL.Query().Get("date_from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return workentry.ListFilter{}, err
		}
		filter.DateFrom = &t
	}
	if to := r.URL.Query().Get("date_to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return workentry.ListFilter{}, err
		}
		filter.DateTo = &t
	}

	return filter, nil
}
