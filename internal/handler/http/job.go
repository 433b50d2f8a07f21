package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fieldops/worklog-backend-go/internal/domain/job"
	"github.com/fieldops/worklog-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type JobHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	CreateTier(w http.ResponseWriter, r *http.Request)
	ListTiers(w http.ResponseWriter, r *http.Request)
	SetWageRate(w http.ResponseWriter, r *http.Request)
	ListWageRates(w http.ResponseWriter, r *http.Request)
}

type JobHandlerImpl struct {
	jobService job.JobService
}

func NewJobHandler(jobService job.JobService) JobHandler {
	return &JobHandlerImpl{jobService: jobService}
}

// Create implements JobHandler.
func (h *JobHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq job.CreateJobRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateJob decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := createReq.Validate(); err != nil {
		slog.Error("CreateJob validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Call service
	jobResponse, err := h.jobService.CreateJob(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateJob service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Job created successfully", "job_id", jobResponse.ID)
	response.Created(w, "Job created successfully", jobResponse)
}

// List implements JobHandler.
func (h *JobHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	jobs, err := h.jobService.ListJobs(r.Context(), activeOnly)
	if err != nil {
		slog.Error("ListJobs service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, jobs)
}

// Update implements JobHandler.
func (h *JobHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	var updateReq job.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateJob decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.jobService.UpdateJob(r.Context(), jobID, updateReq); err != nil {
		slog.Error("UpdateJob service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Job updated successfully", "job_id", jobID)
	response.SuccessWithMessage(w, "Job updated successfully", nil)
}

// CreateTier implements JobHandler.
func (h *JobHandlerImpl) CreateTier(w http.ResponseWriter, r *http.Request) {
	var createReq job.CreateTierRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateTier decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		slog.Error("CreateTier validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	tierResponse, err := h.jobService.CreateTier(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateTier service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Wage tier created successfully", "tier_id", tierResponse.ID)
	response.Created(w, "Wage tier created successfully", tierResponse)
}

// ListTiers implements JobHandler.
func (h *JobHandlerImpl) ListTiers(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	tiers, err := h.jobService.ListTiers(r.Context(), activeOnly)
	if err != nil {
		slog.Error("ListTiers service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, tiers)
}

// SetWageRate implements JobHandler.
func (h *JobHandlerImpl) SetWageRate(w http.ResponseWriter, r *http.Request) {
	var rateReq job.SetWageRateRequest

	if err := json.NewDecoder(r.Body).Decode(&rateReq); err != nil {
		slog.Error("SetWageRate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := rateReq.Validate(); err != nil {
		slog.Error("SetWageRate validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	rateResponse, err := h.jobService.SetWageRate(r.Context(), rateReq)
	if err != nil {
		slog.Error("SetWageRate service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Wage rate stored successfully", "job_id", rateReq.JobID, "tier_id", rateReq.TierID)
	response.Success(w, rateResponse)
}

// ListWageRates implements JobHandler.
func (h *JobHandlerImpl) ListWageRates(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	rates, err := h.jobService.ListWageRates(r.Context(), jobID)
	if err != nil {
		slog.Error("ListWageRates service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, rates)
}
