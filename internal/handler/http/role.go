package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fieldops/worklog-backend-go/internal/domain/authz"
	"github.com/fieldops/worklog-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RoleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListPermissions(w http.ResponseWriter, r *http.Request)
	ListGrants(w http.ResponseWriter, r *http.Request)
	ReplaceGrants(w http.ResponseWriter, r *http.Request)
	PutOverride(w http.ResponseWriter, r *http.Request)
	DeleteOverride(w http.ResponseWriter, r *http.Request)
}

type RoleHandlerImpl struct {
	roleService authz.RoleService
}

func NewRoleHandler(roleService authz.RoleService) RoleHandler {
	return &RoleHandlerImpl{roleService: roleService}
}

// Create implements RoleHandler.
func (h *RoleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq authz.CreateRoleRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateRole decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := createReq.Validate(); err != nil {
		slog.Error("CreateRole validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Call service
	roleResponse, err := h.roleService.CreateRole(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateRole service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Role created successfully", "role_id", roleResponse.ID)
	response.Created(w, "Role created successfully", roleResponse)
}

// List implements RoleHandler.
func (h *RoleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.ListRoles(r.Context())
	if err != nil {
		slog.Error("ListRoles service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, roles)
}

// ListPermissions implements RoleHandler.
func (h *RoleHandlerImpl) ListPermissions(w http.ResponseWriter, r *http.Request) {
	permissions, err := h.roleService.ListPermissions(r.Context())
	if err != nil {
		slog.Error("ListPermissions service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, permissions)
}

// ListGrants implements RoleHandler.
func (h *RoleHandlerImpl) ListGrants(w http.ResponseWriter, r *http.Request) {
	roleID := chi.URLParam(r, "roleID")

	codes, err := h.roleService.ListGrants(r.Context(), roleID)
	if err != nil {
		slog.Error("ListGrants service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, codes)
}

// ReplaceGrants implements RoleHandler.
func (h *RoleHandlerImpl) ReplaceGrants(w http.ResponseWriter, r *http.Request) {
	roleID := chi.URLParam(r, "roleID")

	var grantsReq authz.ReplaceGrantsRequest
	if err := json.NewDecoder(r.Body).Decode(&grantsReq); err != nil {
		slog.Error("ReplaceGrants decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.roleService.ReplaceGrants(r.Context(), roleID, grantsReq); err != nil {
		slog.Error("ReplaceGrants service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Role grants replaced successfully", "role_id", roleID)
	response.SuccessWithMessage(w, "Role grants replaced successfully", nil)
}

// PutOverride implements RoleHandler.
func (h *RoleHandlerImpl) PutOverride(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var overrideReq authz.PutOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&overrideReq); err != nil {
		slog.Error("PutOverride decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := overrideReq.Validate(); err != nil {
		slog.Error("PutOverride validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	if err := h.roleService.PutOverride(r.Context(), userID, overrideReq); err != nil {
		slog.Error("PutOverride service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Permission override stored", "user_id", userID, "code", overrideReq.Code)
	response.SuccessWithMessage(w, "Permission override stored", nil)
}

// DeleteOverride implements RoleHandler.
func (h *RoleHandlerImpl) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	code := chi.URLParam(r, "code")

	if err := h.roleService.DeleteOverride(r.Context(), userID, code); err != nil {
		slog.Error("DeleteOverride service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Permission override removed", "user_id", userID, "code", code)
	response.SuccessWithMessage(w, "Permission override removed", nil)
}
