package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fieldops/worklog-backend-go/internal/domain/user"
	"github.com/fieldops/worklog-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type UserHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

// Create implements UserHandler.
func (u *UserHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq user.CreateUserRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := createReq.Validate(); err != nil {
		slog.Error("CreateUser validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Call service
	userResponse, err := u.userService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User created successfully", "user_id", userResponse.ID)
	response.Created(w, "User created successfully", userResponse)
}

// List implements UserHandler.
func (u *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	users, err := u.userService.List(r.Context())
	if err != nil {
		slog.Error("ListUsers service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

// Update implements UserHandler.
func (u *UserHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var updateReq user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := u.userService.Update(r.Context(), userID, updateReq); err != nil {
		slog.Error("UpdateUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User updated successfully", "user_id", userID)
	response.SuccessWithMessage(w, "User updated successfully", nil)
}

// UpdateSettings implements UserHandler.
func (u *UserHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var settingsReq user.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&settingsReq); err != nil {
		slog.Error("UpdateUserSettings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := u.userService.UpdateSettings(r.Context(), userID, settingsReq); err != nil {
		slog.Error("UpdateUserSettings service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User settings updated successfully", "user_id", userID)
	response.SuccessWithMessage(w, "User settings updated successfully", nil)
}
