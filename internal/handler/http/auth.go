package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fieldops/worklog-backend-go/internal/domain/auth"
	"github.com/fieldops/worklog-backend-go/internal/handler/http/response"
	"github.com/fieldops/worklog-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := loginReq.Validate(); err != nil {
		slog.Error("Login validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Call service
	tokenResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Success response
	refreshTokenCookie := a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn)
	http.SetCookie(w, refreshTokenCookie)
	slog.Info("User logged in successfully")
	response.Created(w, "User logged in successfully", tokenResponse)
}

// RefreshToken implements AuthHandler.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	refreshReq, err := a.refreshRequestFrom(r)
	if err != nil {
		slog.Error("RefreshToken request error", "error", err)
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	// Call service
	tokenResponse, err := a.authService.Refresh(r.Context(), refreshReq)
	if err != nil {
		slog.Error("RefreshToken service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Success response
	refreshTokenCookie := a.jwtService.RefreshTokenCookie(tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn)
	http.SetCookie(w, refreshTokenCookie)
	slog.Info("Token refreshed successfully")
	response.Success(w, tokenResponse)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	refreshReq, err := a.refreshRequestFrom(r)
	if err != nil {
		slog.Error("Logout request error", "error", err)
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	if err := a.authService.Logout(r.Context(), refreshReq.RefreshToken); err != nil {
		slog.Error("Logout service error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Expire the cookie
	expiredCookie := a.jwtService.RefreshTokenCookie("", 0)
	http.SetCookie(w, expiredCookie)
	slog.Info("User logged out successfully")
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

// refreshRequestFrom accepts the refresh token from the cookie first and the
// JSON body as a fallback for non-browser clients.
func (a *AuthHandlerImpl) refreshRequestFrom(r *http.Request) (auth.RefreshRequest, error) {
	if cookie, err := r.Cookie("refresh_token"); err == nil && cookie.Value != "" {
		return auth.RefreshRequest{RefreshToken: cookie.Value}, nil
	}

	var refreshReq auth.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&refreshReq); err != nil {
		return auth.RefreshRequest{}, err
	}
	if refreshReq.RefreshToken == "" {
		return auth.RefreshRequest{}, auth.ErrInvalidToken
	}
	return refreshReq, nil
}
