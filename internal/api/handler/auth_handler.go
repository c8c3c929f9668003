package handler

import (
	"encoding/json"
	"net/http"

	"quiz_api/internal/app/service"
	"quiz_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/token", h.token)
	r.Post("/users", h.createUser)
}

func (h *AuthHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) token(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req) // Body is optional
	}
	// Credentials may also arrive as query parameters.
	if req.Username == "" {
		req.Username = r.URL.Query().Get("username")
	}
	if req.Password == "" {
		req.Password = r.URL.Query().Get("password")
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
