package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"quiz_api/internal/api/middleware"
	"quiz_api/internal/app/service"
	"quiz_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
	authenticator   func(http.Handler) http.Handler
}

func NewCategoryHandler(cs *service.CategoryService, authenticator func(http.Handler) http.Handler) *CategoryHandler {
	return &CategoryHandler{categoryService: cs, authenticator: authenticator}
}

func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listCategories) // GET /categories

	r.Group(func(adminRouter chi.Router) {
		adminRouter.Use(h.authenticator)
		adminRouter.Use(middleware.AdminOnly)
		adminRouter.Post("/", h.createCategory) // POST /categories
	})
}

func (h *CategoryHandler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	categories, err := h.categoryService.ListCategories(r.Context(), skip, limit)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, categories)
}
