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

type QuestionHandler struct {
	questionService *service.QuestionService
	authenticator   func(http.Handler) http.Handler
}

func NewQuestionHandler(qs *service.QuestionService, authenticator func(http.Handler) http.Handler) *QuestionHandler {
	return &QuestionHandler{questionService: qs, authenticator: authenticator}
}

func (h *QuestionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listQuestions)            // GET /questions
	r.Get("/{questionID}", h.getQuestion)  // GET /questions/42

	r.Group(func(adminRouter chi.Router) {
		adminRouter.Use(h.authenticator)
		adminRouter.Use(middleware.AdminOnly)
		adminRouter.Post("/", h.createQuestion) // POST /questions
	})
}

func (h *QuestionHandler) createQuestion(w http.ResponseWriter, r *http.Request) {
	var req service.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	question, err := h.questionService.CreateQuestion(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, question)
}

func (h *QuestionHandler) listQuestions(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	// The filter applies whenever category_id is present, zero included.
	var categoryID *int64
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			common.RespondWithError(w, http.StatusBadRequest, "category_id must be an integer")
			return
		}
		categoryID = &id
	}

	questions, err := h.questionService.ListQuestions(r.Context(), categoryID, skip, limit)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, questions)
}

func (h *QuestionHandler) getQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "questionID"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "question id must be an integer")
		return
	}

	question, err := h.questionService.GetQuestion(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, question)
}
