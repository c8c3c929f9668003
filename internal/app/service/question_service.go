package service

import (
	"context"
	"fmt"

	"quiz_api/internal/common"
	"quiz_api/internal/domain/model"
	"quiz_api/internal/domain/repository"
)

const (
	DefaultQuestionPageSize = 10
)

type QuestionService struct {
	questionRepo repository.QuestionRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

type CreateQuestionRequest struct {
	QuestionText  string `json:"question_text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
	CategoryID    int64  `json:"category_id"`
}

func (s *QuestionService) CreateQuestion(ctx context.Context, req CreateQuestionRequest) (*model.Question, error) {
	if req.QuestionText == "" || req.OptionA == "" || req.OptionB == "" || req.OptionC == "" || req.OptionD == "" || req.CorrectAnswer == "" {
		return nil, fmt.Errorf("missing required fields for question creation: %w", common.ErrValidation)
	}
	if req.CategoryID <= 0 {
		return nil, fmt.Errorf("category_id is required: %w", common.ErrValidation)
	}

	question := &model.Question{
		QuestionText:  req.QuestionText,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectAnswer: req.CorrectAnswer,
		CategoryID:    req.CategoryID,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

// ListQuestions filters on categoryID only when the caller supplied one; a
// present zero filters on zero and matches nothing.
func (s *QuestionService) ListQuestions(ctx context.Context, categoryID *int64, skip, limit int) ([]model.Question, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultQuestionPageSize
	}
	return s.questionRepo.List(ctx, categoryID, skip, limit)
}

func (s *QuestionService) GetQuestion(ctx context.Context, id int64) (*model.Question, error) {
	question, err := s.questionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return question, nil
}
