package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quiz_api/internal/common"
	"quiz_api/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	FindByID(ctx context.Context, id int64) (*model.Question, error)
	// List returns a page of questions; a nil categoryID means no filter.
	List(ctx context.Context, categoryID *int64, skip, limit int) ([]model.Question, error)
}

type pgQuestionRepository struct {
	db *sql.DB
}

func NewPgQuestionRepository(db *sql.DB) QuestionRepository {
	return &pgQuestionRepository{db: db}
}

func (r *pgQuestionRepository) Create(ctx context.Context, question *model.Question) error {
	query := `INSERT INTO questions (question_text, option_a, option_b, option_c, option_d, correct_answer, category_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		question.QuestionText, question.OptionA, question.OptionB, question.OptionC, question.OptionD,
		question.CorrectAnswer, question.CategoryID,
	).Scan(&question.ID, &question.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // FK violation: unknown category
			return fmt.Errorf("category %d does not exist: %w", question.CategoryID, common.ErrBadRequest)
		}
		return fmt.Errorf("pgQuestionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgQuestionRepository) FindByID(ctx context.Context, id int64) (*model.Question, error) {
	query := `SELECT id, question_text, option_a, option_b, option_c, option_d, correct_answer, category_id, created_at
	          FROM questions WHERE id = $1`
	q := &model.Question{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&q.ID, &q.QuestionText, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD,
		&q.CorrectAnswer, &q.CategoryID, &q.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgQuestionRepository.FindByID: %w", err)
	}
	return q, nil
}

func (r *pgQuestionRepository) List(ctx context.Context, categoryID *int64, skip, limit int) ([]model.Question, error) {
	var rows *sql.Rows
	var err error
	if categoryID != nil {
		query := `SELECT id, question_text, option_a, option_b, option_c, option_d, correct_answer, category_id, created_at
		          FROM questions WHERE category_id = $1 ORDER BY id OFFSET $2 LIMIT $3`
		rows, err = r.db.QueryContext(ctx, query, *categoryID, skip, limit)
	} else {
		query := `SELECT id, question_text, option_a, option_b, option_c, option_d, correct_answer, category_id, created_at
		          FROM questions ORDER BY id OFFSET $1 LIMIT $2`
		rows, err = r.db.QueryContext(ctx, query, skip, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.List: %w", err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(
			&q.ID, &q.QuestionText, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD,
			&q.CorrectAnswer, &q.CategoryID, &q.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.List: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.List: %w", err)
	}
	return questions, nil
}
