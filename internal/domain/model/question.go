package model

import (
	"time"
)

// Question is a four-option multiple-choice item owned by one category.
// CorrectAnswer is stored as given; it is not checked against the options.
type Question struct {
	ID            int64     `json:"id"`
	QuestionText  string    `json:"question_text"`
	OptionA       string    `json:"option_a"`
	OptionB       string    `json:"option_b"`
	OptionC       string    `json:"option_c"`
	OptionD       string    `json:"option_d"`
	CorrectAnswer string    `json:"correct_answer"`
	CategoryID    int64     `json:"category_id"`
	CreatedAt     time.Time `json:"created_at"`
}
