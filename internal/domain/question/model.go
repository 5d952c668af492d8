// Package question provides the Question entity, the unit of study content.
package question

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/entity"
	"quizbank/internal/core/id"
)

// Kind defines the question format.
type Kind string

const (
	KindFlashcard      Kind = "flashcard"
	KindMultipleChoice Kind = "multiple_choice"
	KindCloze          Kind = "cloze"
)

// Choice is one option of a multiple-choice question.
type Choice struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Choices is stored as a JSONB column.
type Choices []Choice

// Value implements driver.Valuer.
func (c Choices) Value() (driver.Value, error) {
	if len(c) == 0 {
		return nil, nil
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner.
func (c *Choices) Scan(src any) error {
	if src == nil {
		*c = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Choices", src)
	}
	return json.Unmarshal(raw, c)
}

// Question is a study item belonging to exactly one topic.
// Restoring a deleted question requires its topic to be live.
type Question struct {
	entity.Base

	TopicID    id.ID   `db:"topic_id" json:"topicId"`
	Kind       Kind    `db:"kind" json:"kind"`
	Prompt     string  `db:"prompt" json:"prompt"`
	Answer     string  `db:"answer" json:"answer"`
	Choices    Choices `db:"choices" json:"choices,omitempty"`
	Difficulty int     `db:"difficulty" json:"difficulty"`

	// Attrs carries free-form authoring metadata (source, hints).
	Attrs entity.Attributes `db:"attrs" json:"attrs,omitempty"`
}

// New creates a flashcard Question with defaults applied.
func New(topicID id.ID, prompt, answer string) *Question {
	return &Question{
		Base:       entity.NewBase(),
		TopicID:    topicID,
		Kind:       KindFlashcard,
		Prompt:     prompt,
		Answer:     answer,
		Difficulty: 3,
	}
}

// Validate implements entity.Validatable.
func (q *Question) Validate(_ context.Context) error {
	if id.IsNil(q.TopicID) {
		return apperror.NewValidation("topic is required").WithDetail("field", "topicId")
	}
	if q.Prompt == "" {
		return apperror.NewValidation("prompt is required").WithDetail("field", "prompt")
	}
	if !isValidKind(q.Kind) {
		return apperror.NewValidation("invalid question kind").
			WithDetail("field", "kind").
			WithDetail("value", string(q.Kind))
	}
	if q.Kind == KindMultipleChoice {
		if len(q.Choices) < 2 {
			return apperror.NewValidation("multiple choice question needs at least two choices").
				WithDetail("field", "choices")
		}
		correct := 0
		for _, ch := range q.Choices {
			if ch.Correct {
				correct++
			}
		}
		if correct == 0 {
			return apperror.NewValidation("multiple choice question needs a correct choice").
				WithDetail("field", "choices")
		}
	} else if q.Answer == "" {
		return apperror.NewValidation("answer is required").WithDetail("field", "answer")
	}
	if q.Difficulty < 1 || q.Difficulty > 5 {
		return apperror.NewValidation("difficulty must be between 1 and 5").
			WithDetail("field", "difficulty").
			WithDetail("value", q.Difficulty)
	}
	return nil
}

func isValidKind(k Kind) bool {
	switch k {
	case KindFlashcard, KindMultipleChoice, KindCloze:
		return true
	}
	return false
}
