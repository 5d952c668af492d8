// Package translation provides localized question content.
package translation

import (
	"context"
	"regexp"
	"strings"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/entity"
	"quizbank/internal/core/id"
)

// BCP 47-ish: "de", "pt-BR". Full tag validation is out of scope.
var localeRe = regexp.MustCompile(`^[a-z]{2,3}(?:-[A-Za-z]{2,4})?$`)

// Translation is the localized prompt/answer for one question.
// The pair (question_id, locale) is unique among live rows: deleting a
// translation frees its locale slot, and restoring it is refused while a
// live replacement occupies the slot.
type Translation struct {
	entity.Base

	QuestionID id.ID  `db:"question_id" json:"questionId"`
	Locale     string `db:"locale" json:"locale"`
	Prompt     string `db:"prompt" json:"prompt"`
	Answer     string `db:"answer" json:"answer"`
}

// New creates a Translation.
func New(questionID id.ID, locale, prompt, answer string) *Translation {
	return &Translation{
		Base:       entity.NewBase(),
		QuestionID: questionID,
		Locale:     strings.TrimSpace(locale),
		Prompt:     prompt,
		Answer:     answer,
	}
}

// Validate implements entity.Validatable.
func (t *Translation) Validate(_ context.Context) error {
	if id.IsNil(t.QuestionID) {
		return apperror.NewValidation("question is required").WithDetail("field", "questionId")
	}
	if !localeRe.MatchString(t.Locale) {
		return apperror.NewValidation("invalid locale").
			WithDetail("field", "locale").
			WithDetail("value", t.Locale)
	}
	if t.Prompt == "" {
		return apperror.NewValidation("prompt is required").WithDetail("field", "prompt")
	}
	return nil
}
