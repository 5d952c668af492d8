// Package practice records study attempts and drives the review scheduler.
package practice

import (
	"time"

	"quizbank/internal/core/id"
)

// Log is one graded answer. The log is append-only: rows are never updated
// or deleted, so it carries no soft-delete state.
type Log struct {
	ID         id.ID     `db:"id" json:"id"`
	UserID     id.ID     `db:"user_id" json:"userId"`
	QuestionID id.ID     `db:"question_id" json:"questionId"`
	Grade      int       `db:"grade" json:"grade"`
	DurationMs int64     `db:"duration_ms" json:"durationMs"`
	AnsweredAt time.Time `db:"answered_at" json:"answeredAt"`
}
