// Package revision provides the Revision entity: a proposed edit to a
// question moving through a draft → pending → approved/rejected workflow.
package revision

import (
	"context"
	"time"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/entity"
	"quizbank/internal/core/id"
)

// Status is the workflow state of a revision.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Revision is a proposed content change for one question.
// Restoring a deleted revision requires its question to be live.
type Revision struct {
	entity.Base

	QuestionID id.ID  `db:"question_id" json:"questionId"`
	Status     Status `db:"status" json:"status"`

	// Prompt and Answer are the proposed replacement content.
	Prompt string `db:"prompt" json:"prompt"`
	Answer string `db:"answer" json:"answer"`

	AuthorID   id.ID      `db:"author_id" json:"authorId"`
	ReviewerID *id.ID     `db:"reviewer_id" json:"reviewerId,omitempty"`
	ReviewedAt *time.Time `db:"reviewed_at" json:"reviewedAt,omitempty"`
	ReviewNote *string    `db:"review_note" json:"reviewNote,omitempty"`
}

// New creates a draft revision.
func New(questionID, authorID id.ID, prompt, answer string) *Revision {
	return &Revision{
		Base:       entity.NewBase(),
		QuestionID: questionID,
		Status:     StatusDraft,
		Prompt:     prompt,
		Answer:     answer,
		AuthorID:   authorID,
	}
}

// Validate implements entity.Validatable.
func (r *Revision) Validate(_ context.Context) error {
	if id.IsNil(r.QuestionID) {
		return apperror.NewValidation("question is required").WithDetail("field", "questionId")
	}
	if id.IsNil(r.AuthorID) {
		return apperror.NewValidation("author is required").WithDetail("field", "authorId")
	}
	if r.Prompt == "" {
		return apperror.NewValidation("prompt is required").WithDetail("field", "prompt")
	}
	if !isValidStatus(r.Status) {
		return apperror.NewValidation("invalid revision status").
			WithDetail("field", "status").
			WithDetail("value", string(r.Status))
	}
	return nil
}

// transition enforces the workflow graph.
func (r *Revision) transition(to Status) error {
	allowed := map[Status][]Status{
		StatusDraft:    {StatusPending},
		StatusPending:  {StatusApproved, StatusRejected},
		StatusRejected: {StatusDraft},
	}
	for _, next := range allowed[r.Status] {
		if next == to {
			r.Status = to
			return nil
		}
	}
	return apperror.NewInvalidTransition("revision", string(r.Status), string(to))
}

// Submit moves a draft to pending review.
func (r *Revision) Submit() error {
	return r.transition(StatusPending)
}

// Approve marks a pending revision approved by the reviewer.
func (r *Revision) Approve(reviewer id.ID, note *string, at time.Time) error {
	if err := r.transition(StatusApproved); err != nil {
		return err
	}
	r.ReviewerID = &reviewer
	r.ReviewedAt = &at
	r.ReviewNote = note
	return nil
}

// Reject marks a pending revision rejected by the reviewer.
func (r *Revision) Reject(reviewer id.ID, note *string, at time.Time) error {
	if err := r.transition(StatusRejected); err != nil {
		return err
	}
	r.ReviewerID = &reviewer
	r.ReviewedAt = &at
	r.ReviewNote = note
	return nil
}

// Reopen returns a rejected revision to draft for rework.
func (r *Revision) Reopen() error {
	if err := r.transition(StatusDraft); err != nil {
		return err
	}
	r.ReviewerID = nil
	r.ReviewedAt = nil
	r.ReviewNote = nil
	return nil
}

func isValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
