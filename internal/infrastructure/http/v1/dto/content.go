package dto

import "quizbank/internal/domain/question"

// CreateTopicRequest creates a topic. Slug is derived from the title when
// omitted.
type CreateTopicRequest struct {
	Slug        string  `json:"slug"`
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
}

// UpdateTopicRequest updates topic fields.
type UpdateTopicRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Version     int     `json:"version" binding:"required"`
}

// CreateQuestionRequest creates a question under a topic.
type CreateQuestionRequest struct {
	TopicID    string            `json:"topicId" binding:"required"`
	Kind       string            `json:"kind"`
	Prompt     string            `json:"prompt" binding:"required"`
	Answer     string            `json:"answer"`
	Choices    []question.Choice `json:"choices"`
	Difficulty int               `json:"difficulty"`
}

// UpdateQuestionRequest updates question content.
type UpdateQuestionRequest struct {
	Prompt     string            `json:"prompt" binding:"required"`
	Answer     string            `json:"answer"`
	Choices    []question.Choice `json:"choices"`
	Difficulty int               `json:"difficulty"`
	Version    int               `json:"version" binding:"required"`
}

// CreateRevisionRequest proposes a content change for a question.
type CreateRevisionRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Answer string `json:"answer"`
}

// ReviewRequest carries the optional reviewer note for approve/reject.
type ReviewRequest struct {
	Note *string `json:"note"`
}

// CreateTranslationRequest adds localized content to a question.
type CreateTranslationRequest struct {
	Locale string `json:"locale" binding:"required"`
	Prompt string `json:"prompt" binding:"required"`
	Answer string `json:"answer"`
}
