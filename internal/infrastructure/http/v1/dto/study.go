package dto

// AnswerRequest records one graded practice attempt.
type AnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Grade      int    `json:"grade"`
	DurationMs int64  `json:"durationMs"`
}
