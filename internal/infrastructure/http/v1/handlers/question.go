package handlers

import (
	"github.com/gin-gonic/gin"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/id"
	"quizbank/internal/domain/question"
	"quizbank/internal/infrastructure/http/v1/dto"
)

// QuestionHandler handles question CRUD and restore.
type QuestionHandler struct {
	*BaseHandler
	service *question.Service
}

func NewQuestionHandler(base *BaseHandler, service *question.Service) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler: base,
		service:     service,
	}
}

// RegisterRoutes wires question endpoints onto the authenticated group.
// restoreGate is the policy middleware guarding restore operations.
func (h *QuestionHandler) RegisterRoutes(rg *gin.RouterGroup, restoreGate gin.HandlerFunc) {
	questions := rg.Group("/questions")
	{
		questions.GET("", h.List)
		questions.POST("", h.Create)
		questions.GET("/:id", h.Get)
		questions.PUT("/:id", h.Update)
		questions.DELETE("/:id", h.Delete)
		questions.POST("/:id/restore", restoreGate, h.Restore)
	}

	rg.GET("/topics/:id/questions", h.ListByTopic)
}

// List handles GET /questions
func (h *QuestionHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), h.ListFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// ListByTopic handles GET /topics/:id/questions
func (h *QuestionHandler) ListByTopic(c *gin.Context) {
	topicID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.ListByTopic(c.Request.Context(), topicID, h.ListFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Create handles POST /questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var req dto.CreateQuestionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	topicID, err := id.Parse(req.TopicID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid topic id").WithDetail("value", req.TopicID))
		return
	}

	q := question.New(topicID, req.Prompt, req.Answer)
	if req.Kind != "" {
		q.Kind = question.Kind(req.Kind)
	}
	if req.Difficulty != 0 {
		q.Difficulty = req.Difficulty
	}
	q.Choices = req.Choices

	if err := h.service.Create(c.Request.Context(), q); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, q.ID.String())
}

// Get handles GET /questions/:id
func (h *QuestionHandler) Get(c *gin.Context) {
	questionID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	q, err := h.service.GetByID(c.Request.Context(), questionID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, q)
}

// Update handles PUT /questions/:id
func (h *QuestionHandler) Update(c *gin.Context) {
	questionID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateQuestionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	q, err := h.service.GetByID(ctx, questionID)
	if err != nil {
		h.Error(c, err)
		return
	}

	q.Prompt = req.Prompt
	q.Answer = req.Answer
	q.Choices = req.Choices
	if req.Difficulty != 0 {
		q.Difficulty = req.Difficulty
	}
	q.SetVersion(req.Version)

	if err := h.service.Update(ctx, q); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, q)
}

// Delete handles DELETE /questions/:id (soft delete).
func (h *QuestionHandler) Delete(c *gin.Context) {
	questionID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), questionID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Restore handles POST /questions/:id/restore
func (h *QuestionHandler) Restore(c *gin.Context) {
	questionID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	q, err := h.service.Restore(c.Request.Context(), questionID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, q)
}
