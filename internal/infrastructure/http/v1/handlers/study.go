package handlers

import (
	"github.com/gin-gonic/gin"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/id"
	"quizbank/internal/core/security"
	"quizbank/internal/domain/practice"
	"quizbank/internal/infrastructure/http/v1/dto"
)

// StudyHandler drives study sessions: the due queue and graded answers.
type StudyHandler struct {
	*BaseHandler
	service *practice.Service
}

func NewStudyHandler(base *BaseHandler, service *practice.Service) *StudyHandler {
	return &StudyHandler{
		BaseHandler: base,
		service:     service,
	}
}

// RegisterRoutes wires study endpoints onto the authenticated group.
func (h *StudyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	study := rg.Group("/study")
	{
		study.GET("/queue", h.Queue)
		study.POST("/answer", h.Answer)
		study.GET("/history", h.History)
	}
}

func (h *StudyHandler) actor(c *gin.Context) (id.ID, bool) {
	actor := security.GetActorID(c.Request.Context())
	if id.IsNil(actor) {
		h.Error(c, apperror.NewUnauthorized("authentication required"))
		return id.Nil(), false
	}
	return actor, true
}

// Queue handles GET /study/queue
func (h *StudyHandler) Queue(c *gin.Context) {
	userID, ok := h.actor(c)
	if !ok {
		return
	}

	limit := h.ParseIntQuery(c, "limit", 20)
	items, err := h.service.Queue(c.Request.Context(), userID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// Answer handles POST /study/answer
func (h *StudyHandler) Answer(c *gin.Context) {
	userID, ok := h.actor(c)
	if !ok {
		return
	}

	var req dto.AnswerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	questionID, err := id.Parse(req.QuestionID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid question id").WithDetail("value", req.QuestionID))
		return
	}

	state, err := h.service.Answer(c.Request.Context(), userID, questionID, req.Grade, req.DurationMs)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, state)
}

// History handles GET /study/history
func (h *StudyHandler) History(c *gin.Context) {
	userID, ok := h.actor(c)
	if !ok {
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)
	offset := h.ParseIntQuery(c, "offset", 0)

	logs, err := h.service.History(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, logs)
}
