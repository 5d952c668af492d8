package handlers

import (
	"github.com/gin-gonic/gin"

	"quizbank/internal/domain/translation"
	"quizbank/internal/infrastructure/http/v1/dto"
)

// TranslationHandler handles localized question content.
type TranslationHandler struct {
	*BaseHandler
	service *translation.Service
}

func NewTranslationHandler(base *BaseHandler, service *translation.Service) *TranslationHandler {
	return &TranslationHandler{
		BaseHandler: base,
		service:     service,
	}
}

// RegisterRoutes wires translation endpoints onto the authenticated group.
// restoreGate is the policy middleware guarding restore operations.
func (h *TranslationHandler) RegisterRoutes(rg *gin.RouterGroup, restoreGate gin.HandlerFunc) {
	translations := rg.Group("/translations")
	{
		translations.GET("/:id", h.Get)
		translations.DELETE("/:id", h.Delete)
		translations.POST("/:id/restore", restoreGate, h.Restore)
	}

	rg.GET("/questions/:id/translations", h.ListByQuestion)
	rg.POST("/questions/:id/translations", h.Create)
}

// ListByQuestion handles GET /questions/:id/translations
func (h *TranslationHandler) ListByQuestion(c *gin.Context) {
	questionID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	items, err := h.service.ListByQuestion(c.Request.Context(), questionID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// Create handles POST /questions/:id/translations
func (h *TranslationHandler) Create(c *gin.Context) {
	questionID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateTranslationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	t := translation.New(questionID, req.Locale, req.Prompt, req.Answer)
	if err := h.service.Create(c.Request.Context(), t); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, t.ID.String())
}

// Get handles GET /translations/:id
func (h *TranslationHandler) Get(c *gin.Context) {
	translationID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), translationID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, t)
}

// Delete handles DELETE /translations/:id (soft delete).
func (h *TranslationHandler) Delete(c *gin.Context) {
	translationID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), translationID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Restore handles POST /translations/:id/restore
func (h *TranslationHandler) Restore(c *gin.Context) {
	translationID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	t, err := h.service.Restore(c.Request.Context(), translationID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, t)
}
