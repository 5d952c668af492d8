package handlers

import (
	"github.com/gin-gonic/gin"

	"quizbank/internal/domain/cascade"
	"quizbank/internal/domain/topic"
	"quizbank/internal/infrastructure/http/v1/dto"
)

// TopicHandler handles topic CRUD, restore and cascade restore.
type TopicHandler struct {
	*BaseHandler
	service *topic.Service
	cascade *cascade.Service
}

func NewTopicHandler(base *BaseHandler, service *topic.Service, cascade *cascade.Service) *TopicHandler {
	return &TopicHandler{
		BaseHandler: base,
		service:     service,
		cascade:     cascade,
	}
}

// RegisterRoutes wires topic endpoints onto the authenticated group.
// restoreGate is the policy middleware guarding restore operations.
func (h *TopicHandler) RegisterRoutes(rg *gin.RouterGroup, restoreGate gin.HandlerFunc) {
	topics := rg.Group("/topics")
	{
		topics.GET("", h.List)
		topics.POST("", h.Create)
		topics.GET("/:id", h.Get)
		topics.PUT("/:id", h.Update)
		topics.DELETE("/:id", h.Delete)
		topics.POST("/:id/restore", restoreGate, h.Restore)
		topics.POST("/:id/restore-tree", restoreGate, h.RestoreTree)
	}
}

// List handles GET /topics
func (h *TopicHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), h.ListFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Create handles POST /topics
func (h *TopicHandler) Create(c *gin.Context) {
	var req dto.CreateTopicRequest
	if !h.BindJSON(c, &req) {
		return
	}

	t := topic.New(req.Slug, req.Title)
	t.Description = req.Description

	if err := h.service.Create(c.Request.Context(), t); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, t.ID.String())
}

// Get handles GET /topics/:id
func (h *TopicHandler) Get(c *gin.Context) {
	topicID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), topicID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, t)
}

// Update handles PUT /topics/:id
func (h *TopicHandler) Update(c *gin.Context) {
	topicID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTopicRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	t, err := h.service.GetByID(ctx, topicID)
	if err != nil {
		h.Error(c, err)
		return
	}

	t.Title = req.Title
	t.Description = req.Description
	t.SetVersion(req.Version)

	if err := h.service.Update(ctx, t); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, t)
}

// Delete handles DELETE /topics/:id (soft delete).
func (h *TopicHandler) Delete(c *gin.Context) {
	topicID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), topicID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Restore handles POST /topics/:id/restore
func (h *TopicHandler) Restore(c *gin.Context) {
	topicID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	t, err := h.service.Restore(c.Request.Context(), topicID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, t)
}

// RestoreTree handles POST /topics/:id/restore-tree: the topic plus its
// deleted questions, atomically.
func (h *TopicHandler) RestoreTree(c *gin.Context) {
	topicID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	result, err := h.cascade.RestoreTopic(c.Request.Context(), topicID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}
