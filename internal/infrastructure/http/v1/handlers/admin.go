package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/id"
	"quizbank/internal/domain/audit"
)

// EntityFetcher reads one entity regardless of deletion state.
type EntityFetcher func(ctx context.Context, entityID id.ID) (any, error)

// EntityRestorer restores one soft-deleted entity.
type EntityRestorer func(ctx context.Context, entityID id.ID) (any, error)

// AdminHandler exposes the moderation surface: find-with-deleted, restore
// by entity type, and the audit trail. The router gates the whole group
// behind the access policy.
type AdminHandler struct {
	*BaseHandler
	fetchers  map[string]EntityFetcher
	restorers map[string]EntityRestorer
	events    *audit.Service
}

func NewAdminHandler(base *BaseHandler, events *audit.Service) *AdminHandler {
	return &AdminHandler{
		BaseHandler: base,
		fetchers:    make(map[string]EntityFetcher),
		restorers:   make(map[string]EntityRestorer),
		events:      events,
	}
}

// Register adds one entity type to the admin surface. The name must match
// the entityType recorded in domain events ("topic", "question").
func (h *AdminHandler) Register(name string, fetch EntityFetcher, restore EntityRestorer) {
	h.fetchers[name] = fetch
	h.restorers[name] = restore
}

// RegisterRoutes wires the admin endpoints.
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	{
		admin.GET("/:entity/:id", h.Get)
		admin.POST("/:entity/:id/restore", h.Restore)
		admin.GET("/:entity/:id/events", h.Events)
	}
}

func (h *AdminHandler) target(c *gin.Context) (string, id.ID, bool) {
	entity := c.Param("entity")
	entityID, ok := h.ParseID(c, "id")
	if !ok {
		return "", id.Nil(), false
	}
	return entity, entityID, true
}

// Get handles GET /admin/:entity/:id — reads through the include-deleted
// path, so moderators can inspect deleted rows with their deleted_at and
// deleted_by stamps.
func (h *AdminHandler) Get(c *gin.Context) {
	entity, entityID, ok := h.target(c)
	if !ok {
		return
	}

	fetch, ok := h.fetchers[entity]
	if !ok {
		h.Error(c, apperror.NewNotFound("entity type", entity))
		return
	}

	item, err := fetch(c.Request.Context(), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, item)
}

// Restore handles POST /admin/:entity/:id/restore
func (h *AdminHandler) Restore(c *gin.Context) {
	entity, entityID, ok := h.target(c)
	if !ok {
		return
	}

	restore, ok := h.restorers[entity]
	if !ok {
		h.Error(c, apperror.NewNotFound("entity type", entity))
		return
	}

	item, err := restore(c.Request.Context(), entityID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, item)
}

// Events handles GET /admin/:entity/:id/events — the lifecycle audit trail,
// newest first.
func (h *AdminHandler) Events(c *gin.Context) {
	entity, entityID, ok := h.target(c)
	if !ok {
		return
	}

	limit := h.ParseIntQuery(c, "limit", 100)
	offset := h.ParseIntQuery(c, "offset", 0)

	events, err := h.events.FindByEntity(c.Request.Context(), entity, entityID, limit, offset)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, events)
}
