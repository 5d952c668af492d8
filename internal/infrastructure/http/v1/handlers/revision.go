package handlers

import (
	"github.com/gin-gonic/gin"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/id"
	"quizbank/internal/core/security"
	"quizbank/internal/domain/revision"
	"quizbank/internal/infrastructure/http/v1/dto"
)

// RevisionHandler handles the revision review workflow.
type RevisionHandler struct {
	*BaseHandler
	service *revision.Service
}

func NewRevisionHandler(base *BaseHandler, service *revision.Service) *RevisionHandler {
	return &RevisionHandler{
		BaseHandler: base,
		service:     service,
	}
}

// RegisterRoutes wires revision endpoints onto the authenticated group.
// restoreGate guards restore; reviewGate guards the reviewer transitions.
func (h *RevisionHandler) RegisterRoutes(rg *gin.RouterGroup, restoreGate, reviewGate gin.HandlerFunc) {
	revisions := rg.Group("/revisions")
	{
		revisions.GET("/:id", h.Get)
		revisions.DELETE("/:id", h.Delete)
		revisions.POST("/:id/restore", restoreGate, h.Restore)
		revisions.POST("/:id/submit", h.Submit)
		revisions.POST("/:id/approve", reviewGate, h.Approve)
		revisions.POST("/:id/reject", reviewGate, h.Reject)
		revisions.POST("/:id/reopen", h.Reopen)
	}

	rg.GET("/questions/:id/revisions", h.ListByQuestion)
	rg.POST("/questions/:id/revisions", h.Create)
}

// ListByQuestion handles GET /questions/:id/revisions
func (h *RevisionHandler) ListByQuestion(c *gin.Context) {
	questionID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.ListByQuestion(c.Request.Context(), questionID, h.ListFilter(c))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Create handles POST /questions/:id/revisions
func (h *RevisionHandler) Create(c *gin.Context) {
	questionID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateRevisionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	author := security.GetActorID(ctx)
	if id.IsNil(author) {
		h.Error(c, apperror.NewUnauthorized("authentication required"))
		return
	}

	rev := revision.New(questionID, author, req.Prompt, req.Answer)
	if err := h.service.Create(ctx, rev); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, rev.ID.String())
}

// Get handles GET /revisions/:id
func (h *RevisionHandler) Get(c *gin.Context) {
	revisionID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	rev, err := h.service.GetByID(c.Request.Context(), revisionID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rev)
}

// Delete handles DELETE /revisions/:id (soft delete).
func (h *RevisionHandler) Delete(c *gin.Context) {
	revisionID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), revisionID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Restore handles POST /revisions/:id/restore
func (h *RevisionHandler) Restore(c *gin.Context) {
	revisionID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	rev, err := h.service.Restore(c.Request.Context(), revisionID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rev)
}

// Submit handles POST /revisions/:id/submit
func (h *RevisionHandler) Submit(c *gin.Context) {
	h.applyTransition(c, func(ctx *gin.Context, revisionID id.ID) (*revision.Revision, error) {
		return h.service.Submit(ctx.Request.Context(), revisionID)
	})
}

// Approve handles POST /revisions/:id/approve
func (h *RevisionHandler) Approve(c *gin.Context) {
	var req dto.ReviewRequest
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &req) {
		return
	}
	h.applyTransition(c, func(ctx *gin.Context, revisionID id.ID) (*revision.Revision, error) {
		return h.service.Approve(ctx.Request.Context(), revisionID, req.Note)
	})
}

// Reject handles POST /revisions/:id/reject
func (h *RevisionHandler) Reject(c *gin.Context) {
	var req dto.ReviewRequest
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &req) {
		return
	}
	h.applyTransition(c, func(ctx *gin.Context, revisionID id.ID) (*revision.Revision, error) {
		return h.service.Reject(ctx.Request.Context(), revisionID, req.Note)
	})
}

// Reopen handles POST /revisions/:id/reopen
func (h *RevisionHandler) Reopen(c *gin.Context) {
	h.applyTransition(c, func(ctx *gin.Context, revisionID id.ID) (*revision.Revision, error) {
		return h.service.Reopen(ctx.Request.Context(), revisionID)
	})
}

func (h *RevisionHandler) applyTransition(c *gin.Context, fn func(*gin.Context, id.ID) (*revision.Revision, error)) {
	revisionID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	rev, err := fn(c, revisionID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rev)
}
