package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quizbank/internal/domain/auth"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
	}
}

// RegisterRoutes wires public and protected auth endpoints.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/register", h.Register)
	public.POST("/login", h.Login)
	protected.GET("/me", h.Me)
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	u, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, u)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, tokens)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.service.Me(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, u)
}
