package middleware

import (
	"github.com/gin-gonic/gin"

	"quizbank/internal/core/id"
	"quizbank/internal/core/security"
)

// ActorContext extracts the authenticated user's ID from gin context and
// propagates it as the acting user for the domain layer, which stamps
// deleted_by and audit actors from it.
//
// Must run AFTER Auth middleware, which sets "user_id" in gin context.
func ActorContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, exists := c.Get("user_id"); exists {
			if uid, ok := userID.(string); ok && uid != "" {
				if actorID, err := id.Parse(uid); err == nil {
					ctx := security.WithActorID(c.Request.Context(), actorID)
					c.Request = c.Request.WithContext(ctx)
				}
			}
		}
		c.Next()
	}
}
