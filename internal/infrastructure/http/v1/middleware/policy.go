package middleware

import (
	"github.com/gin-gonic/gin"

	"quizbank/internal/core/security"
)

// RequirePolicy gates a route group behind a compiled CEL access policy.
// The action is fixed per group ("admin:read", "content:restore"); the
// entity is taken from the :entity route param when present.
func RequirePolicy(policy *security.Policy, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		entity := c.Param("entity")

		if err := policy.Require(c.Request.Context(), action, entity); err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Next()
	}
}
