package server

import (
	"royalty-core/internal/handler"
	"royalty-core/internal/handler/response"
	"royalty-core/internal/service"
	"royalty-core/pkg/errno"

	"github.com/gin-gonic/gin"
)

// SessionAuth rejects requests without a valid session cookie and stashes
// the administrator id for downstream handlers.
func SessionAuth(admins *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(handler.SessionCookie)
		if err != nil || token == "" {
			response.Error(c, errno.ErrTokenInvalid)
			c.Abort()
			return
		}

		adminID, err := admins.Verify(c.Request.Context(), token)
		if err != nil {
			response.Error(c, errno.ErrTokenInvalid)
			c.Abort()
			return
		}

		c.Set("admin_id", adminID)
		c.Next()
	}
}
