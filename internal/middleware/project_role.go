package middleware

import (
	"net/http"
	"strconv"

	"github.com/RadW2020/shogunito/backend/internal/services"
	"github.com/RadW2020/shogunito/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

const ContextProjectID = "project_id"

// RequireProjectRole guards project-scoped routes. It resolves the
// project id from the :id path param and rejects callers whose grant on
// that project is below minRole. Admins pass regardless of grants.
func RequireProjectRole(access *services.AccessService, minRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
			c.Abort()
			return
		}

		userCtx := GetUserContext(c)
		if err := access.VerifyAccess(uint(id), userCtx, minRole); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextProjectID, uint(id))
		c.Next()
	}
}

// GetProjectID returns the project id resolved by RequireProjectRole.
func GetProjectID(c *gin.Context) uint {
	if id, exists := c.Get(ContextProjectID); exists {
		return id.(uint)
	}
	return 0
}
