package audit

import (
	"school-hris/internal/middleware"
	"school-hris/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	logs := r.Group("/hr/audit-logs")
	logs.Use(middleware.AuthMiddleware())
	{
		logs.GET("", middleware.RBACAuthorize(rbacService, "audit", "read"), handler.GetRecent)
		logs.GET("/:entityType/:entityId", middleware.RBACAuthorize(rbacService, "audit", "read"), handler.GetByEntity)
	}
}
