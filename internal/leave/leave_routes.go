package leave

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
	own := r.Group("/employee/leaves")
	own.Use(middleware.AuthMiddleware())
	{
		own.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.Create)
		own.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetOwn)
	}

	hr := r.Group("/hr/leaves")
	hr.Use(middleware.AuthMiddleware())
	{
		hr.GET("", middleware.RBACAuthorize(rbacService, "leave", "read-all"), handler.GetAll)
		hr.GET("/employee/:employeeId", middleware.RBACAuthorize(rbacService, "leave", "read-all"), handler.GetByEmployee)
		hr.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Approve)
		hr.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.Reject)
	}
}
