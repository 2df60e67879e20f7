package certificate

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
	own := r.Group("/employee/certificates")
	own.Use(middleware.AuthMiddleware())
	{
		own.POST("", middleware.RBACAuthorize(rbacService, "certificate", "create"), handler.Create)
		own.GET("", middleware.RBACAuthorize(rbacService, "certificate", "read"), handler.GetOwn)
	}

	hr := r.Group("/hr/certificates")
	hr.Use(middleware.AuthMiddleware())
	{
		hr.GET("", middleware.RBACAuthorize(rbacService, "certificate", "approve"), handler.GetAll)
		hr.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "certificate", "approve"), handler.Approve)
		hr.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "certificate", "approve"), handler.Reject)
	}
}
