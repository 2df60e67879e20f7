package profilechange

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
	own := r.Group("/employee/profile-changes")
	own.Use(middleware.AuthMiddleware())
	{
		own.POST("", middleware.RBACAuthorize(rbacService, "profile-change", "create"), handler.Create)
		own.GET("", middleware.RBACAuthorize(rbacService, "profile-change", "read"), handler.GetOwn)
	}

	hr := r.Group("/hr/profile-changes")
	hr.Use(middleware.AuthMiddleware())
	{
		hr.GET("/pending", middleware.RBACAuthorize(rbacService, "profile-change", "approve"), handler.GetAllPending)
		hr.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "profile-change", "approve"), handler.Approve)
		hr.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "profile-change", "approve"), handler.Reject)
	}
}
