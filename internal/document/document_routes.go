package document

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
	own := r.Group("/employee/documents")
	own.Use(middleware.AuthMiddleware())
	{
		own.POST("", middleware.RBACAuthorize(rbacService, "document", "create"), handler.Create)
		own.GET("", middleware.RBACAuthorize(rbacService, "document", "read"), handler.GetOwn)
		own.POST("/:id/submit", middleware.RBACAuthorize(rbacService, "document", "create"), handler.Submit)
	}

	hr := r.Group("/hr/documents")
	hr.Use(middleware.AuthMiddleware())
	{
		hr.GET("", middleware.RBACAuthorize(rbacService, "document", "approve"), handler.GetAll)
		hr.POST("/request", middleware.RBACAuthorize(rbacService, "document", "request"), handler.Request)
		hr.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "document", "approve"), handler.Approve)
		hr.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "document", "approve"), handler.Reject)
	}
}
