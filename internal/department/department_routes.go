package department

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
	departments := r.Group("/hr/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", middleware.RBACAuthorize(rbacService, "department", "read"), handler.GetAll)
		departments.GET("/:id", middleware.RBACAuthorize(rbacService, "department", "read"), handler.GetByID)
		departments.POST("", middleware.RBACAuthorize(rbacService, "department", "manage"), handler.Create)
		departments.PUT("/:id", middleware.RBACAuthorize(rbacService, "department", "manage"), handler.Update)
		departments.POST("/:id/archive", middleware.RBACAuthorize(rbacService, "department", "manage"), handler.Archive)
		departments.POST("/:id/designations", middleware.RBACAuthorize(rbacService, "department", "manage"), handler.AddDesignation)
	}
}
