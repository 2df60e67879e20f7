package employee

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
	own := r.Group("/employee")
	own.Use(middleware.AuthMiddleware())
	{
		own.GET("/me", middleware.RBACAuthorize(rbacService, "employee", "read-self"), handler.GetSelf)
	}

	hr := r.Group("/hr/employees")
	hr.Use(middleware.AuthMiddleware())
	{
		hr.GET("", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetAll)
		hr.GET("/:id", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetByID)
		hr.POST("", middleware.RBACAuthorize(rbacService, "employee", "manage"), handler.Create)
		hr.PUT("/:id", middleware.RBACAuthorize(rbacService, "employee", "manage"), handler.Update)
		hr.DELETE("/:id", middleware.RBACAuthorize(rbacService, "employee", "manage"), handler.Delete)
	}
}
