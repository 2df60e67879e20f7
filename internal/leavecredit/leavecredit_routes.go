package leavecredit

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
	own := r.Group("/employee/leave-credits")
	own.Use(middleware.AuthMiddleware())
	{
		own.GET("", middleware.RBACAuthorize(rbacService, "leave-credit", "read"), handler.GetOwn)
	}

	hr := r.Group("/hr/leave-credits")
	hr.Use(middleware.AuthMiddleware())
	{
		hr.GET("/summary", middleware.RBACAuthorize(rbacService, "leave-credit", "read-all"), handler.Summary)
		hr.GET("/:employeeId", middleware.RBACAuthorize(rbacService, "leave-credit", "read-all"), handler.GetByEmployee)
		hr.POST("", middleware.RBACAuthorize(rbacService, "leave-credit", "manage"), handler.Initialize)
		hr.POST("/reset", middleware.RBACAuthorize(rbacService, "leave-credit", "reset"), handler.Reset)
		hr.PUT("/:employeeId", middleware.RBACAuthorize(rbacService, "leave-credit", "manage"), handler.ChangeEmploymentType)
	}
}
