package contract

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
	contracts := r.Group("/hr/contracts")
	contracts.Use(middleware.AuthMiddleware())
	{
		contracts.POST("", middleware.RBACAuthorize(rbacService, "contract", "manage"), handler.Create)
		contracts.POST("/:id/renew", middleware.RBACAuthorize(rbacService, "contract", "manage"), handler.Renew)
		contracts.POST("/:id/terminate", middleware.RBACAuthorize(rbacService, "contract", "manage"), handler.Terminate)
		contracts.POST("/sweep", middleware.RBACAuthorize(rbacService, "contract", "manage"), handler.Sweep)
		contracts.GET("/expiring", middleware.RBACAuthorize(rbacService, "contract", "read"), handler.GetExpiring)
		contracts.GET("/employee/:employeeId", middleware.RBACAuthorize(rbacService, "contract", "read"), handler.GetByEmployee)
	}
}
