package auth

import (
	"school-hris/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/auth")
	{
		// login is the only unauthenticated mutation; throttle it per IP
		group.POST("/login", middleware.RateLimitByIP(rate.Limit(1), 5), handler.Login)
		group.POST("/refresh", handler.Refresh)
		group.POST("/logout", handler.Logout)
		group.GET("/me", middleware.AuthMiddleware(), handler.Me)
	}
}
