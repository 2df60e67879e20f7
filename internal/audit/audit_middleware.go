package audit

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Trail records every successful mutating request against the audit
// trail. The entity type is derived from the route so handlers do not
// have to call the audit service themselves.
func Trail(service Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			return
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		entityType, entityID := splitRoute(c)
		service.Record(c.Request.Context(), Entry{
			ActorID:    c.GetString("employee_id"),
			Action:     c.Request.Method + " " + c.FullPath(),
			EntityType: entityType,
			EntityID:   entityID,
			Meta: map[string]any{
				"status":     c.Writer.Status(),
				"request_id": c.GetString("request_id"),
				"role":       c.GetString("role"),
			},
		})
	}
}

// splitRoute turns /api/v1/hr/leaves/:id/approve into ("leaves", <id>).
func splitRoute(c *gin.Context) (string, string) {
	segments := strings.Split(strings.Trim(c.FullPath(), "/"), "/")
	entityType := ""
	for _, seg := range segments {
		switch seg {
		case "api", "v1", "hr", "employee", "mis", "":
			continue
		}
		if strings.HasPrefix(seg, ":") {
			continue
		}
		entityType = seg
		break
	}

	entityID := c.Param("id")
	if entityID == "" {
		entityID = c.Param("employeeId")
	}
	return entityType, entityID
}
