package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cicd-demo/board-service/internal/application"
)

// RouteHandler exposes the route planner.
type RouteHandler struct {
	planner *application.RoutePlanner
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(planner *application.RoutePlanner) *RouteHandler {
	return &RouteHandler{planner: planner}
}

// RegisterRoutes registers the route planner routes under r.
func (h *RouteHandler) RegisterRoutes(r *gin.RouterGroup) {
	routes := r.Group("/routes")
	{
		routes.GET("/waypoints", h.ListWaypoints)
		routes.POST("/plan", h.Plan)
	}
}

// ListWaypoints handles GET /api/routes/waypoints.
func (h *RouteHandler) ListWaypoints(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"available": h.planner.Available(),
		"waypoints": h.planner.Waypoints(),
	})
}

// Plan handles POST /api/routes/plan. The request blocks for the whole
// sequential fetch.
func (h *RouteHandler) Plan(c *gin.Context) {
	result := h.planner.Plan(c.Request.Context())
	if result.Failed() {
		c.JSON(http.StatusBadGateway, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
