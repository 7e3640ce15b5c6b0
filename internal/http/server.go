// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/YukiAminaka/cycle-route/internal/http/handlers"
	"github.com/YukiAminaka/cycle-route/internal/http/middleware"
	"github.com/YukiAminaka/cycle-route/internal/modules/routes"
	"github.com/YukiAminaka/cycle-route/internal/modules/search"
	"github.com/YukiAminaka/cycle-route/internal/modules/waypoint"
)

type ServerDeps struct {
	Planner      *waypoint.Session
	SearchClient *search.Client
	Routes       *routes.Store
	MaptilerKey  string
}

// NewRouter wires the gin engine with middleware and every API route.
func NewRouter(deps ServerDeps) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery(), middleware.CORS())

	searchHandler := handlers.NewSearchHandler(deps.SearchClient)
	r.GET("/api/search/suggest", searchHandler.Suggest)
	r.POST("/api/search/retrieve", searchHandler.Retrieve)

	plannerHandler := handlers.NewPlannerHandler(deps.Planner)
	r.GET("/api/planner", plannerHandler.State)
	r.GET("/api/planner/cuesheet", plannerHandler.CueSheet)
	r.POST("/api/planner/waypoints", plannerHandler.AddWaypoint)
	r.DELETE("/api/planner/waypoints/:index", plannerHandler.RemoveWaypoint)
	r.POST("/api/planner/undo", plannerHandler.Undo)
	r.POST("/api/planner/clear", plannerHandler.Clear)

	routesHandler := handlers.NewRoutesHandler(deps.Routes)
	r.POST("/api/routes", routesHandler.Save)
	r.GET("/api/routes", routesHandler.List)
	r.DELETE("/api/routes/:id", routesHandler.Delete)

	maptilerKey := deps.MaptilerKey
	r.GET("/api/map-style", func(c *gin.Context) {
		if maptilerKey == "" {
			c.JSON(http.StatusOK, gin.H{"style_url": ""})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"style_url": "https://api.maptiler.com/maps/streets-v2/style.json?key=" + maptilerKey,
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
