// Package server exposes the phase/list/task hierarchy over a JSON REST
// API. Handlers are thin translations between wire DTOs and the service
// layer; ordering and move semantics live below.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"phaseboard/internal/dto"
	"phaseboard/internal/service"
)

// Services bundles the backend dependencies the router needs.
type Services struct {
	Phases service.PhaseService
	Lists  service.TaskListService
	Tasks  service.TaskService
	Tree   service.TreeService
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(svcs Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	phases := NewPhaseHandler(svcs.Phases)
	lists := NewTaskListHandler(svcs.Lists)
	tasks := NewTaskHandler(svcs.Tasks)

	api := r.Group("/api")
	{
		api.GET("/tree", func(c *gin.Context) {
			tree, err := svcs.Tree.Load(c.Request.Context())
			if err != nil {
				respondServiceError(c, err)
				return
			}
			c.JSON(http.StatusOK, dto.FromTree(tree))
		})

		// "order" is a literal segment; gin matches it before the :id
		// wildcard.
		api.PUT("/phases/order", phases.Reorder)
		api.POST("/phases", phases.Create)
		api.PUT("/phases/:id", phases.Update)
		api.DELETE("/phases/:id", phases.Delete)

		api.POST("/phases/:id/lists", lists.Create)
		api.PUT("/phases/:id/lists/order", lists.Reorder)
		api.PUT("/lists/:id", lists.Update)
		api.DELETE("/lists/:id", lists.Delete)

		api.POST("/lists/:id/tasks", tasks.Create)
		api.PUT("/tasks/:id", tasks.Update)
		api.DELETE("/tasks/:id", tasks.Delete)
		api.PUT("/tasks/:id/move", tasks.Move)
	}
	return r
}
