package routes

import (
	"github.com/gin-gonic/gin"

	"lifeline/cluster"
	"lifeline/handlers"
	"lifeline/metrics"
	"lifeline/store"
)

func SetupRouter(st *store.Store, opts cluster.Options) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to LifeLine!",
		})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// api routes; the store is injected into each handler
	api := r.Group("/api/lifeline")
	{
		api.GET("/donors", func(c *gin.Context) { handlers.GetDonorsHandler(c, st) })
		api.GET("/topdonors", func(c *gin.Context) { handlers.GetTopDonorsHandler(c, st) })
		api.GET("/donor/:bridgeId", func(c *gin.Context) { handlers.GetDonorHandler(c, st) })
		api.GET("/stats", func(c *gin.Context) { handlers.GetStatsHandler(c, st) })
		api.GET("/clusters", func(c *gin.Context) { handlers.GetClustersHandler(c, st) })
		api.GET("/clusters/:id/expansion", func(c *gin.Context) { handlers.ClusterExpansionHandler(c, st) })
		api.GET("/clusters/:id/leaves", func(c *gin.Context) { handlers.ClusterLeavesHandler(c, st) })
		api.POST("/dataset", func(c *gin.Context) { handlers.UploadDatasetHandler(c, st, opts) })
		api.GET("/export", func(c *gin.Context) { handlers.ExportDonorsHandler(c, st) })
	}

	return r
}
