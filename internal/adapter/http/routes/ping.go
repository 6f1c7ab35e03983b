package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const banner = "✅ CampusEdge Server is running successfully — Powered by Edge Incorporated Limited"

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, banner)
	})
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}
