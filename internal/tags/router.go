package tags

import (
	"github.com/gin-gonic/gin"
)

func SetupTagRoutes(router *gin.RouterGroup, controller Controller) {
	router.GET("/tags", controller.GetTags) // GET /api/v1/tags
}
