package tutorial

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, handler *Handler) {
	group := router.Group("/tutorials")
	{
		group.POST("/generate", handler.GenerateTutorial)
		group.GET("", handler.GetTutorials)
		group.GET("/:id", handler.GetTutorial)
		group.POST("/upload-image", handler.UploadImage)
	}
}
