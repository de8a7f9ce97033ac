package todos

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arjunms/dailydo/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database) {
	store := NewMongoStore(db)
	service := NewService(store)
	handler := NewHandler(service)

	todos := router.Group("/todos")
	todos.Use(middleware.Auth())
	{
		todos.POST("/", handler.Create)
		todos.GET("/", handler.List)
		todos.GET("/stats", handler.Stats)
		todos.PUT("/:id", handler.Update)
		todos.PATCH("/:id/toggle", handler.Toggle)
		todos.DELETE("/:id", handler.Delete)
	}
}
