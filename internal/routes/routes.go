package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arjunms/dailydo/internal/config"
	"github.com/arjunms/dailydo/internal/features/auth"
	"github.com/arjunms/dailydo/internal/features/media"
	"github.com/arjunms/dailydo/internal/features/todos"
)

func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) {
	// API v1 group
	api := router.Group("/api/v1")

	auth.RegisterRoutes(api, db, cfg)
	todos.RegisterRoutes(api, db)
	media.RegisterRoutes(api, db, cfg)
}
