package media

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arjunms/dailydo/internal/config"
	"github.com/arjunms/dailydo/internal/features/auth"
	"github.com/arjunms/dailydo/internal/middleware"
	"github.com/arjunms/dailydo/internal/pkg/cloudinary"
	"github.com/arjunms/dailydo/internal/pkg/logger"
)

func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	uploads, err := newUploadService(cfg)
	if err != nil {
		logger.Warn("Media uploads disabled: %v", err)
		uploads = nil
	}

	handler := NewHandler(uploads, auth.NewRepository(db))

	media := router.Group("/media")
	media.Use(middleware.Auth())
	{
		media.POST("/avatar", handler.UploadAvatar)
	}
}

func newUploadService(cfg *config.Config) (*cloudinary.Service, error) {
	return cloudinary.NewService(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
		cfg.CloudinaryUploadFolder,
	)
}
