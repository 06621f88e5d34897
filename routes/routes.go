package routes

import (
	"Gavel/controllers"
	"Gavel/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, snapshots controllers.SnapshotStore) {
	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.GET("/users/:username", controllers.GetUserPublicInfo(db))

	api.POST("/login", controllers.Login(db))

	api.POST("/signup", controllers.SignUp(db))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.DELETE("/logout", controllers.Logout)

		authentication.GET("/me", controllers.GetUserPrivateInfo(db))

		authentication.GET("/history", controllers.GetUserHistory(db))

		authentication.GET("/rooms/:roomId", controllers.GetRoomSnapshot(snapshots))
	}
}
