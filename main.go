package main

import (
	"log"
	"os"
	"time"

	"Gavel/config"
	_ "Gavel/config/swagger"
	"Gavel/middleware"
	"Gavel/routes"
	"Gavel/services/auction"
	"Gavel/services/redis"
	"Gavel/services/simulation"
	"Gavel/services/socket_io"
	socketio_types "Gavel/services/socket_io/types"
	gavelsync "Gavel/sync"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// @title Gavel API
// @version 1.0
// @description Gin-Gonic server for the Gavel live auction backend
// @BasePath /
func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormDB, err := config.ConnectGORM()
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	log.Println("GORM Connected")

	// Only migrate in development or during deployment
	if os.Getenv("MIGRATE_POSTGRES") == "true" {
		log.Println("Migrating PostgreSQL database...")
		if err := config.MigrateDatabase(gormDB); err != nil {
			log.Printf("Warning: Database migration failed: %v", err)
		} else {
			log.Println("Database migrated successfully")
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
	}
	defer sqlDB.Close()

	redisClient, err := config.ConnectRedis()
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redis.CloseRedis(redisClient)

	r := gin.Default()

	middleware.SetUpMiddleware(r)

	routes.SetupRoutes(r, gormDB, redisClient)

	sio := socketio_types.NewSocketServer()
	engine := auction.NewEngine(auction.EngineOptions{
		Broadcast: socket_io.NewSioBroadcaster(sio),
		Mirror:    redisClient,
		Simulator: simulation.NewSimulator(time.Now().UnixNano()),
		Recorder:  gavelsync.NewSyncManager(gormDB),
	})
	(*socket_io.MySocketServer)(sio).Start(r, engine)

	// Configure port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
