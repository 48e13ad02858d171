package main

import (
	"log"

	"tripsplit-backend/config"
	"tripsplit-backend/database"
	"tripsplit-backend/routes"
	"tripsplit-backend/services"
)

func main() {
	// Load configuration
	config.Load()

	// Connect to database
	database.Connect()

	// Connect to Redis (optional, won't crash if unavailable)
	database.ConnectRedis()

	// Firebase messaging (optional as well)
	services.InitPush()

	r := routes.Setup()

	port := config.AppConfig.Port
	addr := "0.0.0.0:" + port
	log.Printf("🚀 %s server starting on %s", config.AppConfig.AppName, addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
