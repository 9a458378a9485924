package main

import (
	"log"
	"os"

	"github.com/SadiqJ21/Tawsil-Webapp/internal/database"
	"github.com/SadiqJ21/Tawsil-Webapp/internal/handlers"
	"github.com/SadiqJ21/Tawsil-Webapp/internal/routes"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: no .env file found, relying on system environment variables")
	}

	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	app := &handlers.Handlers{DB: db}

	router := routes.SetupRouter(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting Tawsil API server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
