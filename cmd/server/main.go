package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/sednex/community-backend/cmd/server/commands"
	"github.com/sednex/community-backend/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize logger
	logger.Init()

	commands.Execute()
}
