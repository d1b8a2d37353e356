package main

import (
	"os"

	"github.com/contractdesk-dev/contractdesk/db"
	"github.com/contractdesk-dev/contractdesk/internal/analysis"
	"github.com/contractdesk-dev/contractdesk/internal/auth"
	"github.com/contractdesk-dev/contractdesk/internal/handlers"
	"github.com/contractdesk-dev/contractdesk/internal/llm"
	"github.com/contractdesk-dev/contractdesk/internal/router"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("No .env file loaded: %v", err)
	}

	if err := auth.InitJWTSecret(); err != nil {
		logrus.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		logrus.Fatal("DATABASE_URL environment variable is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	client, err := llm.NewOpenAIClientFromEnv()

	if err != nil {
		logrus.Fatalf("Failed to configure LLM client: %v", err)
	}

	handlers.Analysis = analysis.NewService(client)

	r := router.NewRouter()

	port := os.Getenv("PORT")

	if port == "" {
		port = "3000"
		logrus.Info("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
