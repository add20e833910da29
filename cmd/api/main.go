package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/jhoownogueira/TaskFlowAPI/internal/api/app"
)

func main() {
	// Optional local overrides; the environment wins in deployment.
	_ = godotenv.Load()

	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
