package main

import (
	"school-hris/internal/app"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Outbox drain worker. Runs alongside the API and publishes pending
// outbox rows to Kafka.
func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := app.RunWorker(); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
