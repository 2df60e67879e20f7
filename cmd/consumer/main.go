package main

import (
	"school-hris/internal/app"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Notification consumer. Reads lifecycle events from Kafka and turns them
// into in-app notifications.
func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := app.RunConsumer(); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
