package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"school-hris/internal/events"
	"school-hris/internal/messaging/kafka/consumer"
	"school-hris/internal/notification"
	"school-hris/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer fans domain events out into in-app notifications. One
// reader per topic, each with its own consumer group so a slow topic
// cannot stall the others.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connectDatabase()
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	notificationRepo := notification.NewRepository(gormDB)
	notificationService := notification.NewService(notificationRepo, rdb)

	newReader := func(topic, groupID string) *kafkago.Reader {
		return kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        []string{kafkaBroker},
			Topic:          topic,
			GroupID:        groupID,
			CommitInterval: 0,
			StartOffset:    kafkago.FirstOffset,
		})
	}

	leaveReader := newReader(events.LeaveStatusChangedTopic, "school-hris-leave-notifications")
	defer leaveReader.Close()
	contractReader := newReader(events.ContractLifecycleTopic, "school-hris-contract-notifications")
	defer contractReader.Close()
	profileReader := newReader(events.ProfileChangeResolvedTopic, "school-hris-profile-notifications")
	defer profileReader.Close()
	employeeReader := newReader(events.EmployeeCreatedTopic, "school-hris-employee-notifications")
	defer employeeReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeLeaveStatusChanged(ctx, leaveReader, notificationService, logger)
	go consumer.ConsumeContractLifecycle(ctx, contractReader, notificationService, logger)
	go consumer.ConsumeProfileChangeResolved(ctx, profileReader, notificationService, logger)
	go consumer.ConsumeEmployeeCreated(ctx, employeeReader, notificationService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
