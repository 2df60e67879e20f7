package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"school-hris/internal/events"
	"school-hris/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func ConsumeEmployeeCreated(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_created")
	log.Info("employee created consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee created consumer stopped")
				return
			}
			log.Error("fetch employee created message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = notificationService.Create(ctx, notification.CreateNotificationRequest{
			EmployeeID: event.EmployeeID,
			Title:      "Welcome aboard",
			Message:    fmt.Sprintf("Welcome, %s! Your employee record has been created.", event.FullName),
			Category:   "employee",
		})
		if err != nil {
			log.Error("create welcome notification failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee created message failed", zap.Error(err))
			continue
		}

		log.Info("welcome notification created", zap.String("employee_id", event.EmployeeID))
	}
}
