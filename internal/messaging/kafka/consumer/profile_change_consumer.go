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

func ConsumeProfileChangeResolved(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.profile_change")
	log.Info("profile change consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("profile change consumer stopped")
				return
			}
			log.Error("fetch profile change message failed", zap.Error(err))
			continue
		}

		var event events.ProfileChangeResolvedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode profile change event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = notificationService.Create(ctx, notification.CreateNotificationRequest{
			EmployeeID: event.EmployeeID,
			Title:      fmt.Sprintf("Profile change %s", event.Status),
			Message:    fmt.Sprintf("Your profile change request was %s.", event.Status),
			Category:   "profile",
		})
		if err != nil {
			log.Error("create profile change notification failed",
				zap.String("request_id", event.ID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit profile change message failed", zap.Error(err))
			continue
		}

		log.Info("profile change notification created",
			zap.String("request_id", event.ID),
			zap.String("status", event.Status),
		)
	}
}
