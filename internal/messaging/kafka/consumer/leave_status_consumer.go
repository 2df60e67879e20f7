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

// ConsumeLeaveStatusChanged fans leave decisions out to the employee's
// notification feed.
func ConsumeLeaveStatusChanged(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_status")
	log.Info("leave status consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave status consumer stopped")
				return
			}
			log.Error("fetch leave status message failed", zap.Error(err))
			continue
		}

		var event events.LeaveStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave status event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = notificationService.Create(ctx, notification.CreateNotificationRequest{
			EmployeeID: event.EmployeeID,
			Title:      fmt.Sprintf("Leave %s", event.Status),
			Message:    fmt.Sprintf("Your leave request for %s days in %s was %s.", event.DaysCount, event.SchoolYear, event.Status),
			Category:   "leave",
		})
		if err != nil {
			log.Error("create leave notification failed",
				zap.String("leave_id", event.LeaveID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave status message failed", zap.Error(err))
			continue
		}

		log.Info("leave notification created",
			zap.String("leave_id", event.LeaveID),
			zap.String("status", event.Status),
		)
	}
}
