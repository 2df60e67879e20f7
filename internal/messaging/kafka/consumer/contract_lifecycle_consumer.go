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

var contractEventTitles = map[string]string{
	events.ContractCreated:    "Contract created",
	events.ContractRenewed:    "Contract renewed",
	events.ContractTerminated: "Contract terminated",
	events.ContractExpired:    "Contract expired",
}

func ConsumeContractLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.contract_lifecycle")
	log.Info("contract lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("contract lifecycle consumer stopped")
				return
			}
			log.Error("fetch contract lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.ContractLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode contract lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		title, ok := contractEventTitles[event.EventType]
		if !ok {
			title = "Contract updated"
		}
		message := fmt.Sprintf("Your %s contract was updated.", event.ContractType)
		if event.Reason != "" {
			message = fmt.Sprintf("Your %s contract was updated: %s.", event.ContractType, event.Reason)
		}

		_, err = notificationService.Create(ctx, notification.CreateNotificationRequest{
			EmployeeID: event.EmployeeID,
			Title:      title,
			Message:    message,
			Category:   "contract",
		})
		if err != nil {
			log.Error("create contract notification failed",
				zap.String("contract_id", event.ContractID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit contract lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("contract notification created",
			zap.String("contract_id", event.ContractID),
			zap.String("event_type", event.EventType),
		)
	}
}
