package notification

import (
	"context"
	"time"

	notificationerrors "school-hris/internal/notification/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const unreadCountKeyPrefix = "notifications:unread:"

func unreadCountKey(employeeID string) string {
	return unreadCountKeyPrefix + employeeID
}

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateNotificationRequest) (NotificationResponse, error)
	ListForEmployee(ctx context.Context, employeeID string, limit int) ([]NotificationResponse, error)
	UnreadCount(ctx context.Context, employeeID string) (int64, error)
	MarkRead(ctx context.Context, employeeID, id string) error
	MarkAllRead(ctx context.Context, employeeID string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, rdb: rdb, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateNotificationRequest) (NotificationResponse, error) {
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidEmployeeID
	}

	category := req.Category
	if category == "" {
		category = "general"
	}

	n := &Notification{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		Title:      req.Title,
		Message:    req.Message,
		Category:   category,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("create notification persist failed", zap.Error(err))
		return NotificationResponse{}, err
	}

	s.invalidateUnreadCount(ctx, req.EmployeeID)

	s.logger.Info("notification created",
		zap.String("notification_id", n.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("category", category),
	)
	return mapToResponse(*n), nil
}

func (s *service) ListForEmployee(ctx context.Context, employeeID string, limit int) ([]NotificationResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	notifications, err := s.repo.FindByEmployee(ctx, employeeID, limit)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

// UnreadCount serves from redis when possible; the badge count is read on
// every page load, the table only on cache miss.
func (s *service) UnreadCount(ctx context.Context, employeeID string) (int64, error) {
	if s.rdb != nil {
		if count, err := s.rdb.Get(ctx, unreadCountKey(employeeID)).Int64(); err == nil {
			return count, nil
		}
	}

	count, err := s.repo.CountUnread(ctx, employeeID)
	if err != nil {
		return 0, err
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, unreadCountKey(employeeID), count, time.Minute).Err(); err != nil {
			s.logger.Warn("cache unread count failed", zap.Error(err))
		}
	}

	return count, nil
}

func (s *service) MarkRead(ctx context.Context, employeeID, id string) error {
	affected, err := s.repo.MarkRead(ctx, employeeID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return notificationerrors.ErrNotificationNotFound
	}
	s.invalidateUnreadCount(ctx, employeeID)
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, employeeID string) error {
	if err := s.repo.MarkAllRead(ctx, employeeID); err != nil {
		return err
	}
	s.invalidateUnreadCount(ctx, employeeID)
	return nil
}

func (s *service) invalidateUnreadCount(ctx context.Context, employeeID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, unreadCountKey(employeeID)).Err(); err != nil {
		s.logger.Warn("invalidate unread count failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
	}
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:         n.ID.String(),
		EmployeeID: n.EmployeeID.String(),
		Title:      n.Title,
		Message:    n.Message,
		Category:   n.Category,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		v := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}
