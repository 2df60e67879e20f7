package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Entry struct {
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	Meta       map[string]any
}

type LogResponse struct {
	ID         string          `json:"id"`
	ActorID    string          `json:"actorId,omitempty"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId,omitempty"`
	Meta       json.RawMessage `json:"meta,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	// Record is fire-and-forget: a failed write must never fail the
	// operation being audited.
	Record(ctx context.Context, entry Entry)
	GetRecent(ctx context.Context, limit int) ([]LogResponse, error)
	GetByEntity(ctx context.Context, entityType, entityID string) ([]LogResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Record(ctx context.Context, entry Entry) {
	row := &AuditLog{
		ID:         uuid.New(),
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
	}
	if actorUUID, err := uuid.Parse(entry.ActorID); err == nil {
		row.ActorID = &actorUUID
	}
	if entry.Meta != nil {
		if payload, err := json.Marshal(entry.Meta); err == nil {
			row.Meta = payload
		}
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("audit write failed",
			zap.String("action", entry.Action),
			zap.String("entity_type", entry.EntityType),
			zap.Error(err),
		)
	}
}

func (s *service) GetRecent(ctx context.Context, limit int) ([]LogResponse, error) {
	entries, err := s.repo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(entries), nil
}

func (s *service) GetByEntity(ctx context.Context, entityType, entityID string) ([]LogResponse, error) {
	entries, err := s.repo.FindByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(entries), nil
}

func mapToListResponse(entries []AuditLog) []LogResponse {
	resp := make([]LogResponse, len(entries))
	for i, e := range entries {
		resp[i] = LogResponse{
			ID:         e.ID.String(),
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Meta:       json.RawMessage(e.Meta),
			CreatedAt:  e.CreatedAt,
		}
		if e.ActorID != nil {
			resp[i].ActorID = e.ActorID.String()
		}
	}
	return resp
}
