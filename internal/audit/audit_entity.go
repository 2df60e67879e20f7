package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog is an append-only trail row. Rows are never updated or
// deleted.
type AuditLog struct {
	ID      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ActorID *uuid.UUID `gorm:"type:uuid;index"`

	Action     string `gorm:"type:varchar(50);not null;index"`
	EntityType string `gorm:"type:varchar(50);not null;index"`
	EntityID   string `gorm:"type:varchar(50)"`

	Meta datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"index"`
}
