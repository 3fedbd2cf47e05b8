package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Decision records one triage action on one item, together with the weight
// updates that were actually persisted for it (the authoritative record of
// partial application when some per-key writes fail).
type Decision struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_decision_user_time,priority:1" json:"user_id"`
	ItemID     uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	Action     string    `gorm:"not null;column:action" json:"action"`
	OccurredAt time.Time `gorm:"not null;index:idx_decision_user_time,priority:2" json:"occurred_at"`

	AppliedUpdates datatypes.JSON `gorm:"column:applied_updates" json:"applied_updates,omitempty"`
}

func (Decision) TableName() string { return "decisions" }
