package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	WeightStateActive = "active"
	WeightStateMuted  = "muted"
)

// UserSignalWeight is one learned preference weight for one signal key.
// Rows are created lazily on first reference and never deleted; the weight
// only ever moves by addition, an explicit reset, or a mute/unmute of state.
type UserSignalWeight struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_signal_key,priority:1" json:"user_id"`
	SignalKey   string    `gorm:"not null;column:signal_key;uniqueIndex:idx_user_signal_key,priority:2" json:"signal_key"`
	FeatureType string    `gorm:"not null;column:feature_type;index" json:"feature_type"`
	Value       string    `gorm:"not null;column:value" json:"value"`

	Weight float64 `gorm:"not null;default:0" json:"weight"`
	State  string  `gorm:"not null;default:'active'" json:"state"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserSignalWeight) TableName() string { return "user_signal_weights" }

func (w UserSignalWeight) Muted() bool { return w.State == WeightStateMuted }
