package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Item is an analyzed content item from the upstream analysis provider.
// BaseScore and Categories arrive pre-computed; Signals caches the extracted
// signal bundle so scoring does not re-run extraction on every request.
type Item struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_item_user_column,priority:1" json:"user_id"`

	Title      string `gorm:"not null;column:title" json:"title"`
	Summary    string `gorm:"type:text;column:summary" json:"summary,omitempty"`
	URL        string `gorm:"column:url" json:"url,omitempty"`
	Categories string `gorm:"column:categories" json:"categories,omitempty"`
	Excerpt    string `gorm:"type:text;column:excerpt" json:"-"`

	BaseScore float64        `gorm:"not null;default:0;column:base_score" json:"base_score"`
	Signals   datatypes.JSON `gorm:"column:signals" json:"signals,omitempty"`

	// Column mirrors the triage board: inbox until a decision moves it.
	Column string `gorm:"not null;default:'inbox';column:board_column;index:idx_item_user_column,priority:2" json:"column"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Item) TableName() string { return "items" }
