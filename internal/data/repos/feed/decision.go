package feed

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/radarloop/radarloop-backend/internal/domain"
	"github.com/radarloop/radarloop-backend/internal/pkg/dbctx"
	"github.com/radarloop/radarloop-backend/internal/pkg/logger"
)

type DecisionRepo interface {
	Create(dbc dbctx.Context, decision *types.Decision) error
	ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]types.Decision, error)
}

type decisionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDecisionRepo(db *gorm.DB, baseLog *logger.Logger) DecisionRepo {
	return &decisionRepo{db: db, log: baseLog.With("repo", "DecisionRepo")}
}

func (r *decisionRepo) Create(dbc dbctx.Context, decision *types.Decision) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if decision == nil {
		return nil
	}
	if decision.ID == uuid.Nil {
		decision.ID = uuid.New()
	}
	if decision.OccurredAt.IsZero() {
		decision.OccurredAt = time.Now().UTC()
	}
	return t.WithContext(dbc.Ctx).Create(decision).Error
}

func (r *decisionRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]types.Decision, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	var rows []types.Decision
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
