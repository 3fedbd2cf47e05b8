package signals

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/radarloop/radarloop-backend/internal/domain"
	"github.com/radarloop/radarloop-backend/internal/pkg/dbctx"
	"github.com/radarloop/radarloop-backend/internal/pkg/logger"
	sig "github.com/radarloop/radarloop-backend/internal/signals"
)

// WeightRepo is the persistent weight store. UpsertAdd must be an atomic
// SQL-side increment: concurrent decisions from the same user routinely hit
// the same signal key, and a read-modify-write here would lose updates.
// There is no cross-key atomicity; callers fan out one write per key.
type WeightRepo interface {
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) ([]types.UserSignalWeight, error)
	UpsertAdd(dbc dbctx.Context, userID uuid.UUID, key sig.SignalKey, delta float64) error
	SetMuted(dbc dbctx.Context, userID uuid.UUID, key sig.SignalKey, muted bool) error
	ResetWeight(dbc dbctx.Context, userID uuid.UUID, key sig.SignalKey) error
}

type weightRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWeightRepo(db *gorm.DB, baseLog *logger.Logger) WeightRepo {
	return &weightRepo{db: db, log: baseLog.With("repo", "WeightRepo")}
}

func (r *weightRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) ([]types.UserSignalWeight, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}
	var rows []types.UserSignalWeight
	if err := t.WithContext(dbc.Ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *weightRepo) UpsertAdd(dbc dbctx.Context, userID uuid.UUID, key sig.SignalKey, delta float64) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil
	}
	row := types.UserSignalWeight{
		ID:          uuid.New(),
		UserID:      userID,
		SignalKey:   key.String(),
		FeatureType: string(key.Type),
		Value:       key.Value,
		Weight:      delta,
		State:       types.WeightStateActive,
		UpdatedAt:   time.Now().UTC(),
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "signal_key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"weight":     gorm.Expr("user_signal_weights.weight + excluded.weight"),
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(&row).Error
}

func (r *weightRepo) SetMuted(dbc dbctx.Context, userID uuid.UUID, key sig.SignalKey, muted bool) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil
	}
	state := types.WeightStateActive
	if muted {
		state = types.WeightStateMuted
	}
	row := types.UserSignalWeight{
		ID:          uuid.New(),
		UserID:      userID,
		SignalKey:   key.String(),
		FeatureType: string(key.Type),
		Value:       key.Value,
		Weight:      0,
		State:       state,
		UpdatedAt:   time.Now().UTC(),
	}
	// State only; the accumulated weight survives a mute/unmute.
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "signal_key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"state":      state,
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(&row).Error
}

func (r *weightRepo) ResetWeight(dbc dbctx.Context, userID uuid.UUID, key sig.SignalKey) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil
	}
	row := types.UserSignalWeight{
		ID:          uuid.New(),
		UserID:      userID,
		SignalKey:   key.String(),
		FeatureType: string(key.Type),
		Value:       key.Value,
		Weight:      0,
		State:       types.WeightStateActive,
		UpdatedAt:   time.Now().UTC(),
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "signal_key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"weight":     0.0,
				"state":      types.WeightStateActive,
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(&row).Error
}
