package feed

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/radarloop/radarloop-backend/internal/domain"
	"github.com/radarloop/radarloop-backend/internal/pkg/dbctx"
	pkgerrors "github.com/radarloop/radarloop-backend/internal/pkg/errors"
	"github.com/radarloop/radarloop-backend/internal/pkg/logger"
)

type ItemRepo interface {
	Create(dbc dbctx.Context, item *types.Item) error
	GetByID(dbc dbctx.Context, itemID uuid.UUID) (*types.Item, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, column string) ([]types.Item, error)
	UpdateColumn(dbc dbctx.Context, itemID uuid.UUID, column string) error
	UpdateSignals(dbc dbctx.Context, itemID uuid.UUID, signals datatypes.JSON) error
}

type itemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewItemRepo(db *gorm.DB, baseLog *logger.Logger) ItemRepo {
	return &itemRepo{db: db, log: baseLog.With("repo", "ItemRepo")}
}

func (r *itemRepo) Create(dbc dbctx.Context, item *types.Item) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if item == nil {
		return nil
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.Column == "" {
		item.Column = "inbox"
	}
	return t.WithContext(dbc.Ctx).Create(item).Error
}

func (r *itemRepo) GetByID(dbc dbctx.Context, itemID uuid.UUID) (*types.Item, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.Item
	if err := t.WithContext(dbc.Ctx).First(&row, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *itemRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, column string) ([]types.Item, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil {
		return nil, nil
	}
	q := t.WithContext(dbc.Ctx).Where("user_id = ?", userID)
	if column != "" {
		q = q.Where("board_column = ?", column)
	}
	var rows []types.Item
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *itemRepo) UpdateColumn(dbc dbctx.Context, itemID uuid.UUID, column string) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).Model(&types.Item{}).
		Where("id = ?", itemID).
		Updates(map[string]interface{}{
			"board_column": column,
			"updated_at":   time.Now().UTC(),
		}).Error
}

func (r *itemRepo) UpdateSignals(dbc dbctx.Context, itemID uuid.UUID, signals datatypes.JSON) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).Model(&types.Item{}).
		Where("id = ?", itemID).
		Updates(map[string]interface{}{
			"signals":    signals,
			"updated_at": time.Now().UTC(),
		}).Error
}
