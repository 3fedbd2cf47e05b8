package repos

import (
	"gorm.io/gorm"

	"github.com/radarloop/radarloop-backend/internal/data/repos/feed"
	repoSignals "github.com/radarloop/radarloop-backend/internal/data/repos/signals"
	"github.com/radarloop/radarloop-backend/internal/data/repos/user"
	"github.com/radarloop/radarloop-backend/internal/pkg/logger"
)

type UserRepo = user.UserRepo
type ItemRepo = feed.ItemRepo
type DecisionRepo = feed.DecisionRepo
type WeightRepo = repoSignals.WeightRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewItemRepo(db *gorm.DB, baseLog *logger.Logger) ItemRepo { return feed.NewItemRepo(db, baseLog) }
func NewDecisionRepo(db *gorm.DB, baseLog *logger.Logger) DecisionRepo {
	return feed.NewDecisionRepo(db, baseLog)
}
func NewWeightRepo(db *gorm.DB, baseLog *logger.Logger) WeightRepo {
	return repoSignals.NewWeightRepo(db, baseLog)
}
