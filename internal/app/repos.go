package app

import (
	"gorm.io/gorm"

	"github.com/radarloop/radarloop-backend/internal/data/repos"
	"github.com/radarloop/radarloop-backend/internal/pkg/logger"
)

type Repos struct {
	User     repos.UserRepo
	Item     repos.ItemRepo
	Decision repos.DecisionRepo
	Weight   repos.WeightRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:     repos.NewUserRepo(db, log),
		Item:     repos.NewItemRepo(db, log),
		Decision: repos.NewDecisionRepo(db, log),
		Weight:   repos.NewWeightRepo(db, log),
	}
}
