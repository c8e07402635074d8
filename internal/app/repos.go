package app

import (
	"gorm.io/gorm"

	"github.com/oriently/oriently-backend/internal/data/repos"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
)

type Repos struct {
	Submission repos.SubmissionRepo
	City       repos.CityRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Submission: repos.NewSubmissionRepo(db, log),
		City:       repos.NewCityRepo(db, log),
	}
}
