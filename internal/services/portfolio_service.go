package services

import (
	"errors"

	"gorm.io/gorm"

	"incorpora/internal/engine"
	apperrors "incorpora/internal/errors"
	"incorpora/internal/models"
)

// portfolioService consolidates the active scenario of every project owned
// by a user into a single portfolio view.
type portfolioService struct {
	db *gorm.DB
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB) PortfolioServicer {
	return &portfolioService{db: db}
}

// Consolidate aggregates the cached results of each project's active
// scenario. Projects without an active scenario, or whose active scenario has
// never been computed, are skipped rather than failing the whole
// consolidation.
func (s *portfolioService) Consolidate(userID string) (*engine.PortfolioMetrics, error) {
	var projects []models.Project
	if err := s.db.Where("user_id = ?", userID).Find(&projects).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	results := make([]engine.SimulationResults, 0, len(projects))
	for _, project := range projects {
		if project.ActiveScenarioID == "" {
			continue
		}

		var scenario models.Scenario
		err := s.db.Where("id = ? AND project_id = ?", project.ActiveScenarioID, project.ID).First(&scenario).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if scenario.Results == nil {
			continue
		}
		results = append(results, *scenario.Results)
	}

	metrics := engine.ConsolidatePortfolio(results)
	return &metrics, nil
}
