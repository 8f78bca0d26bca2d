package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"incorpora/internal/engine"
	apperrors "incorpora/internal/errors"
	"incorpora/internal/models"
	"incorpora/internal/pagination"
	"incorpora/internal/uuid"
)

// scenarioService handles scenario lifecycle and the validate+simulate
// pipeline.
type scenarioService struct {
	db             *gorm.DB
	projectService ProjectServicer
}

// NewScenarioService creates a new ScenarioServicer.
func NewScenarioService(db *gorm.DB, projectService ProjectServicer) ScenarioServicer {
	return &scenarioService{db: db, projectService: projectService}
}

// runPipeline reruns validation and simulation against the scenario's
// current premises and replaces the cached outputs wholesale. There is no
// incremental recomputation: every edit costs a full re-simulation.
func runPipeline(s *models.Scenario) {
	validation := engine.ValidateScenario(s.Input())
	results := engine.RunSimulation(s.Input())
	now := time.Now()

	s.Validation = &validation
	s.Results = &results
	s.LastCalculatedAt = &now

	switch {
	case s.IsSnapshot():
		s.Status = models.ScenarioStatusAnalyzed
	case validation.Status == engine.GateBlocker:
		s.Status = models.ScenarioStatusIncomplete
	default:
		s.Status = models.ScenarioStatusReady
	}
}

// getOwnedScenario loads a scenario and checks that its project belongs to
// the user.
func (s *scenarioService) getOwnedScenario(userID, scenarioID string) (*models.Scenario, error) {
	var scenario models.Scenario
	err := s.db.Joins("JOIN projects ON projects.id = scenarios.project_id").
		Where("scenarios.id = ? AND projects.user_id = ? AND projects.deleted_at IS NULL", scenarioID, userID).
		First(&scenario).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrScenarioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &scenario, nil
}

// CreateScenario creates an editable scenario with default premises and runs
// the pipeline once so the caller immediately sees a quality-gate verdict.
func (s *scenarioService) CreateScenario(userID, projectID, name string) (*models.Scenario, error) {
	project, err := s.projectService.GetProjectByID(userID, projectID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = "Cenário Base"
	}

	scenario := &models.Scenario{
		ProjectID: project.ID,
		Name:      name,
		ProjectData: engine.ProjectData{
			Name:            project.Name,
			Location:        project.Location,
			AcquisitionType: engine.AcquisitionCash,
		},
		Indices:       defaultIndices(),
		SalesPremises: defaultSalesPremises(),
		Costs:         []engine.CostCategory{},
	}
	runPipeline(scenario)

	if err := s.db.Create(scenario).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// First scenario becomes the project's portfolio representative.
	if project.ActiveScenarioID == "" {
		if err := s.db.Model(project).Update("active_scenario_id", scenario.ID).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return scenario, nil
}

// CopyScenario duplicates a scenario's premises into a new editable
// scenario. The copy starts with no snapshots of its own.
func (s *scenarioService) CopyScenario(userID, scenarioID, name string) (*models.Scenario, error) {
	source, err := s.getOwnedScenario(userID, scenarioID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = source.Name + " (Cópia)"
	}

	clone := &models.Scenario{
		ProjectID:     source.ProjectID,
		Name:          name,
		ProjectData:   source.ProjectData,
		Indices:       source.Indices,
		SalesPremises: source.SalesPremises,
		Costs:         append([]engine.CostCategory{}, source.Costs...),
	}
	runPipeline(clone)

	if err := s.db.Create(clone).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return clone, nil
}

// GetScenarioByID returns a scenario or snapshot by ID.
func (s *scenarioService) GetScenarioByID(userID, scenarioID string) (*models.Scenario, error) {
	return s.getOwnedScenario(userID, scenarioID)
}

// GetProjectScenarios returns the project's live scenarios, snapshots
// excluded.
func (s *scenarioService) GetProjectScenarios(userID, projectID string, page pagination.PageRequest) (*pagination.PageResponse[models.Scenario], error) {
	if _, err := s.projectService.GetProjectByID(userID, projectID); err != nil {
		return nil, err
	}
	page.Defaults()

	base := s.db.Model(&models.Scenario{}).Where("project_id = ? AND parent_id IS NULL", projectID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var scenarios []models.Scenario
	if err := base.Order("created_at").Scopes(pagination.Paginate(page)).Find(&scenarios).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(scenarios, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetSnapshots returns the immutable versions of a scenario, oldest first.
// "Snapshots of S" is a query over the flat version store, not an embedded
// list.
func (s *scenarioService) GetSnapshots(userID, scenarioID string) ([]models.Scenario, error) {
	if _, err := s.getOwnedScenario(userID, scenarioID); err != nil {
		return nil, err
	}

	var snapshots []models.Scenario
	if err := s.db.Where("parent_id = ?", scenarioID).Order("created_at").Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return snapshots, nil
}

// mutate applies fn to an editable scenario, reruns the pipeline, and saves
// the whole row. A read-only scenario is returned unchanged: the write is a
// silent no-op, not an error.
func (s *scenarioService) mutate(userID, scenarioID string, fn func(*models.Scenario) error) (*models.Scenario, error) {
	scenario, err := s.getOwnedScenario(userID, scenarioID)
	if err != nil {
		return nil, err
	}
	if scenario.IsReadOnly {
		return scenario, nil
	}

	if err := fn(scenario); err != nil {
		return nil, err
	}
	runPipeline(scenario)

	if err := s.db.Save(scenario).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return scenario, nil
}

// UpdateScenario applies a tagged update to the scenario's premises.
func (s *scenarioService) UpdateScenario(userID, scenarioID string, update ScenarioUpdate) (*models.Scenario, error) {
	return s.mutate(userID, scenarioID, func(scenario *models.Scenario) error {
		if update.Name != nil {
			scenario.Name = *update.Name
		}
		if update.ProjectData != nil {
			// Dependent areas are derived, never trusted from the caller.
			scenario.ProjectData = engine.DeriveAreas(*update.ProjectData)
		}
		if update.Indices != nil {
			scenario.Indices = *update.Indices
		}
		if update.SalesPremises != nil {
			scenario.SalesPremises = *update.SalesPremises
		}
		return nil
	})
}

// normalizeCost enforces that a cost is either a direct value or a VGV
// percentage: setting one clears the other.
func normalizeCost(cost engine.CostCategory) engine.CostCategory {
	if cost.VGVPercentage > 0 {
		cost.TotalValue = 0
	}
	if cost.DistributionType == "" {
		cost.DistributionType = engine.DistributionLinear
	}
	return cost
}

// AddCost appends a cost item to the scenario.
func (s *scenarioService) AddCost(userID, scenarioID string, cost engine.CostCategory) (*models.Scenario, error) {
	return s.mutate(userID, scenarioID, func(scenario *models.Scenario) error {
		if cost.ID == "" {
			cost.ID = uuid.New()
		}
		scenario.Costs = append(scenario.Costs, normalizeCost(cost))
		return nil
	})
}

// UpdateCost replaces a cost item in place, keeping its position.
func (s *scenarioService) UpdateCost(userID, scenarioID, costID string, cost engine.CostCategory) (*models.Scenario, error) {
	return s.mutate(userID, scenarioID, func(scenario *models.Scenario) error {
		for i := range scenario.Costs {
			if scenario.Costs[i].ID == costID {
				cost.ID = costID
				scenario.Costs[i] = normalizeCost(cost)
				return nil
			}
		}
		return apperrors.ErrCostNotFound
	})
}

// RemoveCost deletes a cost item from the scenario.
func (s *scenarioService) RemoveCost(userID, scenarioID, costID string) (*models.Scenario, error) {
	return s.mutate(userID, scenarioID, func(scenario *models.Scenario) error {
		for i := range scenario.Costs {
			if scenario.Costs[i].ID == costID {
				scenario.Costs = append(scenario.Costs[:i], scenario.Costs[i+1:]...)
				return nil
			}
		}
		return apperrors.ErrCostNotFound
	})
}

// CreateSnapshot freezes the scenario's current state into a new read-only
// row pointing back at the source. The source stays live and editable;
// snapshotting a snapshot is a no-op that returns the snapshot itself, so
// versions are always leaves.
func (s *scenarioService) CreateSnapshot(userID, scenarioID string) (*models.Scenario, error) {
	source, err := s.getOwnedScenario(userID, scenarioID)
	if err != nil {
		return nil, err
	}
	if source.IsReadOnly {
		return source, nil
	}

	var version int64
	if err := s.db.Model(&models.Scenario{}).Where("parent_id = ?", source.ID).Count(&version).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	parentID := source.ID
	snapshot := &models.Scenario{
		ProjectID:     source.ProjectID,
		Name:          fmt.Sprintf("%s - v%d (Oficial)", source.Name, version+1),
		IsReadOnly:    true,
		ParentID:      &parentID,
		ProjectData:   source.ProjectData,
		Indices:       source.Indices,
		SalesPremises: source.SalesPremises,
		Costs:         append([]engine.CostCategory{}, source.Costs...),
	}
	runPipeline(snapshot)

	if err := s.db.Create(snapshot).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return snapshot, nil
}

// Recalculate reruns the full pipeline without changing any premise.
// Read-only rows keep their frozen results.
func (s *scenarioService) Recalculate(userID, scenarioID string) (*models.Scenario, error) {
	return s.mutate(userID, scenarioID, func(*models.Scenario) error { return nil })
}

// DeleteScenario soft-deletes a scenario along with its snapshots.
func (s *scenarioService) DeleteScenario(userID, scenarioID string) error {
	scenario, err := s.getOwnedScenario(userID, scenarioID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", scenario.ID).Delete(&models.Scenario{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(scenario).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
