package services

import (
	"incorpora/internal/engine"
	"incorpora/internal/models"
	"incorpora/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// ProjectServicer defines the contract for project-related business logic.
type ProjectServicer interface {
	CreateProject(userID, name, location, description string) (*models.Project, error)
	GetUserProjects(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Project], error)
	GetProjectByID(userID, projectID string) (*models.Project, error)
	UpdateProject(userID, projectID, name, location, description string) (*models.Project, error)
	DeleteProject(userID, projectID string) error
	SetActiveScenario(userID, projectID, scenarioID string) (*models.Project, error)
}

// ScenarioUpdate is the closed set of tagged scenario mutations. Exactly one
// section is applied per call; untyped field/value edits are not supported.
type ScenarioUpdate struct {
	Name          *string
	ProjectData   *engine.ProjectData
	Indices       *engine.EconomicIndices
	SalesPremises *engine.SalesPremises
}

// ScenarioServicer defines the contract for scenario lifecycle and the
// validate+simulate pipeline. Every mutation reruns the full pipeline and
// replaces the cached results; mutations against read-only rows are silent
// no-ops returning the unchanged scenario.
type ScenarioServicer interface {
	CreateScenario(userID, projectID, name string) (*models.Scenario, error)
	CopyScenario(userID, scenarioID, name string) (*models.Scenario, error)
	GetScenarioByID(userID, scenarioID string) (*models.Scenario, error)
	GetProjectScenarios(userID, projectID string, page pagination.PageRequest) (*pagination.PageResponse[models.Scenario], error)
	GetSnapshots(userID, scenarioID string) ([]models.Scenario, error)
	UpdateScenario(userID, scenarioID string, update ScenarioUpdate) (*models.Scenario, error)
	AddCost(userID, scenarioID string, cost engine.CostCategory) (*models.Scenario, error)
	UpdateCost(userID, scenarioID, costID string, cost engine.CostCategory) (*models.Scenario, error)
	RemoveCost(userID, scenarioID, costID string) (*models.Scenario, error)
	CreateSnapshot(userID, scenarioID string) (*models.Scenario, error)
	Recalculate(userID, scenarioID string) (*models.Scenario, error)
	DeleteScenario(userID, scenarioID string) error
}

// PortfolioServicer defines the contract for cross-project consolidation.
type PortfolioServicer interface {
	Consolidate(userID string) (*engine.PortfolioMetrics, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
	GetUserAuditLogs(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error)
}
