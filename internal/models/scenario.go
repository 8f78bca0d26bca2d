package models

import (
	"time"

	"incorpora/internal/engine"
)

// ScenarioStatus tracks a scenario's position in the analysis workflow.
type ScenarioStatus string

const (
	ScenarioStatusIncomplete ScenarioStatus = "incomplete"
	ScenarioStatusReady      ScenarioStatus = "ready"
	ScenarioStatusAnalyzed   ScenarioStatus = "analyzed"
)

// Scenario is one what-if configuration of a project. Inputs are stored as
// JSON documents and the engine outputs are cached alongside them; every
// input mutation replaces the cached results wholesale.
//
// Snapshots are plain scenario rows with IsReadOnly set and ParentID
// pointing at the source scenario: a flat version store, never a nested
// tree. Read-only rows are never mutated; writes against them are silent
// no-ops at the service layer.
type Scenario struct {
	Base
	ProjectID  string         `gorm:"type:uuid;not null;index" json:"project_id"`
	Name       string         `gorm:"not null" json:"name"`
	Status     ScenarioStatus `gorm:"not null;default:ready" json:"status"`
	IsReadOnly bool           `gorm:"not null;default:false" json:"is_read_only"`
	ParentID   *string        `gorm:"type:uuid;index" json:"parent_id,omitempty"`

	// Inputs
	ProjectData   engine.ProjectData     `gorm:"serializer:json" json:"project_data"`
	Indices       engine.EconomicIndices `gorm:"serializer:json" json:"indices"`
	SalesPremises engine.SalesPremises   `gorm:"serializer:json" json:"sales_premises"`
	Costs         []engine.CostCategory  `gorm:"serializer:json" json:"costs"`

	// Cached pipeline outputs
	Results          *engine.SimulationResults `gorm:"serializer:json" json:"results,omitempty"`
	Validation       *engine.ValidationResult  `gorm:"serializer:json" json:"validation,omitempty"`
	LastCalculatedAt *time.Time                `json:"last_calculated_at,omitempty"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}

// Input assembles the engine's view of this scenario's premises.
func (s *Scenario) Input() engine.ScenarioInput {
	return engine.ScenarioInput{
		ProjectData:   s.ProjectData,
		Indices:       s.Indices,
		SalesPremises: s.SalesPremises,
		Costs:         s.Costs,
	}
}

// IsSnapshot reports whether this row is an immutable version of another
// scenario.
func (s *Scenario) IsSnapshot() bool {
	return s.ParentID != nil
}
