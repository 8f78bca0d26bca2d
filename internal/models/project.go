package models

// Project is a single real-estate development under analysis. It owns a set
// of scenarios; ActiveScenarioID points at the scenario (or snapshot) whose
// results represent the project in the consolidated portfolio view.
type Project struct {
	Base
	UserID           string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name             string `gorm:"not null" json:"name"`
	Location         string `json:"location"`
	Description      string `json:"description,omitempty"`
	ActiveScenarioID string `gorm:"type:uuid" json:"active_scenario_id"`

	// Relationships
	Scenarios []Scenario `gorm:"foreignKey:ProjectID" json:"scenarios,omitempty"`
}
