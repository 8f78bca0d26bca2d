package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"incorpora/internal/engine"
	"incorpora/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestProject creates a project owned by the given user.
func CreateTestProject(t *testing.T, db *gorm.DB, userID string) *models.Project {
	t.Helper()

	project := &models.Project{
		UserID:   userID,
		Name:     fmt.Sprintf("Residencial Horizonte %d", nextID()),
		Location: "São Paulo, SP",
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

// TestPremises returns a complete, valid set of scenario premises for a
// mid-size residential launch.
func TestPremises() (engine.ProjectData, engine.EconomicIndices, engine.SalesPremises, []engine.CostCategory) {
	projectData := engine.ProjectData{
		Name:                       "Residencial Horizonte",
		Location:                   "São Paulo, SP",
		TotalUnits:                 100,
		TotalArea:                  4000,
		EfficiencyRatio:            2.5,
		AcquisitionType:            engine.AcquisitionCash,
		SellablePrivateArea:        8000,
		ConstructionDurationMonths: 24,
		SalesDurationMonths:        30,
	}
	indices := engine.EconomicIndices{INCC: 4.5, IPCA: 4.0, CDI: 10.5, DiscountRate: 12}
	salesPremises := engine.SalesPremises{
		PricePerSqm:         8500,
		BrokerageFee:        4,
		Taxes:               6,
		DownPayment:         20,
		MonthlyInstallments: 60,
		Keys:                20,
	}
	costs := []engine.CostCategory{
		{ID: "terreno", Name: "Terreno", TotalValue: 15000000, DistributionType: engine.DistributionLinear, StartMonth: 0, DurationMonths: 6},
		{ID: "obra", Name: "Obra Civil", TotalValue: 35000000, DistributionType: engine.DistributionSCurve, StartMonth: 2, DurationMonths: 24},
	}
	return projectData, indices, salesPremises, costs
}

// CreateTestScenario creates an editable scenario with valid premises and no
// cached results.
func CreateTestScenario(t *testing.T, db *gorm.DB, projectID string) *models.Scenario {
	t.Helper()

	projectData, indices, salesPremises, costs := TestPremises()
	scenario := &models.Scenario{
		ProjectID:     projectID,
		Name:          fmt.Sprintf("Cenário %d", nextID()),
		Status:        models.ScenarioStatusReady,
		ProjectData:   projectData,
		Indices:       indices,
		SalesPremises: salesPremises,
		Costs:         costs,
	}
	if err := db.Create(scenario).Error; err != nil {
		t.Fatalf("failed to create test scenario: %v", err)
	}
	return scenario
}
