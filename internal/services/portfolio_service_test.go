package services

import (
	"math"
	"testing"

	"incorpora/internal/models"
	"incorpora/internal/testutil"

	"gorm.io/gorm"
)

// setupComputedProject creates a project whose active scenario has a full set
// of premises and cached simulation results.
func setupComputedProject(t *testing.T, db *gorm.DB, svc ScenarioServicer, userID string) *models.Scenario {
	t.Helper()

	project := testutil.CreateTestProject(t, db, userID)
	scenario, err := svc.CreateScenario(userID, project.ID, "Base")
	testutil.AssertNoError(t, err)

	projectData, indices, salesPremises, costs := testutil.TestPremises()
	_, err = svc.UpdateScenario(userID, scenario.ID, ScenarioUpdate{ProjectData: &projectData})
	testutil.AssertNoError(t, err)
	_, err = svc.UpdateScenario(userID, scenario.ID, ScenarioUpdate{Indices: &indices})
	testutil.AssertNoError(t, err)
	_, err = svc.UpdateScenario(userID, scenario.ID, ScenarioUpdate{SalesPremises: &salesPremises})
	testutil.AssertNoError(t, err)
	var updated *models.Scenario
	for _, cost := range costs {
		updated, err = svc.AddCost(userID, scenario.ID, cost)
		testutil.AssertNoError(t, err)
	}
	return updated
}

func TestConsolidate(t *testing.T) {
	t.Run("aggregates_active_scenarios", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projectSvc := NewProjectService(db)
		scenarioSvc := NewScenarioService(db, projectSvc)
		svc := NewPortfolioService(db)
		user := testutil.CreateTestUser(t, db)

		s1 := setupComputedProject(t, db, scenarioSvc, user.ID)
		s2 := setupComputedProject(t, db, scenarioSvc, user.ID)

		metrics, err := svc.Consolidate(user.ID)
		testutil.AssertNoError(t, err)

		if metrics.TotalProjects != 2 {
			t.Fatalf("expected 2 consolidated projects, got %d", metrics.TotalProjects)
		}
		wantVGV := s1.Results.Indicators.GrossVGV + s2.Results.Indicators.GrossVGV
		if math.Abs(metrics.TotalVGV-wantVGV) > 1e-6 {
			t.Errorf("expected total VGV %g, got %g", wantVGV, metrics.TotalVGV)
		}
		if len(metrics.ConsolidatedTimeline) == 0 {
			t.Error("expected a consolidated timeline")
		}
	})

	t.Run("skips_projects_without_computed_results", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projectSvc := NewProjectService(db)
		scenarioSvc := NewScenarioService(db, projectSvc)
		svc := NewPortfolioService(db)
		user := testutil.CreateTestUser(t, db)

		setupComputedProject(t, db, scenarioSvc, user.ID)

		// A project whose active scenario was never run through the pipeline.
		bare := testutil.CreateTestProject(t, db, user.ID)
		raw := testutil.CreateTestScenario(t, db, bare.ID)
		_, err := projectSvc.SetActiveScenario(user.ID, bare.ID, raw.ID)
		testutil.AssertNoError(t, err)

		// And one with no scenarios at all.
		testutil.CreateTestProject(t, db, user.ID)

		metrics, err := svc.Consolidate(user.ID)
		testutil.AssertNoError(t, err)
		if metrics.TotalProjects != 1 {
			t.Errorf("expected only the computed project, got %d", metrics.TotalProjects)
		}
	})

	t.Run("snapshot_can_represent_a_project", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		projectSvc := NewProjectService(db)
		scenarioSvc := NewScenarioService(db, projectSvc)
		svc := NewPortfolioService(db)
		user := testutil.CreateTestUser(t, db)

		scenario := setupComputedProject(t, db, scenarioSvc, user.ID)
		snapshot, err := scenarioSvc.CreateSnapshot(user.ID, scenario.ID)
		testutil.AssertNoError(t, err)
		_, err = projectSvc.SetActiveScenario(user.ID, scenario.ProjectID, snapshot.ID)
		testutil.AssertNoError(t, err)

		metrics, err := svc.Consolidate(user.ID)
		testutil.AssertNoError(t, err)
		if metrics.TotalProjects != 1 {
			t.Errorf("expected the snapshot's results consolidated, got %d projects", metrics.TotalProjects)
		}
	})

	t.Run("empty_portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db)
		user := testutil.CreateTestUser(t, db)

		metrics, err := svc.Consolidate(user.ID)
		testutil.AssertNoError(t, err)
		if metrics.TotalProjects != 0 || metrics.TotalVGV != 0 {
			t.Errorf("expected zeroed metrics, got %+v", metrics)
		}
	})
}
