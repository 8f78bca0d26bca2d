package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "incorpora/internal/errors"
	"incorpora/internal/models"
	"incorpora/internal/pagination"
	"incorpora/internal/services"
)

type mockProjectService struct {
	createProjectFn     func(userID, name, location, description string) (*models.Project, error)
	getUserProjectsFn   func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Project], error)
	getProjectByIDFn    func(userID, projectID string) (*models.Project, error)
	updateProjectFn     func(userID, projectID, name, location, description string) (*models.Project, error)
	deleteProjectFn     func(userID, projectID string) error
	setActiveScenarioFn func(userID, projectID, scenarioID string) (*models.Project, error)
}

var _ services.ProjectServicer = (*mockProjectService)(nil)

func (m *mockProjectService) CreateProject(userID, name, location, description string) (*models.Project, error) {
	if m.createProjectFn != nil {
		return m.createProjectFn(userID, name, location, description)
	}
	return &models.Project{}, nil
}

func (m *mockProjectService) GetUserProjects(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Project], error) {
	if m.getUserProjectsFn != nil {
		return m.getUserProjectsFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Project{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockProjectService) GetProjectByID(userID, projectID string) (*models.Project, error) {
	if m.getProjectByIDFn != nil {
		return m.getProjectByIDFn(userID, projectID)
	}
	return &models.Project{}, nil
}

func (m *mockProjectService) UpdateProject(userID, projectID, name, location, description string) (*models.Project, error) {
	if m.updateProjectFn != nil {
		return m.updateProjectFn(userID, projectID, name, location, description)
	}
	return &models.Project{}, nil
}

func (m *mockProjectService) DeleteProject(userID, projectID string) error {
	if m.deleteProjectFn != nil {
		return m.deleteProjectFn(userID, projectID)
	}
	return nil
}

func (m *mockProjectService) SetActiveScenario(userID, projectID, scenarioID string) (*models.Project, error) {
	if m.setActiveScenarioFn != nil {
		return m.setActiveScenarioFn(userID, projectID, scenarioID)
	}
	return &models.Project{}, nil
}

const testProjectID = "018f3a2b-0000-7000-8000-000000000010"

func setupProjectRouter(svc services.ProjectServicer) *gin.Engine {
	handler := NewProjectHandler(svc, &mockAuditService{})
	r := gin.New()
	r.Use(injectUserID(testUserID))
	r.POST("/projects", handler.CreateProject)
	r.GET("/projects", handler.GetUserProjects)
	r.GET("/projects/:id", handler.GetProjectByID)
	r.PUT("/projects/:id", handler.UpdateProject)
	r.DELETE("/projects/:id", handler.DeleteProject)
	r.PUT("/projects/:id/active-scenario", handler.SetActiveScenario)
	return r
}

func TestProjectHandler_CreateProject(t *testing.T) {
	t.Run("returns 201 with the created project", func(t *testing.T) {
		svc := &mockProjectService{
			createProjectFn: func(userID, name, location, _ string) (*models.Project, error) {
				if userID != testUserID {
					t.Errorf("expected userID %s, got %s", testUserID, userID)
				}
				return &models.Project{
					Base:     models.Base{ID: testProjectID},
					UserID:   userID,
					Name:     name,
					Location: location,
				}, nil
			},
		}
		r := setupProjectRouter(svc)

		rec := doRequest(r, "POST", "/projects",
			`{"name":"Residencial Aurora","location":"Curitiba, PR"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["name"] != "Residencial Aurora" {
			t.Errorf("expected project name in response, got %v", result["name"])
		}
	})

	t.Run("returns 400 when name is missing", func(t *testing.T) {
		r := setupProjectRouter(&mockProjectService{})

		rec := doRequest(r, "POST", "/projects", `{"location":"Curitiba, PR"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestProjectHandler_GetUserProjects(t *testing.T) {
	t.Run("passes pagination params through", func(t *testing.T) {
		svc := &mockProjectService{
			getUserProjectsFn: func(_ string, page pagination.PageRequest) (*pagination.PageResponse[models.Project], error) {
				if page.Page != 2 || page.PageSize != 5 {
					t.Errorf("expected page 2 size 5, got %d/%d", page.Page, page.PageSize)
				}
				resp := pagination.NewPageResponse([]models.Project{{Name: "A"}}, 2, 5, 6)
				return &resp, nil
			},
		}
		r := setupProjectRouter(svc)

		rec := doRequest(r, "GET", "/projects?page=2&page_size=5", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["total_pages"] != float64(2) {
			t.Errorf("expected 2 total pages, got %v", result["total_pages"])
		}
	})
}

func TestProjectHandler_GetProjectByID(t *testing.T) {
	t.Run("returns 404 when not owned", func(t *testing.T) {
		svc := &mockProjectService{
			getProjectByIDFn: func(_, _ string) (*models.Project, error) {
				return nil, apperrors.ErrProjectNotFound
			},
		}
		r := setupProjectRouter(svc)

		rec := doRequest(r, "GET", "/projects/"+testProjectID, "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PROJECT_NOT_FOUND")
	})

	t.Run("returns 400 for a malformed ID", func(t *testing.T) {
		r := setupProjectRouter(&mockProjectService{})

		rec := doRequest(r, "GET", "/projects/not-a-uuid", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestProjectHandler_DeleteProject(t *testing.T) {
	t.Run("returns 204 and calls the service", func(t *testing.T) {
		called := false
		svc := &mockProjectService{
			deleteProjectFn: func(_, projectID string) error {
				called = true
				if projectID != testProjectID {
					t.Errorf("expected project ID %s, got %s", testProjectID, projectID)
				}
				return nil
			},
		}
		r := setupProjectRouter(svc)

		rec := doRequest(r, "DELETE", "/projects/"+testProjectID, "")
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if !called {
			t.Error("expected DeleteProject to be called")
		}
	})
}

func TestProjectHandler_SetActiveScenario(t *testing.T) {
	scenarioID := "018f3a2b-0000-7000-8000-000000000020"

	t.Run("returns the updated project", func(t *testing.T) {
		svc := &mockProjectService{
			setActiveScenarioFn: func(_, projectID, sid string) (*models.Project, error) {
				if sid != scenarioID {
					t.Errorf("expected scenario ID %s, got %s", scenarioID, sid)
				}
				return &models.Project{
					Base:             models.Base{ID: projectID},
					ActiveScenarioID: sid,
				}, nil
			},
		}
		r := setupProjectRouter(svc)

		rec := doRequest(r, "PUT", "/projects/"+testProjectID+"/active-scenario",
			`{"scenario_id":"`+scenarioID+`"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["active_scenario_id"] != scenarioID {
			t.Errorf("expected active scenario in response, got %v", result["active_scenario_id"])
		}
	})

	t.Run("returns 400 when the scenario belongs elsewhere", func(t *testing.T) {
		svc := &mockProjectService{
			setActiveScenarioFn: func(_, _, _ string) (*models.Project, error) {
				return nil, apperrors.ErrScenarioNotInProject
			},
		}
		r := setupProjectRouter(svc)

		rec := doRequest(r, "PUT", "/projects/"+testProjectID+"/active-scenario",
			`{"scenario_id":"`+scenarioID+`"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "SCENARIO_NOT_IN_PROJECT")
	})
}
