package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"incorpora/internal/handlers"
	"incorpora/internal/logger"
	"incorpora/internal/middleware"
	"incorpora/internal/models"
	"incorpora/internal/services"
	"incorpora/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Project{},
		&models.Scenario{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db)
	projectService := services.NewProjectService(db)
	scenarioService := services.NewScenarioService(db, projectService)
	portfolioService := services.NewPortfolioService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	projectHandler := handlers.NewProjectHandler(projectService, auditService)
	scenarioHandler := handlers.NewScenarioHandler(scenarioService, auditService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	auditHandler := handlers.NewAuditHandler(auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	projects := protected.Group("/projects")
	projects.POST("", projectHandler.CreateProject)
	projects.GET("", projectHandler.GetUserProjects)
	projects.GET("/:id", projectHandler.GetProjectByID)
	projects.PUT("/:id", projectHandler.UpdateProject)
	projects.DELETE("/:id", projectHandler.DeleteProject)
	projects.PUT("/:id/active-scenario", projectHandler.SetActiveScenario)
	projects.POST("/:id/scenarios", scenarioHandler.CreateScenario)
	projects.GET("/:id/scenarios", scenarioHandler.GetProjectScenarios)

	scenarios := protected.Group("/scenarios")
	scenarios.GET("/:id", scenarioHandler.GetScenarioByID)
	scenarios.PUT("/:id", scenarioHandler.UpdateScenario)
	scenarios.DELETE("/:id", scenarioHandler.DeleteScenario)
	scenarios.POST("/:id/copy", scenarioHandler.CopyScenario)
	scenarios.POST("/:id/costs", scenarioHandler.AddCost)
	scenarios.PUT("/:id/costs/:costId", scenarioHandler.UpdateCost)
	scenarios.DELETE("/:id/costs/:costId", scenarioHandler.RemoveCost)
	scenarios.POST("/:id/snapshots", scenarioHandler.CreateSnapshot)
	scenarios.GET("/:id/snapshots", scenarioHandler.GetSnapshots)
	scenarios.GET("/:id/results", scenarioHandler.GetResults)
	scenarios.GET("/:id/validation", scenarioHandler.GetValidation)
	scenarios.POST("/:id/recalculate", scenarioHandler.Recalculate)

	protected.GET("/portfolio", portfolioHandler.GetPortfolio)
	protected.GET("/audit-logs", auditHandler.GetAuditLogs)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// createProject creates a project and returns its ID.
func (app *testApp) createProject(t *testing.T, token, name string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"location":"São Paulo, SP"}`, name)
	rec := app.request("POST", "/api/v1/projects", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["id"].(string)
}

// createScenario creates a scenario under a project and returns its ID.
func (app *testApp) createScenario(t *testing.T, token, projectID, name string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q}`, name)
	rec := app.request("POST", "/api/v1/projects/"+projectID+"/scenarios", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create scenario failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["id"].(string)
}

// completePremises is a full, valid premise payload for a residential launch.
const completePremises = `{
	"project_data": {
		"name": "Residencial Horizonte",
		"location": "São Paulo, SP",
		"total_units": 100,
		"total_area": 4000,
		"efficiency_ratio": 2.5,
		"acquisition_type": "CASH",
		"construction_duration_months": 24,
		"sales_duration_months": 30
	},
	"indices": {"incc": 4.5, "ipca": 4.0, "cdi": 10.5, "discount_rate": 12},
	"sales_premises": {
		"price_per_sqm": 8500,
		"brokerage_fee": 4,
		"taxes": 6,
		"down_payment": 20,
		"monthly_installments": 60,
		"keys": 20
	}
}`

// populateScenario fills a scenario with complete premises and two costs.
func (app *testApp) populateScenario(t *testing.T, token, scenarioID string) {
	t.Helper()
	rec := app.request("PUT", "/api/v1/scenarios/"+scenarioID, completePremises, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update scenario failed: %d %s", rec.Code, rec.Body.String())
	}

	costs := []string{
		`{"name":"Terreno","total_value":15000000,"distribution_type":"LINEAR","start_month":0,"duration_months":6}`,
		`{"name":"Obra Civil","total_value":35000000,"distribution_type":"S_CURVE","start_month":2,"duration_months":24}`,
	}
	for _, cost := range costs {
		rec := app.request("POST", "/api/v1/scenarios/"+scenarioID+"/costs", cost, token)
		if rec.Code != http.StatusOK {
			t.Fatalf("add cost failed: %d %s", rec.Code, rec.Body.String())
		}
	}
}
