package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"incorpora/internal/engine"
	apperrors "incorpora/internal/errors"
	"incorpora/internal/pagination"
	"incorpora/internal/services"
)

// ScenarioHandler handles scenario lifecycle requests.
type ScenarioHandler struct {
	scenarioService services.ScenarioServicer
	audit           services.AuditServicer
}

// NewScenarioHandler creates a new ScenarioHandler.
func NewScenarioHandler(scenarioService services.ScenarioServicer, audit services.AuditServicer) *ScenarioHandler {
	return &ScenarioHandler{scenarioService: scenarioService, audit: audit}
}

// CreateScenarioRequest represents the scenario creation payload.
type CreateScenarioRequest struct {
	Name string `json:"name" binding:"max=255"`
}

// CopyScenarioRequest represents the scenario duplication payload.
type CopyScenarioRequest struct {
	Name string `json:"name" binding:"max=255"`
}

// UpdateScenarioRequest carries one or more premise sections to replace.
// Sections left null are untouched; there is no field-level patching.
type UpdateScenarioRequest struct {
	Name          *string                 `json:"name" binding:"omitempty,max=255"`
	ProjectData   *engine.ProjectData     `json:"project_data"`
	Indices       *engine.EconomicIndices `json:"indices"`
	SalesPremises *engine.SalesPremises   `json:"sales_premises"`
}

// CostRequest represents a cost category payload. A positive vgv_percentage
// takes precedence over total_value.
type CostRequest struct {
	Name               string    `json:"name" binding:"required,max=255"`
	TotalValue         float64   `json:"total_value" binding:"omitempty,gte=0"`
	VGVPercentage      float64   `json:"vgv_percentage" binding:"omitempty,gte=0,lte=100"`
	DistributionType   string    `json:"distribution_type" binding:"omitempty,distribution_type"`
	StartMonth         int       `json:"start_month" binding:"gte=0"`
	DurationMonths     int       `json:"duration_months" binding:"required,gte=1"`
	ManualDistribution []float64 `json:"manual_distribution"`
}

func (r CostRequest) toCost() engine.CostCategory {
	return engine.CostCategory{
		Name:               r.Name,
		TotalValue:         r.TotalValue,
		VGVPercentage:      r.VGVPercentage,
		DistributionType:   engine.DistributionType(r.DistributionType),
		StartMonth:         r.StartMonth,
		DurationMonths:     r.DurationMonths,
		ManualDistribution: r.ManualDistribution,
	}
}

// CreateScenario creates a scenario under a project
// @Summary     Create scenario
// @Description Create an editable scenario with default premises
// @Tags        scenarios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       request body CreateScenarioRequest true "Scenario data"
// @Success     201 {object} models.Scenario "Scenario created"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Router      /projects/{id}/scenarios [post]
func (h *ScenarioHandler) CreateScenario(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	projectID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	scenario, err := h.scenarioService.CreateScenario(userID, projectID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "create", "scenario", scenario.ID, c.ClientIP(), map[string]interface{}{"name": scenario.Name})
	c.JSON(http.StatusCreated, scenario)
}

// GetProjectScenarios lists a project's live scenarios
// @Summary     List scenarios
// @Description Get a paginated list of the project's editable scenarios
// @Tags        scenarios
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.Scenario] "Scenarios"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Router      /projects/{id}/scenarios [get]
func (h *ScenarioHandler) GetProjectScenarios(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	projectID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.scenarioService.GetProjectScenarios(userID, projectID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetScenarioByID returns a scenario or snapshot
// @Summary     Get scenario
// @Description Get a scenario or snapshot by ID, including cached results
// @Tags        scenarios
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Scenario ID"
// @Success     200 {object} models.Scenario "Scenario"
// @Failure     404 {object} ErrorResponse "Scenario not found"
// @Router      /scenarios/{id} [get]
func (h *ScenarioHandler) GetScenarioByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	scenario, err := h.scenarioService.GetScenarioByID(userID, scenarioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, scenario)
}

// UpdateScenario replaces one or more premise sections
// @Summary     Update scenario
// @Description Replace scenario premises section by section; every update reruns validation and simulation. Updates against read-only snapshots are silently ignored.
// @Tags        scenarios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Scenario ID"
// @Param       request body UpdateScenarioRequest true "Premise sections"
// @Success     200 {object} models.Scenario "Updated scenario"
// @Failure     404 {object} ErrorResponse "Scenario not found"
// @Router      /scenarios/{id} [put]
func (h *ScenarioHandler) UpdateScenario(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	scenario, err := h.scenarioService.UpdateScenario(userID, scenarioID, services.ScenarioUpdate{
		Name:          req.Name,
		ProjectData:   req.ProjectData,
		Indices:       req.Indices,
		SalesPremises: req.SalesPremises,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "update", "scenario", scenario.ID, c.ClientIP(), nil)
	c.JSON(http.StatusOK, scenario)
}

// CopyScenario duplicates a scenario
// @Summary     Copy scenario
// @Description Duplicate a scenario's premises into a new editable scenario
// @Tags        scenarios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Scenario ID"
// @Param       request body CopyScenarioRequest true "Copy options"
// @Success     201 {object} models.Scenario "Scenario copy"
// @Failure     404 {object} ErrorResponse "Scenario not found"
// @Router      /scenarios/{id}/copy [post]
func (h *ScenarioHandler) CopyScenario(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CopyScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	clone, err := h.scenarioService.CopyScenario(userID, scenarioID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "copy", "scenario", clone.ID, c.ClientIP(), map[string]interface{}{"source_id": scenarioID})
	c.JSON(http.StatusCreated, clone)
}

// DeleteScenario deletes a scenario and its snapshots
// @Summary     Delete scenario
// @Description Delete a scenario along with its snapshots
// @Tags        scenarios
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Scenario ID"
// @Success     204 "Scenario deleted"
// @Failure     404 {object} ErrorResponse "Scenario not found"
// @Router      /scenarios/{id} [delete]
func (h *ScenarioHandler) DeleteScenario(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.scenarioService.DeleteScenario(userID, scenarioID); err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "delete", "scenario", scenarioID, c.ClientIP(), nil)
	c.Status(http.StatusNoContent)
}

// AddCost appends a cost category
// @Summary     Add cost
// @Description Add a cost category to the scenario and rerun the pipeline
// @Tags        costs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Scenario ID"
// @Param       request body CostRequest true "Cost data"
// @Success     200 {object} models.Scenario "Updated scenario"
// @Failure     404 {object} ErrorResponse "Scenario not found"
// @Router      /scenarios/{id}/costs [post]
func (h *ScenarioHandler) AddCost(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	scenario, err := h.scenarioService.AddCost(userID, scenarioID, req.toCost())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "add_cost", "scenario", scenarioID, c.ClientIP(), map[string]interface{}{"name": req.Name})
	c.JSON(http.StatusOK, scenario)
}

// UpdateCost replaces a cost category
// @Summary     Update cost
// @Description Replace a cost category in place and rerun the pipeline
// @Tags        costs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Scenario ID"
// @Param       costId path string true "Cost ID"
// @Param       request body CostRequest true "Cost data"
// @Success     200 {object} models.Scenario "Updated scenario"
// @Failure     404 {object} ErrorResponse "Scenario or cost not found"
// @Router      /scenarios/{id}/costs/{costId} [put]
func (h *ScenarioHandler) UpdateCost(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	costID := c.Param("costId")

	var req CostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	scenario, err := h.scenarioService.UpdateCost(userID, scenarioID, costID, req.toCost())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "update_cost", "scenario", scenarioID, c.ClientIP(), map[string]interface{}{"cost_id": costID})
	c.JSON(http.StatusOK, scenario)
}

// RemoveCost deletes a cost category
// @Summary     Remove cost
// @Description Remove a cost category from the scenario and rerun the pipeline
// @Tags        costs
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Scenario ID"
// @Param       costId path string true "Cost ID"
// @Success     200 {object} models.Scenario "Updated scenario"
// @Failure     404 {object} ErrorResponse "Scenario or cost not found"
// @Router      /scenarios/{id}/costs/{costId} [delete]
func (h *ScenarioHandler) RemoveCost(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	costID := c.Param("costId")

	scenario, err := h.scenarioService.RemoveCost(userID, scenarioID, costID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "remove_cost", "scenario", scenarioID, c.ClientIP(), map[string]interface{}{"cost_id": costID})
	c.JSON(http.StatusOK, scenario)
}

// CreateSnapshot freezes the scenario into a read-only version
// @Summary     Create snapshot
// @Description Freeze the scenario's current premises and results into an immutable version
// @Tags        snapshots
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Scenario ID"
// @Success     201 {object} models.Scenario "Snapshot"
// @Failure     404 {object} ErrorResponse "Scenario not found"
// @Router      /scenarios/{id}/snapshots [post]
func (h *ScenarioHandler) CreateSnapshot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshot, err := h.scenarioService.CreateSnapshot(userID, scenarioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "snapshot", "scenario", scenarioID, c.ClientIP(), map[string]interface{}{"snapshot_id": snapshot.ID})
	c.JSON(http.StatusCreated, snapshot)
}

// GetSnapshots lists a scenario's versions
// @Summary     List snapshots
// @Description Get the immutable versions of a scenario, oldest first
// @Tags        snapshots
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Scenario ID"
// @Success     200 {array} models.Scenario "Snapshots"
// @Failure     404 {object} ErrorResponse "Scenario not found"
// @Router      /scenarios/{id}/snapshots [get]
func (h *ScenarioHandler) GetSnapshots(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshots, err := h.scenarioService.GetSnapshots(userID, scenarioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snapshots})
}

// GetResults returns the cached simulation results
// @Summary     Get results
// @Description Get the scenario's cached timeline and indicators
// @Tags        scenarios
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Scenario ID"
// @Success     200 {object} engine.SimulationResults "Simulation results"
// @Failure     404 {object} ErrorResponse "Scenario not found or never calculated"
// @Router      /scenarios/{id}/results [get]
func (h *ScenarioHandler) GetResults(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	scenario, err := h.scenarioService.GetScenarioByID(userID, scenarioID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if scenario.Results == nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrNotFound, "Scenario has not been calculated yet"))
		return
	}

	c.JSON(http.StatusOK, scenario.Results)
}

// GetValidation returns the cached quality-gate verdict
// @Summary     Get validation
// @Description Get the scenario's cached quality-gate issues and status
// @Tags        scenarios
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Scenario ID"
// @Success     200 {object} engine.ValidationResult "Validation result"
// @Failure     404 {object} ErrorResponse "Scenario not found or never validated"
// @Router      /scenarios/{id}/validation [get]
func (h *ScenarioHandler) GetValidation(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	scenario, err := h.scenarioService.GetScenarioByID(userID, scenarioID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if scenario.Validation == nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrNotFound, "Scenario has not been validated yet"))
		return
	}

	c.JSON(http.StatusOK, scenario.Validation)
}

// Recalculate reruns the pipeline without changing premises
// @Summary     Recalculate scenario
// @Description Rerun validation and simulation over the scenario's current premises
// @Tags        scenarios
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Scenario ID"
// @Success     200 {object} models.Scenario "Recalculated scenario"
// @Failure     404 {object} ErrorResponse "Scenario not found"
// @Router      /scenarios/{id}/recalculate [post]
func (h *ScenarioHandler) Recalculate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	scenarioID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	scenario, err := h.scenarioService.Recalculate(userID, scenarioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, scenario)
}
