package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "incorpora/internal/errors"
	"incorpora/internal/pagination"
	"incorpora/internal/services"
)

// ProjectHandler handles development-project requests.
type ProjectHandler struct {
	projectService services.ProjectServicer
	audit          services.AuditServicer
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService services.ProjectServicer, audit services.AuditServicer) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, audit: audit}
}

// CreateProjectRequest represents the project creation payload.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Location    string `json:"location" binding:"max=255"`
	Description string `json:"description" binding:"max=1000"`
}

// UpdateProjectRequest represents the project update payload. Empty fields
// are left untouched.
type UpdateProjectRequest struct {
	Name        string `json:"name" binding:"max=255"`
	Location    string `json:"location" binding:"max=255"`
	Description string `json:"description" binding:"max=1000"`
}

// SetActiveScenarioRequest selects the scenario that represents the project
// in the portfolio view.
type SetActiveScenarioRequest struct {
	ScenarioID string `json:"scenario_id" binding:"required,uuid"`
}

// CreateProject creates a new development project
// @Summary     Create project
// @Description Create a new development project for the authenticated user
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateProjectRequest true "Project data"
// @Success     201 {object} models.Project "Project created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	project, err := h.projectService.CreateProject(userID, req.Name, req.Location, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "create", "project", project.ID, c.ClientIP(), map[string]interface{}{"name": project.Name})
	c.JSON(http.StatusCreated, project)
}

// GetUserProjects lists the user's projects
// @Summary     List projects
// @Description Get a paginated list of the authenticated user's projects
// @Tags        projects
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.Project] "Projects"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /projects [get]
func (h *ProjectHandler) GetUserProjects(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.projectService.GetUserProjects(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProjectByID returns a single project
// @Summary     Get project
// @Description Get a project by ID
// @Tags        projects
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Success     200 {object} models.Project "Project"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Router      /projects/{id} [get]
func (h *ProjectHandler) GetProjectByID(c *gin.Context) {
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

	project, err := h.projectService.GetProjectByID(userID, projectID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// UpdateProject updates a project's metadata
// @Summary     Update project
// @Description Update a project's name, location or description
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       request body UpdateProjectRequest true "Fields to update"
// @Success     200 {object} models.Project "Updated project"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Router      /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
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

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	project, err := h.projectService.UpdateProject(userID, projectID, req.Name, req.Location, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "update", "project", project.ID, c.ClientIP(), nil)
	c.JSON(http.StatusOK, project)
}

// DeleteProject deletes a project and its scenarios
// @Summary     Delete project
// @Description Delete a project along with all its scenarios and snapshots
// @Tags        projects
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Success     204 "Project deleted"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Router      /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
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

	if err := h.projectService.DeleteProject(userID, projectID); err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "delete", "project", projectID, c.ClientIP(), nil)
	c.Status(http.StatusNoContent)
}

// SetActiveScenario selects the project's representative scenario
// @Summary     Set active scenario
// @Description Point the project at the scenario or snapshot whose results feed the portfolio
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Param       request body SetActiveScenarioRequest true "Scenario selection"
// @Success     200 {object} models.Project "Updated project"
// @Failure     400 {object} ErrorResponse "Scenario does not belong to the project"
// @Failure     404 {object} ErrorResponse "Project not found"
// @Router      /projects/{id}/active-scenario [put]
func (h *ProjectHandler) SetActiveScenario(c *gin.Context) {
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

	var req SetActiveScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	project, err := h.projectService.SetActiveScenario(userID, projectID, req.ScenarioID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.audit.Log(userID, "set_active_scenario", "project", projectID, c.ClientIP(), map[string]interface{}{"scenario_id": req.ScenarioID})
	c.JSON(http.StatusOK, project)
}
