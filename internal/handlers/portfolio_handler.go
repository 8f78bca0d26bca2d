package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"incorpora/internal/services"
)

// PortfolioHandler handles consolidated portfolio requests.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// GetPortfolio returns the consolidated portfolio view
// @Summary     Get portfolio
// @Description Consolidate the active scenario of every project into portfolio-level metrics and a merged timeline
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} engine.PortfolioMetrics "Consolidated metrics"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	metrics, err := h.portfolioService.Consolidate(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}
