package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gitpulse/gitpulse/internal/middleware"
	"github.com/gitpulse/gitpulse/internal/models"
	"github.com/gitpulse/gitpulse/internal/services"
	"github.com/gitpulse/gitpulse/pkg/logger"
)

type AnalyzeHandler struct {
	analysisService *services.AnalysisService
}

func NewAnalyzeHandler(analysisService *services.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{
		analysisService: analysisService,
	}
}

// Analyze runs the commit-velocity pipeline for the repository URL in the
// request body and returns the chronological series
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   "request body must include a url field",
		})
		return
	}

	points, err := h.analysisService.Analyze(c.Request.Context(), req.URL)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AnalyzeResponse{
		Success: true,
		Data:    points,
	})
}

// respondAnalysisError maps a pipeline failure to its response. All stage
// failures funnel through here; no partial results are ever returned.
func respondAnalysisError(c *gin.Context, err error) {
	if analysisErr, ok := models.AsAnalysisError(err); ok {
		c.JSON(analysisErr.StatusCode(), models.ErrorResponse{
			Success: false,
			Error:   analysisErr.Message,
		})
		return
	}

	logger.WithError(err).WithField("request_id", middleware.GetRequestID(c)).Error("unexpected analysis failure")
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Error:   "internal server error",
	})
}
