package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gitpulse/gitpulse/internal/models"
	"github.com/gitpulse/gitpulse/internal/services"
	"github.com/gitpulse/gitpulse/pkg/logger"
)

type ExportHandler struct {
	analysisService *services.AnalysisService
	exportService   *services.ExportService
}

func NewExportHandler(analysisService *services.AnalysisService, exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{
		analysisService: analysisService,
		exportService:   exportService,
	}
}

// Export runs the same pipeline as Analyze and streams the series as an
// Excel workbook attachment
func (h *ExportHandler) Export(c *gin.Context) {
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

	workbook, err := h.exportService.BuildWorkbook(points)
	if err != nil {
		logger.WithError(err).Error("failed to build export workbook")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   "internal server error",
		})
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("velocity-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		logger.WithError(err).Error("failed to write export workbook")
	}
}
