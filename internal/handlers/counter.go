package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gitpulse/gitpulse/internal/models"
	"github.com/gitpulse/gitpulse/internal/services"
	"github.com/gitpulse/gitpulse/pkg/logger"
)

type CounterHandler struct {
	counterService *services.CounterService
}

func NewCounterHandler(counterService *services.CounterService) *CounterHandler {
	return &CounterHandler{
		counterService: counterService,
	}
}

// GetCounter returns the current value of a named counter
func (h *CounterHandler) GetCounter(c *gin.Context) {
	name := c.Param("name")

	value, err := h.counterService.GetCounter(name)
	if err != nil {
		logger.WithError(err).Errorf("failed to read counter %s", name)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, models.CounterResponse{
		Success: true,
		Name:    name,
		Value:   value,
	})
}

// IncrementCounter increases a named counter by one
func (h *CounterHandler) IncrementCounter(c *gin.Context) {
	name := c.Param("name")

	value, err := h.counterService.IncrementCounter(name)
	if err != nil {
		logger.WithError(err).Errorf("failed to increment counter %s", name)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   "internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, models.CounterResponse{
		Success: true,
		Name:    name,
		Value:   value,
	})
}
