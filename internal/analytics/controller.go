package analytics

import (
	"errors"
	"net/http"
	"strconv"

	"gatherly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller interface {
	GetOverviewStats(c *gin.Context)
	GetEventStats(c *gin.Context)
	GetTopEvents(c *gin.Context)
	GetDailyBookingStats(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetOverviewStats(c *gin.Context) {
	stats, err := ctrl.service.GetOverviewStats(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve overview stats", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Overview stats retrieved successfully", stats, nil)
}

func (ctrl *controller) GetEventStats(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	stats, err := ctrl.service.GetEventStats(c.Request.Context(), eventID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrEventNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event stats retrieved successfully", stats, nil)
}

func (ctrl *controller) GetTopEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	stats, err := ctrl.service.GetTopEvents(c.Request.Context(), limit)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve top events", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Top events retrieved successfully", stats, nil)
}

func (ctrl *controller) GetDailyBookingStats(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	stats, err := ctrl.service.GetDailyBookingStats(c.Request.Context(), days)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve daily booking stats", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Daily booking stats retrieved successfully", stats, nil)
}
