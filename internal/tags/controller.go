package tags

import (
	"net/http"

	"gatherly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	GetTags(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetTags(c *gin.Context) {
	counts, err := ctrl.service.GetTagCounts(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve tags", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Tags retrieved successfully", counts, nil)
}
