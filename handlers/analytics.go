package handlers

import (
	"net/http"

	"mediflow/utils"

	"github.com/gin-gonic/gin"
)

// GetMetrics returns appointment metrics over an optional date range
// (defaults to the trailing 30 days).
func (hb *HandlerBundle) GetMetrics(c *gin.Context) {
	metrics, err := hb.Analytics.Metrics(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute metrics", err.Error())
		return
	}
	c.JSON(http.StatusOK, metrics)
}
