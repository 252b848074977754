package handlers

import (
	"net/http"
	"strconv"

	"mediflow/models"

	"github.com/gin-gonic/gin"
)

// durationFromQuery resolves the slot duration from either an explicit
// duration or an appointment type name.
func durationFromQuery(c *gin.Context) (int, bool) {
	if t := c.Query("type"); t != "" {
		if d, ok := models.DurationForType(t); ok {
			return d, true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown appointment type: " + t})
		return 0, false
	}
	if raw := c.Query("duration"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duration must be a positive integer"})
			return 0, false
		}
		return d, true
	}
	return 30, true
}

// GetAvailability returns the day schedule for a doctor on a date.
func (hb *HandlerBundle) GetAvailability(c *gin.Context) {
	doctorID := c.Query("doctorId")
	date := c.Query("date")
	if doctorID == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "doctorId and date are required"})
		return
	}
	duration, ok := durationFromQuery(c)
	if !ok {
		return
	}

	schedule, err := hb.Engine.DaySchedule(c.Request.Context(), doctorID, date, duration)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"doctorId": doctorID,
		"date":     date,
		"schedule": schedule,
	})
}

// GetAvailabilitySummary aggregates a doctor's capacity over a date range.
func (hb *HandlerBundle) GetAvailabilitySummary(c *gin.Context) {
	doctorID := c.Query("doctorId")
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if doctorID == "" || startDate == "" || endDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "doctorId, startDate and endDate are required"})
		return
	}
	duration, ok := durationFromQuery(c)
	if !ok {
		return
	}

	summary, err := hb.Engine.AvailabilitySummary(c.Request.Context(), doctorID, startDate, endDate, duration)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
