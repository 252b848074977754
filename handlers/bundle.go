// File: mediflow/handlers/bundle.go
package handlers

import (
	"net/http"

	doctorRepoPkg "mediflow/database/repository/doctor"
	"mediflow/services/analytics"
	"mediflow/services/dialogue"
	"mediflow/services/scheduling"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers and their dependencies.
type HandlerBundle struct {
	Agent     *dialogue.Agent
	Sessions  dialogue.SessionStore
	Engine    scheduling.AvailabilityEngine
	Bookings  scheduling.BookingService
	Doctors   doctorRepoPkg.DoctorRepository
	Analytics *analytics.Service
}

// respondSchedulingError maps the scheduling error taxonomy onto HTTP
// status codes.
func respondSchedulingError(c *gin.Context, err error) {
	switch {
	case scheduling.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case scheduling.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case scheduling.IsConflict(err), scheduling.IsSlotUnavailable(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
