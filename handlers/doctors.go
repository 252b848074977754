package handlers

import (
	"net/http"

	"mediflow/models"
	"mediflow/utils"

	"github.com/gin-gonic/gin"
)

// ListDoctors returns the active doctors and their working hours.
func (hb *HandlerBundle) ListDoctors(c *gin.Context) {
	doctors, err := hb.Doctors.List(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list doctors", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": doctors, "count": len(doctors)})
}

// ListAppointmentTypes returns the bookable catalogue.
func (hb *HandlerBundle) ListAppointmentTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"appointmentTypes": models.DefaultAppointmentTypes})
}
