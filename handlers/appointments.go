package handlers

import (
	"net/http"
	"time"

	"mediflow/models"

	"github.com/gin-gonic/gin"
)

// BookAppointment creates an appointment directly, outside the chat flow.
func (hb *HandlerBundle) BookAppointment(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := hb.Bookings.CreateBooking(c.Request.Context(), req)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// GetAppointment looks up an appointment by its confirmation number.
func (hb *HandlerBundle) GetAppointment(c *gin.Context) {
	appt, err := hb.Bookings.GetBooking(c.Request.Context(), c.Param("bookingID"))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CancelAppointment cancels a booking and reports the applicable fee.
func (hb *HandlerBundle) CancelAppointment(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)

	result, err := hb.Bookings.CancelBooking(c.Request.Context(), c.Param("bookingID"), req.Reason)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RescheduleAppointment moves a booking to a new start time.
func (hb *HandlerBundle) RescheduleAppointment(c *gin.Context) {
	var req struct {
		NewStartTime time.Time `json:"newStartTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := hb.Bookings.RescheduleBooking(c.Request.Context(), c.Param("bookingID"), req.NewStartTime)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}
