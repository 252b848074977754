package models

import "time"

// AppointmentStatus enumerates the lifecycle states of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// PatientInfo holds the contact details collected during booking.
type PatientInfo struct {
	Name   string `bson:"name" json:"name"`
	Phone  string `bson:"phone" json:"phone"`
	Email  string `bson:"email" json:"email"`
	Reason string `bson:"reason,omitempty" json:"reason,omitempty"`
}

// Appointment represents a booked appointment record.
type Appointment struct {
	ID                 string            `bson:"id" json:"id"`                   // internal record id (UUID)
	BookingID          string            `bson:"bookingId" json:"bookingId"`     // patient-facing confirmation id, e.g. APT20250830143000
	DoctorID           string            `bson:"doctorId" json:"doctorId"`
	DoctorName         string            `bson:"doctorName" json:"doctorName"`
	AppointmentType    string            `bson:"appointmentType" json:"appointmentType"`
	StartTime          time.Time         `bson:"startTime" json:"startTime"`
	EndTime            time.Time         `bson:"endTime" json:"endTime"`
	DurationMinutes    int               `bson:"durationMinutes" json:"durationMinutes"`
	PatientInfo        PatientInfo       `bson:"patientInfo" json:"patientInfo"`
	Status             AppointmentStatus `bson:"status" json:"status"`
	Notes              string            `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt          time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time         `bson:"updatedAt" json:"updatedAt"`
	CancelledAt        *time.Time        `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CancellationReason string            `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	RescheduledFrom    *time.Time        `bson:"rescheduledFrom,omitempty" json:"rescheduledFrom,omitempty"` // original start time if moved
	ReminderSent       bool              `bson:"reminderSent" json:"reminderSent"`
}

// Active reports whether the appointment still occupies its time range.
func (a *Appointment) Active() bool {
	return a.Status != StatusCancelled
}

// BookingRequest is the payload for creating an appointment.
type BookingRequest struct {
	DoctorID        string      `json:"doctorId" binding:"required"`
	AppointmentType string      `json:"appointmentType" binding:"required"`
	StartTime       time.Time   `json:"startTime" binding:"required"`
	PatientInfo     PatientInfo `json:"patientInfo" binding:"required"`
	Notes           string      `json:"notes,omitempty"`
}

// CancellationResult carries the outcome of a cancellation, including the
// fee derived from the clinic's cancellation policy.
type CancellationResult struct {
	Appointment   *Appointment `json:"appointment"`
	Fee           float64      `json:"fee"`
	PolicyMessage string       `json:"policyMessage"`
}
