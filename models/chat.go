package models

import "time"

// ChatRequest is the inbound payload for a conversation turn.
type ChatRequest struct {
	SessionID string `json:"sessionId,omitempty"`
	Message   string `json:"message" binding:"required"`
}

// ChatResponse is the outcome of one conversation turn.
type ChatResponse struct {
	SessionID string            `json:"sessionId"`
	Response  string            `json:"response"`
	Intent    string            `json:"intent"`
	State     ConversationState `json:"state"`
}

// ReminderPayload is the asynq task body for appointment reminders.
type ReminderPayload struct {
	BookingID    string    `json:"bookingId"`
	PatientName  string    `json:"patientName"`
	PatientEmail string    `json:"patientEmail"`
	DoctorName   string    `json:"doctorName"`
	StartTime    time.Time `json:"startTime"`
}
