package models

import (
	"encoding/json"
	"time"
)

// ConversationState enumerates the dialogue machine states.
type ConversationState string

const (
	StateGreeting            ConversationState = "greeting"
	StateUnderstandingNeeds  ConversationState = "understanding_needs"
	StateSlotRecommendation  ConversationState = "slot_recommendation"
	StateBookingConfirmation ConversationState = "booking_confirmation"
	StateManagingAppointment ConversationState = "managing_appointment"
	StateCheckingStatus      ConversationState = "checking_status"
	StateFaq                 ConversationState = "faq"
	StateBookingComplete     ConversationState = "booking_complete"
)

// Valid reports whether the state is one of the defined machine states.
func (s ConversationState) Valid() bool {
	switch s {
	case StateGreeting, StateUnderstandingNeeds, StateSlotRecommendation,
		StateBookingConfirmation, StateManagingAppointment,
		StateCheckingStatus, StateFaq, StateBookingComplete:
		return true
	}
	return false
}

// AppointmentPreferences accumulates the booking data elicited across turns.
type AppointmentPreferences struct {
	Type            string    `json:"type,omitempty"`
	DurationMinutes int       `json:"durationMinutes,omitempty"`
	DoctorID        string    `json:"doctorId,omitempty"`
	PreferredDate   string    `json:"preferredDate,omitempty"` // YYYY-MM-DD
	SelectedSlot    *TimeSlot `json:"selectedSlot,omitempty"`
}

// HistoryEntry is one message in the conversation transcript.
// The transcript is append-only; entries are never mutated.
type HistoryEntry struct {
	Role      string            `json:"role"` // "user" or "assistant"
	Text      string            `json:"text"`
	Timestamp time.Time         `json:"timestamp"`
	Intent    string            `json:"intent,omitempty"`
	State     ConversationState `json:"state,omitempty"`
}

// ConversationSession is the persistent dialogue state for one user
// interaction stream. It is passed into and returned from every turn;
// the dialogue machine holds no state of its own.
type ConversationSession struct {
	ID            string                 `json:"id"`
	State         ConversationState      `json:"state"`
	PreviousState ConversationState      `json:"previousState,omitempty"`
	Preferences   AppointmentPreferences `json:"appointmentPreferences"`
	PatientDraft  PatientInfo            `json:"patientInfoDraft"`
	History       []HistoryEntry         `json:"history"`
	OfferedSlots  []TimeSlot             `json:"offeredSlots,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// NewConversationSession returns a fresh session in the greeting state.
func NewConversationSession(id string) *ConversationSession {
	now := time.Now()
	return &ConversationSession{
		ID:        id,
		State:     StateGreeting,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Sanitize repairs a session decoded from an untrusted or stale source.
// An unrecognized state is treated as a fresh greeting session rather
// than propagating downstream.
func (s *ConversationSession) Sanitize() {
	if !s.State.Valid() {
		s.State = StateGreeting
		s.PreviousState = ""
		s.Preferences = AppointmentPreferences{}
		s.PatientDraft = PatientInfo{}
		s.OfferedSlots = nil
	}
	if s.PreviousState != "" && !s.PreviousState.Valid() {
		s.PreviousState = ""
	}
}

// Reset clears the booking flow back to the greeting state, keeping the
// transcript intact.
func (s *ConversationSession) Reset() {
	s.State = StateGreeting
	s.PreviousState = ""
	s.Preferences = AppointmentPreferences{}
	s.PatientDraft = PatientInfo{}
	s.OfferedSlots = nil
}

// Append records a transcript entry.
func (s *ConversationSession) Append(entry HistoryEntry) {
	s.History = append(s.History, entry)
}

// Clone returns a deep copy so a failed turn can restore the
// last-known-good session.
func (s *ConversationSession) Clone() *ConversationSession {
	b, err := json.Marshal(s)
	if err != nil {
		cp := *s
		return &cp
	}
	var cp ConversationSession
	if err := json.Unmarshal(b, &cp); err != nil {
		cp = *s
	}
	return &cp
}
