package models

import "time"

// TimeSlot is a candidate open interval computed by the availability
// engine. Slots are ephemeral; nothing is persisted until a booking
// confirms one.
type TimeSlot struct {
	Start      time.Time `json:"startTime"`
	End        time.Time `json:"endTime"`
	DoctorID   string    `json:"doctorId,omitempty"`
	DoctorName string    `json:"doctorName,omitempty"`
}

// DaySchedule is the availability picture for one doctor on one date.
type DaySchedule struct {
	Available      bool          `json:"available"`
	Reason         string        `json:"reason,omitempty"`
	WorkingHours   *WorkingHours `json:"workingHours,omitempty"`
	AvailableSlots []TimeSlot    `json:"availableSlots"`
	ExistingCount  int           `json:"existingAppointments"`
}

// AvailabilitySummary aggregates capacity over a date range.
type AvailabilitySummary struct {
	StartDate        string  `json:"startDate"`
	EndDate          string  `json:"endDate"`
	TotalDays        int     `json:"totalDays"`
	AvailableDays    int     `json:"availableDays"`
	AvailabilityRate float64 `json:"availabilityRate"`
	TotalSlots       int     `json:"totalSlots"`
	BookedSlots      int     `json:"bookedSlots"`
	UtilizationRate  float64 `json:"utilizationRate"`
}
