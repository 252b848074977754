package models

import "fmt"

// WorkingHours defines a doctor's hours for one weekday.
// DayOfWeek follows the scheduling convention 0=Monday .. 6=Sunday.
// Start and End are minutes from midnight (e.g., 540 for 9:00 AM).
type WorkingHours struct {
	DayOfWeek   int  `bson:"dayOfWeek" json:"dayOfWeek"`
	StartMinute int  `bson:"startMinute" json:"startMinute"`
	EndMinute   int  `bson:"endMinute" json:"endMinute"`
	IsAvailable bool `bson:"isAvailable" json:"isAvailable"`
}

// Doctor is the static reference record for a practitioner.
type Doctor struct {
	ID                string         `bson:"id" json:"id"`
	Name              string         `bson:"name" json:"name"`
	Specialty         string         `bson:"specialty" json:"specialty"`
	AppointmentTypes  []string       `bson:"appointmentTypes" json:"appointmentTypes"`
	WorkingHours      []WorkingHours `bson:"workingHours" json:"workingHours"`
	BufferTimeMinutes int            `bson:"bufferTimeMinutes" json:"bufferTimeMinutes"`
	IsActive          bool           `bson:"isActive" json:"isActive"`
}

// HoursFor returns the working hours entry for the given weekday
// (0=Monday), or nil if the doctor does not work that day.
func (d *Doctor) HoursFor(dayOfWeek int) *WorkingHours {
	for i := range d.WorkingHours {
		wh := &d.WorkingHours[i]
		if wh.DayOfWeek == dayOfWeek && wh.IsAvailable {
			return wh
		}
	}
	return nil
}

// OffersType reports whether the doctor handles the given appointment type.
func (d *Doctor) OffersType(appointmentType string) bool {
	for _, t := range d.AppointmentTypes {
		if t == appointmentType {
			return true
		}
	}
	return false
}

// MinuteClock formats minutes-from-midnight as "HH:MM".
func MinuteClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
