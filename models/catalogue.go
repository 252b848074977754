package models

// AppointmentTypeInfo describes one bookable appointment type.
type AppointmentTypeInfo struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	Description     string `json:"description"`
}

// DefaultAppointmentTypes is the clinic's bookable catalogue, in menu order.
var DefaultAppointmentTypes = []AppointmentTypeInfo{
	{Name: "General Consultation", DurationMinutes: 30, Description: "Comprehensive medical consultation"},
	{Name: "Follow-up", DurationMinutes: 15, Description: "Follow-up visit after treatment"},
	{Name: "Physical Exam", DurationMinutes: 45, Description: "Complete physical examination"},
	{Name: "Specialist Consultation", DurationMinutes: 60, Description: "Consultation with medical specialist"},
}

// DurationForType returns the default duration for an appointment type.
func DurationForType(name string) (int, bool) {
	for _, t := range DefaultAppointmentTypes {
		if t.Name == name {
			return t.DurationMinutes, true
		}
	}
	return 0, false
}
