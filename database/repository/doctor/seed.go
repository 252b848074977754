// File: database/repository/doctor/seed.go
package doctorRepo

import (
	"context"

	"mediflow/models"
)

func weekdayHours(startMinute, endMinute int) []models.WorkingHours {
	var hours []models.WorkingHours
	for day := 0; day < 5; day++ { // Monday..Friday
		hours = append(hours, models.WorkingHours{
			DayOfWeek:   day,
			StartMinute: startMinute,
			EndMinute:   endMinute,
			IsAvailable: true,
		})
	}
	return hours
}

// defaultDoctors is the roster seeded into an empty deployment.
var defaultDoctors = []models.Doctor{
	{
		ID:        "doc-sarah-johnson",
		Name:      "Dr. Sarah Johnson",
		Specialty: "General Medicine",
		AppointmentTypes: []string{
			"General Consultation", "Follow-up", "Physical Exam",
		},
		WorkingHours:      weekdayHours(9*60, 17*60),
		BufferTimeMinutes: 15,
		IsActive:          true,
	},
	{
		ID:        "doc-michael-chen",
		Name:      "Dr. Michael Chen",
		Specialty: "Internal Medicine",
		AppointmentTypes: []string{
			"General Consultation", "Follow-up", "Specialist Consultation",
		},
		WorkingHours: append(weekdayHours(8*60, 16*60), models.WorkingHours{
			DayOfWeek:   5, // Saturday morning clinic
			StartMinute: 9 * 60,
			EndMinute:   13 * 60,
			IsAvailable: true,
		}),
		BufferTimeMinutes: 15,
		IsActive:          true,
	},
	{
		ID:        "doc-emily-brown",
		Name:      "Dr. Emily Brown",
		Specialty: "Family Medicine",
		AppointmentTypes: []string{
			"General Consultation", "Physical Exam", "Specialist Consultation",
		},
		WorkingHours:      weekdayHours(10*60, 18*60),
		BufferTimeMinutes: 15,
		IsActive:          true,
	},
}

// SeedDefaultDoctors inserts the default roster when the collection is
// empty. Existing rosters are left untouched.
func SeedDefaultDoctors(ctx context.Context, repo DoctorRepository) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for i := range defaultDoctors {
		doc := defaultDoctors[i]
		if err := repo.Upsert(ctx, &doc); err != nil {
			return err
		}
	}
	return nil
}
