package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	doctorRepo "mediflow/database/repository/doctor"
	"mediflow/models"
)

// searchHorizonDays bounds how far past the preferred date the finder
// scans before giving up.
const searchHorizonDays = 7

// DefaultSlotFinder produces cross-doctor slot offers for the dialogue
// flow. It scans day by day from the preferred date until it has enough
// slots or runs out of horizon.
type DefaultSlotFinder struct {
	Doctors doctorRepo.DoctorRepository
	Engine  AvailabilityEngine
}

func (f *DefaultSlotFinder) FindSlots(ctx context.Context, appointmentType string, durationMinutes int, from time.Time, limit int) ([]models.TimeSlot, error) {
	if limit <= 0 {
		return nil, nil
	}
	if durationMinutes <= 0 {
		if d, ok := models.DurationForType(appointmentType); ok {
			durationMinutes = d
		} else {
			return nil, NewValidationError(fmt.Sprintf("appointment type %q is not available", appointmentType))
		}
	}

	doctors, err := f.Doctors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}

	var offers []models.TimeSlot
	for offset := 0; offset < searchHorizonDays; offset++ {
		date := from.AddDate(0, 0, offset).Format(dateLayout)
		var daySlots []models.TimeSlot
		for i := range doctors {
			doc := &doctors[i]
			if len(doc.AppointmentTypes) > 0 && !doc.OffersType(appointmentType) {
				continue
			}
			slots, err := f.Engine.ComputeAvailableSlots(ctx, doc.ID, date, durationMinutes)
			if err != nil {
				return nil, err
			}
			for _, s := range slots {
				// A same-day scan must not offer slots already behind the
				// preferred start time.
				if s.Start.Before(from) {
					continue
				}
				s.DoctorID = doc.ID
				s.DoctorName = doc.Name
				daySlots = append(daySlots, s)
			}
		}
		sort.Slice(daySlots, func(i, j int) bool { return daySlots[i].Start.Before(daySlots[j].Start) })
		offers = append(offers, daySlots...)
		if len(offers) >= limit {
			break
		}
	}

	if len(offers) > limit {
		offers = offers[:limit]
	}
	return offers, nil
}
