package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSlotsAttachesDoctorAndCaps(t *testing.T) {
	repo := newMemAppointmentRepo()
	doctors := newMemDoctorRepo(weekdayDoctor("doc-1"))
	finder := &DefaultSlotFinder{
		Doctors: doctors,
		Engine: &DefaultAvailabilityEngine{
			Doctors:       doctors,
			Appointments:  repo,
			BufferMinutes: 15,
		},
	}

	slots, err := finder.FindSlots(context.Background(), "General Consultation", 30, monday, 5)
	require.NoError(t, err)
	require.Len(t, slots, 5)
	for _, s := range slots {
		assert.Equal(t, "doc-1", s.DoctorID)
		assert.Equal(t, "Dr. Test", s.DoctorName)
	}
	assert.Equal(t, at(monday, 9, 0), slots[0].Start)
	for i := 1; i < len(slots); i++ {
		assert.True(t, !slots[i].Start.Before(slots[i-1].Start), "slots must be chronological")
	}
}

func TestFindSlotsSkipsDoctorsWithoutType(t *testing.T) {
	specialist := weekdayDoctor("doc-2")
	specialist.AppointmentTypes = []string{"Specialist Consultation"}

	repo := newMemAppointmentRepo()
	doctors := newMemDoctorRepo(specialist)
	finder := &DefaultSlotFinder{
		Doctors: doctors,
		Engine: &DefaultAvailabilityEngine{
			Doctors:       doctors,
			Appointments:  repo,
			BufferMinutes: 15,
		},
	}

	slots, err := finder.FindSlots(context.Background(), "Physical Exam", 45, monday, 5)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestFindSlotsSameDayFloorsAtStart(t *testing.T) {
	repo := newMemAppointmentRepo()
	doctors := newMemDoctorRepo(weekdayDoctor("doc-1"))
	finder := &DefaultSlotFinder{
		Doctors: doctors,
		Engine: &DefaultAvailabilityEngine{
			Doctors:       doctors,
			Appointments:  repo,
			BufferMinutes: 15,
		},
	}

	// An afternoon start must not surface the morning's slots.
	afternoon := at(monday, 15, 0)
	slots, err := finder.FindSlots(context.Background(), "General Consultation", 30, afternoon, 5)
	require.NoError(t, err)
	require.Len(t, slots, 5)
	assert.Equal(t, afternoon, slots[0].Start)
	for _, s := range slots {
		assert.False(t, s.Start.Before(afternoon), "slot %v lies before the requested start", s.Start)
	}
	// Monday holds four remaining slots; the fifth rolls to Tuesday morning.
	assert.Equal(t, "2025-09-02", slots[4].Start.Format("2006-01-02"))
}

func TestFindSlotsScansForward(t *testing.T) {
	// A Saturday start must roll over to the next working day.
	saturday := time.Date(2025, 9, 6, 0, 0, 0, 0, time.Local)

	repo := newMemAppointmentRepo()
	doctors := newMemDoctorRepo(weekdayDoctor("doc-1"))
	finder := &DefaultSlotFinder{
		Doctors: doctors,
		Engine: &DefaultAvailabilityEngine{
			Doctors:       doctors,
			Appointments:  repo,
			BufferMinutes: 15,
		},
	}

	slots, err := finder.FindSlots(context.Background(), "Follow-up", 15, saturday, 3)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	// 2025-09-08 is the following Monday.
	assert.Equal(t, "2025-09-08", slots[0].Start.Format("2006-01-02"))
}

func TestFindSlotsUnknownType(t *testing.T) {
	doctors := newMemDoctorRepo(weekdayDoctor("doc-1"))
	finder := &DefaultSlotFinder{
		Doctors: doctors,
		Engine: &DefaultAvailabilityEngine{
			Doctors:      doctors,
			Appointments: newMemAppointmentRepo(),
		},
	}

	_, err := finder.FindSlots(context.Background(), "Telepathy Session", 0, monday, 5)
	assert.True(t, IsValidation(err))
}
