package tasks

import (
	"context"
	"encoding/json"
	"time"

	"mediflow/models"
	"mediflow/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds the asynq task that fires the reminder email at
// the given time.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues appointment reminders on the Redis
// backed task queue.
type AsynqReminderScheduler struct {
	Client    *asynq.Client
	LeadHours int
}

func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, appt *models.Appointment) error {
	lead := s.LeadHours
	if lead <= 0 {
		lead = 24
	}
	fireAt := appt.StartTime.Add(-time.Duration(lead) * time.Hour)
	if !fireAt.After(time.Now()) {
		// Too close to the start to be worth a reminder.
		utils.GetLogger().Debug("skipping reminder inside lead window",
			zap.String("bookingID", appt.BookingID))
		return nil
	}

	task, opts, err := NewReminderTask(models.ReminderPayload{
		BookingID:    appt.BookingID,
		PatientName:  appt.PatientInfo.Name,
		PatientEmail: appt.PatientInfo.Email,
		DoctorName:   appt.DoctorName,
		StartTime:    appt.StartTime,
	}, fireAt)
	if err != nil {
		return err
	}

	info, err := s.Client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return err
	}
	utils.GetLogger().Info("reminder enqueued",
		zap.String("bookingID", appt.BookingID),
		zap.String("taskID", info.ID),
		zap.Time("fireAt", fireAt))
	return nil
}
