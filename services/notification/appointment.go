package notification

import (
	"context"
	"fmt"

	"mediflow/models"
)

const emailTimeLayout = "Monday, January 2, 2006 at 3:04 PM"

// AppointmentNotifier formats and sends appointment lifecycle emails.
// It satisfies the booking service's notifier contract.
type AppointmentNotifier struct {
	Sender     EmailSender
	ClinicName string
}

func (n *AppointmentNotifier) sender() EmailSender {
	if n.Sender != nil {
		return n.Sender
	}
	return StubEmailSender{}
}

func (n *AppointmentNotifier) SendBookingConfirmation(ctx context.Context, appt *models.Appointment) error {
	body := fmt.Sprintf("Dear %s,\n\nYour %s is confirmed.\n\n"+
		"Confirmation #: %s\nDoctor: %s\nDate/Time: %s\nDuration: %d minutes\n\n"+
		"Please arrive 15 minutes early. Keep this confirmation number for any changes.\n\n%s",
		appt.PatientInfo.Name, appt.AppointmentType, appt.BookingID, appt.DoctorName,
		appt.StartTime.Format(emailTimeLayout), appt.DurationMinutes, n.ClinicName)

	return n.sender().Send(ctx, EmailMessage{
		To:      appt.PatientInfo.Email,
		ToName:  appt.PatientInfo.Name,
		Subject: fmt.Sprintf("Appointment Confirmed - %s", appt.BookingID),
		Body:    body,
	})
}

func (n *AppointmentNotifier) SendCancellationNotice(ctx context.Context, appt *models.Appointment, fee float64, policy string) error {
	body := fmt.Sprintf("Dear %s,\n\nYour appointment %s on %s has been cancelled.\n\n%s",
		appt.PatientInfo.Name, appt.BookingID, appt.StartTime.Format(emailTimeLayout), policy)
	if fee > 0 {
		body += fmt.Sprintf("\nA cancellation fee of $%.0f will be billed.", fee)
	}
	body += fmt.Sprintf("\n\n%s", n.ClinicName)

	return n.sender().Send(ctx, EmailMessage{
		To:      appt.PatientInfo.Email,
		ToName:  appt.PatientInfo.Name,
		Subject: fmt.Sprintf("Appointment Cancelled - %s", appt.BookingID),
		Body:    body,
	})
}

// SendReminder is invoked by the reminder worker ahead of the start time.
func (n *AppointmentNotifier) SendReminder(ctx context.Context, p models.ReminderPayload) error {
	body := fmt.Sprintf("Dear %s,\n\nThis is a reminder about your upcoming appointment.\n\n"+
		"Confirmation #: %s\nDoctor: %s\nDate/Time: %s\n\n"+
		"Please arrive 15 minutes early. Contact us if you need to reschedule.\n\n%s",
		p.PatientName, p.BookingID, p.DoctorName,
		p.StartTime.Format(emailTimeLayout), n.ClinicName)

	return n.sender().Send(ctx, EmailMessage{
		To:      p.PatientEmail,
		ToName:  p.PatientName,
		Subject: fmt.Sprintf("Appointment Reminder - %s", p.BookingID),
		Body:    body,
	})
}
