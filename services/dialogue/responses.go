package dialogue

import (
	"fmt"
	"strings"

	"mediflow/models"
)

// FallbackResponse is returned whenever a turn fails for any reason.
const FallbackResponse = "I'm experiencing technical difficulties. Please try again or contact our clinic directly."

const slotDisplayLayout = "Monday, January 2 at 3:04 PM"

func appointmentMenu() string {
	var b strings.Builder
	b.WriteString("I'd be happy to help you schedule an appointment! We offer:\n")
	for _, t := range models.DefaultAppointmentTypes {
		fmt.Fprintf(&b, "- %s (%d min)\n", t.Name, t.DurationMinutes)
	}
	b.WriteString("\nWhat type of appointment would you like to schedule?")
	return b.String()
}

func typeChosenResponse(t models.AppointmentTypeInfo) string {
	return fmt.Sprintf("Perfect! I'd be happy to help you schedule a %s (%d minutes). "+
		"What day would work best for you? For example, you could say 'tomorrow' or 'next week'.",
		t.Name, t.DurationMinutes)
}

func slotListResponse(appointmentType string, slots []models.TimeSlot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on your preference, here are the next available slots for your %s:\n\n", appointmentType)
	for i, s := range slots {
		fmt.Fprintf(&b, "%d. %s with %s\n", i+1, s.Start.Format(slotDisplayLayout), s.DoctorName)
	}
	fmt.Fprintf(&b, "\nWhich time slot works best for you? Please reply with the number (1-%d) or let me know if none of these work.", len(slots))
	return b.String()
}

const noSlotsResponse = "I don't have any slots available for that time. Would you like me to show you " +
	"slots for the next few days instead? Or would you prefer a different appointment type?"

const patientInfoPrompt = "I need your complete information to book the appointment. Please provide your " +
	"full name, phone number, and email address. For example: 'John Smith, 555-123-4567, john@email.com'"

func bookingConfirmedResponse(appt *models.Appointment) string {
	slot := "TBD"
	if !appt.StartTime.IsZero() {
		slot = appt.StartTime.Format(slotDisplayLayout)
	}
	return fmt.Sprintf("Perfect! I've successfully booked your %s.\n\n"+
		"Booking Details:\n"+
		"- Confirmation #: %s\n"+
		"- Patient: %s\n"+
		"- Date/Time: %s\n"+
		"- Type: %s\n"+
		"- Duration: %d minutes\n\n"+
		"You'll receive a confirmation email shortly. If you need to reschedule or cancel, "+
		"please provide this confirmation number.\n\nIs there anything else I can help you with today?",
		appt.AppointmentType, appt.BookingID, appt.PatientInfo.Name, slot,
		appt.AppointmentType, appt.DurationMinutes)
}

const bookingConflictResponse = "I'm sorry, that time is no longer available. Someone else just booked it. " +
	"Here's what's still open; please pick another slot."

func faqResponse(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "hours") || strings.Contains(lower, "time"):
		return "Clinic Hours:\n- Monday-Friday: 8:00 AM - 6:00 PM\n- Saturday: 9:00 AM - 2:00 PM\n" +
			"- Sunday: Closed\n- Major holidays: Closed\n\nWe recommend scheduling appointments during regular business hours."
	case strings.Contains(lower, "location") || strings.Contains(lower, "address"):
		return "Clinic Location:\n123 Medical Center Drive\nDowntown Healthcare District\n\n" +
			"Parking: Free parking available in our underground garage. Valet parking for elderly patients " +
			"and those with mobility issues.\n\nPublic Transport: Easily accessible by bus routes 15, 22, and 45."
	case strings.Contains(lower, "insurance"):
		return "Accepted Insurance:\n- Blue Cross Blue Shield\n- Aetna\n- Cigna\n- UnitedHealthcare\n- Medicare\n\n" +
			"Verification: Please call our billing department at (555) 123-4567 to verify your specific coverage and copays."
	case strings.Contains(lower, "parking"):
		return "Parking Information:\n- Free parking in underground garage\n- Valet service available for elderly " +
			"and mobility-impaired patients\n- Street parking available (2-hour limit)\n- Accessible parking spaces reserved near entrance"
	case strings.Contains(lower, "payment") || strings.Contains(lower, "billing"):
		return "Payment Methods:\n- Cash, credit cards (Visa, MC, AmEx)\n- Debit cards\n- Personal checks\n" +
			"- Online payments via patient portal\n\nBilling: Due at time of service unless prior arrangements made."
	case strings.Contains(lower, "cancel") || strings.Contains(lower, "cancellation"):
		return "Cancellation Policy:\n- 24+ hours notice: No fee\n- Within 24 hours: $50 fee\n- Same-day: $100 fee\n" +
			"- No-shows: $100 fee\n\nCall us or use the patient portal to cancel."
	case strings.Contains(lower, "late") || strings.Contains(lower, "arrive"):
		return "Late Arrival Policy:\n- Arrive 15+ minutes late: May need rescheduling\n- Please call if you'll be late\n" +
			"- We reserve the right to reschedule if significantly delayed\n- Consider traffic/parking time when planning arrival"
	case strings.Contains(lower, "covid") || strings.Contains(lower, "mask"):
		return "COVID-19 Policy:\n- Masks required in common areas\n- Temperature checks at check-in\n" +
			"- Social distancing maintained\n- Enhanced cleaning protocols\n- Reschedule if experiencing symptoms"
	default:
		return "Clinic Information: I can help with:\n- Hours & scheduling\n- Location & parking\n" +
			"- Insurance & billing\n- Policies (cancellation, late arrival, COVID)\n- Services & procedures\n\n" +
			"What specific information are you looking for?"
	}
}

func managementResponse(intent Intent) string {
	switch intent {
	case IntentRescheduleRequest:
		return "I can help you reschedule your appointment. Could you please provide your appointment " +
			"confirmation number (starts with APT) or the original date/time of your appointment?"
	case IntentCancelRequest:
		return "I can help you cancel your appointment. Please note our 24-hour cancellation policy - " +
			"cancellations within 24 hours may incur a $50 fee. Could you provide your appointment " +
			"confirmation number or the date/time of your appointment?"
	default:
		return "How can I help you manage your appointment today?"
	}
}

const statusCheckPrompt = "I'd be happy to check your appointment status. Could you please provide your " +
	"appointment confirmation number (starts with APT) or the date/time of your appointment?"

func statusFoundResponse(appt *models.Appointment) string {
	return fmt.Sprintf("Here's what I found for confirmation %s:\n- Type: %s\n- Doctor: %s\n- Date/Time: %s\n- Status: %s",
		appt.BookingID, appt.AppointmentType, appt.DoctorName,
		appt.StartTime.Format(slotDisplayLayout), appt.Status)
}

func statusNotFoundResponse(bookingID string) string {
	return fmt.Sprintf("I couldn't find an appointment with confirmation number %s. "+
		"Please double-check the number and try again.", bookingID)
}

func greetingResponse(clinicName string) string {
	return fmt.Sprintf("Hello! I'm %s's intelligent scheduling assistant. I can help you:\n\n"+
		"- Schedule appointments - Book consultations, follow-ups, exams\n"+
		"- Answer questions - Clinic hours, location, insurance, policies\n"+
		"- Manage bookings - Reschedule or cancel appointments\n"+
		"- Check status - View your upcoming appointments\n\n"+
		"How can I assist you today?", clinicName)
}

const defaultResponse = "I'm here to help with appointment scheduling and clinic information. You can:\n\n" +
	"- Book appointments - Tell me what type you need\n" +
	"- Ask questions - About hours, location, insurance, etc.\n" +
	"- Manage bookings - Reschedule or cancel existing appointments\n\n" +
	"What would you like help with today?"
