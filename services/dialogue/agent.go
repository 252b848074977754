package dialogue

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"mediflow/models"
	"mediflow/services/scheduling"
	"mediflow/utils"

	"go.uber.org/zap"
)

// SlotFinder supplies open slots across doctors for an appointment type,
// starting from a given date.
type SlotFinder interface {
	FindSlots(ctx context.Context, appointmentType string, durationMinutes int, from time.Time, limit int) ([]models.TimeSlot, error)
}

// BookingCreator is the slice of the booking service the agent needs.
type BookingCreator interface {
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Appointment, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Appointment, error)
}

// TurnResult is the outcome of one conversation turn.
type TurnResult struct {
	Response string
	Intent   Intent
	Session  *models.ConversationSession
}

// Agent drives the conversation state machine. It holds no per-session
// state; everything lives in the ConversationSession passed to each turn.
type Agent struct {
	Slots      SlotFinder
	Bookings   BookingCreator
	ClinicName string

	Now func() time.Time // injectable clock, defaults to time.Now
}

func (a *Agent) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

const maxOfferedSlots = 5

var (
	bookingIDPattern  = regexp.MustCompile(`APT\d{14}`)
	slotNumberPattern = regexp.MustCompile(`\b\d+\b`)
)

// ProcessTurn runs one turn: classify the intent, advance the state
// machine using what was known before this turn, then generate the
// response (which may record preferences or commit a booking). Any
// failure restores the session to its pre-turn snapshot and returns a
// fallback response without changing state.
func (a *Agent) ProcessTurn(ctx context.Context, sess *models.ConversationSession, message string) (res TurnResult) {
	logger := utils.GetLogger()
	sess.Sanitize()
	snapshot := sess.Clone()
	now := a.now()

	fail := func(cause interface{}) TurnResult {
		logger.Error("conversation turn failed",
			zap.String("sessionID", snapshot.ID),
			zap.String("state", string(snapshot.State)),
			zap.Any("cause", cause))
		*sess = *snapshot
		sess.Append(models.HistoryEntry{Role: "user", Text: message, Timestamp: now, Intent: string(IntentError), State: sess.State})
		sess.Append(models.HistoryEntry{Role: "assistant", Text: FallbackResponse, Timestamp: now, State: sess.State})
		sess.UpdatedAt = now
		return TurnResult{Response: FallbackResponse, Intent: IntentError, Session: sess}
	}
	defer func() {
		if r := recover(); r != nil {
			res = fail(r)
		}
	}()

	intent := ClassifyIntent(message)

	if err := a.transition(ctx, sess, intent, message); err != nil {
		return fail(err)
	}
	response, err := a.respond(ctx, sess, snapshot.State, intent, message)
	if err != nil {
		return fail(err)
	}

	sess.Append(models.HistoryEntry{Role: "user", Text: message, Timestamp: now, Intent: string(intent), State: snapshot.State})
	sess.Append(models.HistoryEntry{Role: "assistant", Text: response, Timestamp: now, State: sess.State})
	sess.UpdatedAt = now

	return TurnResult{Response: response, Intent: intent, Session: sess}
}

// transition advances the machine using only what previous turns
// established. Preferences extracted from the current message take
// effect during response generation, so their transitions fire on the
// following turn.
func (a *Agent) transition(ctx context.Context, sess *models.ConversationSession, intent Intent, message string) error {
	// A clinic question interrupts any flow except the patient-info
	// exchange; the prior state is kept so the conversation resumes
	// where it left off.
	if intent == IntentFaqQuestion && sess.State != models.StateFaq && sess.State != models.StateBookingConfirmation {
		sess.PreviousState = sess.State
		sess.State = models.StateFaq
		return nil
	}

	// Management and status intents take over from any state.
	switch intent {
	case IntentRescheduleRequest, IntentCancelRequest:
		sess.State = models.StateManagingAppointment
		sess.PreviousState = ""
		return nil
	case IntentStatusCheck:
		sess.State = models.StateCheckingStatus
		sess.PreviousState = ""
		return nil
	}

	switch sess.State {
	case models.StateGreeting:
		if intent == IntentBookingRequest {
			sess.State = models.StateUnderstandingNeeds
		}

	case models.StateUnderstandingNeeds:
		if sess.Preferences.Type != "" {
			slots, err := a.findSlots(ctx, sess, message)
			if err != nil {
				return err
			}
			if len(slots) > 0 {
				sess.OfferedSlots = slots
				sess.State = models.StateSlotRecommendation
			}
		}

	case models.StateSlotRecommendation:
		if n, ok := parseSlotNumber(message); ok && n >= 1 && n <= len(sess.OfferedSlots) {
			slot := sess.OfferedSlots[n-1]
			sess.Preferences.SelectedSlot = &slot
			sess.Preferences.DoctorID = slot.DoctorID
			sess.State = models.StateBookingConfirmation
		}
		// An out-of-range number keeps the state; the response re-offers.

	case models.StateFaq:
		switch {
		case intent == IntentBookingRequest:
			sess.State = models.StateUnderstandingNeeds
			sess.PreviousState = ""
		case intent != IntentFaqQuestion && !looksLikeQuestion(message):
			if sess.PreviousState != "" {
				sess.State = sess.PreviousState
			} else {
				sess.State = models.StateGreeting
			}
			sess.PreviousState = ""
		}
	}
	return nil
}

func (a *Agent) respond(ctx context.Context, sess *models.ConversationSession, prevState models.ConversationState, intent Intent, message string) (string, error) {
	switch sess.State {
	case models.StateGreeting:
		if intent == IntentGreeting {
			return greetingResponse(a.ClinicName), nil
		}
		return defaultResponse, nil

	case models.StateUnderstandingNeeds:
		if t, ok := extractAppointmentType(message); ok {
			sess.Preferences.Type = t.Name
			sess.Preferences.DurationMinutes = t.DurationMinutes
			return typeChosenResponse(t), nil
		}
		if sess.Preferences.Type != "" {
			// A date was given but nothing opened up on it.
			return noSlotsResponse, nil
		}
		return appointmentMenu(), nil

	case models.StateSlotRecommendation:
		if n, ok := parseSlotNumber(message); ok && (n < 1 || n > len(sess.OfferedSlots)) {
			return fmt.Sprintf("Please pick a number between 1 and %d.\n\n%s",
				len(sess.OfferedSlots), slotListResponse(sess.Preferences.Type, sess.OfferedSlots)), nil
		}
		return slotListResponse(sess.Preferences.Type, sess.OfferedSlots), nil

	case models.StateBookingConfirmation:
		// The message that selected the slot is not contact information.
		if prevState == models.StateSlotRecommendation {
			return patientInfoPrompt, nil
		}
		updatePatientDraft(&sess.PatientDraft, message)
		if !patientDraftComplete(sess.PatientDraft) {
			return patientInfoPrompt, nil
		}
		return a.completeBooking(ctx, sess)

	case models.StateManagingAppointment:
		if id, ok := extractBookingID(message); ok {
			return a.lookupBooking(ctx, id)
		}
		return managementResponse(intent), nil

	case models.StateCheckingStatus:
		if id, ok := extractBookingID(message); ok {
			return a.lookupBooking(ctx, id)
		}
		return statusCheckPrompt, nil

	case models.StateFaq:
		return faqResponse(message), nil
	}
	return defaultResponse, nil
}

// completeBooking commits the selected slot (or records a request with
// no slot when slot selection was bypassed), emits the confirmation and
// resets the flow back to greeting.
func (a *Agent) completeBooking(ctx context.Context, sess *models.ConversationSession) (string, error) {
	var appt *models.Appointment

	if slot := sess.Preferences.SelectedSlot; slot != nil && a.Bookings != nil {
		created, err := a.Bookings.CreateBooking(ctx, models.BookingRequest{
			DoctorID:        slot.DoctorID,
			AppointmentType: sess.Preferences.Type,
			StartTime:       slot.Start,
			PatientInfo:     sess.PatientDraft,
		})
		if err != nil {
			if scheduling.IsConflict(err) || scheduling.IsSlotUnavailable(err) {
				return a.handleLostSlot(ctx, sess)
			}
			return "", err
		}
		appt = created
	} else {
		now := a.now()
		appt = &models.Appointment{
			BookingID:       scheduling.NewBookingID(now),
			AppointmentType: sess.Preferences.Type,
			DurationMinutes: sess.Preferences.DurationMinutes,
			PatientInfo:     sess.PatientDraft,
			Status:          models.StatusPending,
			CreatedAt:       now,
		}
	}

	response := bookingConfirmedResponse(appt)
	sess.Reset()
	return response, nil
}

// handleLostSlot recovers from a commit-time conflict: the optimistic
// slot was taken by a concurrent booking, so re-offer what is still open.
func (a *Agent) handleLostSlot(ctx context.Context, sess *models.ConversationSession) (string, error) {
	sess.Preferences.SelectedSlot = nil
	sess.State = models.StateSlotRecommendation

	slots, err := a.findSlots(ctx, sess, "")
	if err != nil {
		return "", err
	}
	sess.OfferedSlots = slots
	if len(slots) == 0 {
		sess.State = models.StateUnderstandingNeeds
		return bookingConflictResponse + "\n\n" + noSlotsResponse, nil
	}
	return bookingConflictResponse + "\n\n" + slotListResponse(sess.Preferences.Type, slots), nil
}

func (a *Agent) findSlots(ctx context.Context, sess *models.ConversationSession, message string) ([]models.TimeSlot, error) {
	if a.Slots == nil {
		return nil, nil
	}
	duration := sess.Preferences.DurationMinutes
	if duration == 0 {
		if d, ok := models.DurationForType(sess.Preferences.Type); ok {
			duration = d
		}
	}
	from := a.preferredDate(message)
	sess.Preferences.PreferredDate = from.Format("2006-01-02")
	return a.Slots.FindSlots(ctx, sess.Preferences.Type, duration, from, maxOfferedSlots)
}

// preferredDate reads a coarse day hint out of the message.
func (a *Agent) preferredDate(message string) time.Time {
	lower := strings.ToLower(message)
	now := a.now()
	switch {
	case strings.Contains(lower, "next week"):
		return now.AddDate(0, 0, 7)
	case strings.Contains(lower, "tomorrow"):
		return now.AddDate(0, 0, 1)
	default:
		return now
	}
}

func (a *Agent) lookupBooking(ctx context.Context, bookingID string) (string, error) {
	if a.Bookings == nil {
		return statusNotFoundResponse(bookingID), nil
	}
	appt, err := a.Bookings.GetBooking(ctx, bookingID)
	if err != nil {
		if scheduling.IsNotFound(err) {
			return statusNotFoundResponse(bookingID), nil
		}
		return "", err
	}
	return statusFoundResponse(appt), nil
}

// parseSlotNumber pulls the first whole number out of the message, so
// "number 2 works for me" selects slot 2.
func parseSlotNumber(message string) (int, bool) {
	digits := slotNumberPattern.FindString(message)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

func extractBookingID(message string) (string, bool) {
	id := bookingIDPattern.FindString(strings.ToUpper(message))
	return id, id != ""
}

var questionWords = []string{"what", "how", "when", "where", "can"}

func looksLikeQuestion(message string) bool {
	lower := strings.ToLower(message)
	for _, w := range questionWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// extractAppointmentType maps loose phrasing onto the catalogue. The
// buckets are checked in menu order, so "specialist consultation"
// resolves through the "consultation" keyword to General Consultation.
func extractAppointmentType(message string) (models.AppointmentTypeInfo, bool) {
	lower := strings.ToLower(message)
	var name string
	switch {
	case strings.Contains(lower, "general") || strings.Contains(lower, "consultation"):
		name = "General Consultation"
	case strings.Contains(lower, "follow") || strings.Contains(lower, "check"):
		name = "Follow-up"
	case strings.Contains(lower, "physical") || strings.Contains(lower, "exam"):
		name = "Physical Exam"
	case strings.Contains(lower, "specialist"):
		name = "Specialist Consultation"
	default:
		return models.AppointmentTypeInfo{}, false
	}
	for _, t := range models.DefaultAppointmentTypes {
		if t.Name == name {
			return t, true
		}
	}
	return models.AppointmentTypeInfo{}, false
}

// updatePatientDraft folds contact details out of a comma-separated
// message ("Jane Doe, 555-123-4567, jane@email.com"). Partial messages
// fill what they carry and leave the rest for the next turn.
func updatePatientDraft(draft *models.PatientInfo, message string) {
	parts := strings.Split(message, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	switch {
	case len(parts) >= 3:
		draft.Name = parts[0]
		draft.Phone = parts[1]
		draft.Email = parts[2]
		if len(parts) > 3 {
			draft.Reason = strings.Join(parts[3:], ", ")
		}
	case len(parts) == 2:
		draft.Name = parts[0]
		draft.Phone = parts[1]
	case len(parts) == 1 && parts[0] != "":
		// A lone token fills whichever field it resembles, without
		// clobbering details gathered on earlier turns.
		switch {
		case strings.Contains(parts[0], "@"):
			draft.Email = parts[0]
		case countDigits(parts[0]) >= 7:
			draft.Phone = parts[0]
		case draft.Name == "":
			draft.Name = parts[0]
		}
	}
}

func patientDraftComplete(info models.PatientInfo) bool {
	return info.Name != "" && info.Phone != "" && info.Email != ""
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
