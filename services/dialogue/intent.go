package dialogue

import "strings"

// Intent is the classified purpose of a user utterance.
type Intent string

const (
	IntentBookingRequest    Intent = "booking_request"
	IntentRescheduleRequest Intent = "reschedule_request"
	IntentCancelRequest     Intent = "cancel_request"
	IntentStatusCheck       Intent = "status_check"
	IntentFaqQuestion       Intent = "faq_question"
	IntentGreeting          Intent = "greeting"
	IntentOther             Intent = "other"
	IntentError             Intent = "error"
)

type intentRule struct {
	intent   Intent
	keywords []string
}

// intentRules is the declarative classification table. Order is the
// precedence: keyword sets overlap (e.g. "time" appears in both FAQ and
// casual phrasing), so the first matching rule wins.
var intentRules = []intentRule{
	{IntentBookingRequest, []string{"book", "schedule", "appointment", "make", "set up"}},
	{IntentRescheduleRequest, []string{"reschedule", "change", "move", "different time"}},
	{IntentCancelRequest, []string{"cancel", "delete", "remove", "cancellation"}},
	{IntentStatusCheck, []string{"status", "check", "when", "confirmation"}},
	{IntentFaqQuestion, []string{"hours", "time", "location", "address", "parking", "insurance", "payment", "billing", "policy", "covid"}},
	{IntentGreeting, []string{"hello", "hi", "hey", "good morning", "good afternoon"}},
}

// ClassifyIntent maps free text onto an intent by case-insensitive
// substring membership against the rule table.
func ClassifyIntent(message string) Intent {
	lower := strings.ToLower(message)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.intent
			}
		}
	}
	return IntentOther
}
