package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    Intent
	}{
		{"book keyword", "I want to book a visit", IntentBookingRequest},
		{"appointment keyword", "I need an appointment", IntentBookingRequest},
		{"schedule keyword", "can we schedule something", IntentBookingRequest},
		{"move keyword", "move my visit to Friday", IntentRescheduleRequest},
		{"different time keyword", "I'd prefer a different time", IntentRescheduleRequest},
		{"cancel keyword", "cancel my visit", IntentCancelRequest},
		{"status keyword", "what's the status", IntentStatusCheck},
		{"confirmation keyword", "I lost my confirmation", IntentStatusCheck},
		{"hours keyword", "what are your hours?", IntentFaqQuestion},
		{"insurance keyword", "do you take my insurance", IntentFaqQuestion},
		{"parking keyword", "is there parking nearby", IntentFaqQuestion},
		{"greeting", "hello there", IntentGreeting},
		{"no keyword", "banana", IntentOther},
		{"empty", "", IntentOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.message))
		})
	}
}

func TestClassifyIntentPrecedence(t *testing.T) {
	// "book" outranks "cancel" because the booking rule sits first.
	assert.Equal(t, IntentBookingRequest, ClassifyIntent("book it, don't cancel"))

	// "reschedule" contains "schedule", so first-match-wins lands it in
	// the booking bucket. Management flows catch it by state instead.
	assert.Equal(t, IntentBookingRequest, ClassifyIntent("please reschedule me"))

	// "appointment" outranks the FAQ keyword "time".
	assert.Equal(t, IntentBookingRequest, ClassifyIntent("what time can I get an appointment"))

	// "time" alone lands in FAQ, not greeting, even with "hi" buried in it.
	assert.Equal(t, IntentFaqQuestion, ClassifyIntent("this time of year"))

	// "change" classifies as reschedule even when phrased as a question.
	assert.Equal(t, IntentRescheduleRequest, ClassifyIntent("can I change my slot"))
}

func TestClassifyIntentCaseInsensitive(t *testing.T) {
	assert.Equal(t, IntentBookingRequest, ClassifyIntent("BOOK ME IN"))
	assert.Equal(t, IntentCancelRequest, ClassifyIntent("CANCEL"))
}
