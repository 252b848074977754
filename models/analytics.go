package models

// AppointmentMetrics aggregates appointment activity over a date range.
type AppointmentMetrics struct {
	StartDate         string         `json:"startDate"`
	EndDate           string         `json:"endDate"`
	TotalAppointments int            `json:"totalAppointments"`
	Confirmed         int            `json:"confirmed"`
	Cancelled         int            `json:"cancelled"`
	Completed         int            `json:"completed"`
	CancellationRate  float64        `json:"cancellationRate"`
	ByType            map[string]int `json:"byType"`
	ByDoctor          map[string]int `json:"byDoctor"`
	DailyCounts       map[string]int `json:"dailyCounts"` // keyed by YYYY-MM-DD
}
