package tax

import (
	"fmt"
	"time"
)

// ReminderStatus classifies how urgent an estimated-payment deadline is.
type ReminderStatus string

const (
	StatusOverdue ReminderStatus = "overdue"
	StatusDueSoon ReminderStatus = "due_soon" // within 30 days
	StatusFuture  ReminderStatus = "future"
)

// Reminder is one quarterly estimated-payment deadline relative to today.
type Reminder struct {
	Quarter      string         `json:"quarter"`
	DueDate      string         `json:"dueDate"` // YYYY-MM-DD
	DaysUntilDue int            `json:"daysUntilDue"`
	Status       ReminderStatus `json:"status"`
}

// QuarterlyDueDates returns the four estimated-payment deadlines for a tax
// year: April 15, June 15, September 15, and January 15 of the next year.
func QuarterlyDueDates(taxYear int) [4]time.Time {
	return [4]time.Time{
		time.Date(taxYear, time.April, 15, 0, 0, 0, 0, time.UTC),
		time.Date(taxYear, time.June, 15, 0, 0, 0, 0, time.UTC),
		time.Date(taxYear, time.September, 15, 0, 0, 0, 0, time.UTC),
		time.Date(taxYear+1, time.January, 15, 0, 0, 0, 0, time.UTC),
	}
}

// Reminders reports the current year's deadlines relative to today.
// A deadline within 30 days is due_soon; past deadlines are overdue.
func Reminders(today time.Time) []Reminder {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	out := make([]Reminder, 0, 4)
	for i, due := range QuarterlyDueDates(today.Year()) {
		days := int(due.Sub(today).Hours() / 24)

		status := StatusFuture
		switch {
		case days < 0:
			status = StatusOverdue
		case days <= 30:
			status = StatusDueSoon
		}

		out = append(out, Reminder{
			Quarter:      fmt.Sprintf("Q%d", i+1),
			DueDate:      due.Format("2006-01-02"),
			DaysUntilDue: days,
			Status:       status,
		})
	}
	return out
}
