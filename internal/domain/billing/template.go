package billing

import (
	"strings"
	"time"
)

// Template placeholders recognized in a contract's invoicing description.
const (
	PlaceholderThisMonth = "{this_month}"
	PlaceholderLastMonth = "{last_month}"
)

// PreviousMonth returns the first day of the month before t.
func PreviousMonth(t time.Time) time.Time {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return firstOfMonth.AddDate(0, -1, 0)
}

// ResolveDescription expands the {this_month} / {last_month} placeholders of a
// contract description template against the invoice issue date, using month
// names in the buyer's locale. Templates without placeholders pass through.
func ResolveDescription(template string, issueDate time.Time, domestic bool) string {
	if !strings.Contains(template, "{") {
		return template
	}
	r := strings.NewReplacer(
		PlaceholderThisMonth, MonthYear(issueDate, domestic),
		PlaceholderLastMonth, MonthYear(PreviousMonth(issueDate), domestic),
	)
	return r.Replace(template)
}

// UsesLastMonth reports whether the template bills for the previous month,
// which also decides the period covered by a generated timesheet.
func UsesLastMonth(template string) bool {
	return strings.Contains(template, PlaceholderLastMonth)
}
