package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Task is one illustrative activity line on a timesheet annex.
type Task struct {
	Name     string
	Date     time.Time
	Duration decimal.Decimal // in invoice units, typically hours
	Project  string
}

// Timesheet is backup documentation attached to an invoice. It is not
// authoritative billing data; the invoice quantity is the source of truth and
// the task breakdown only illustrates it.
type Timesheet struct {
	StartDate time.Time
	Flavor    string
	Project   string
	Tasks     []Task
}

// Duration sums the task durations.
func (t *Timesheet) Duration() decimal.Decimal {
	total := decimal.Zero
	for _, task := range t.Tasks {
		total = total.Add(task.Duration)
	}
	return total
}
