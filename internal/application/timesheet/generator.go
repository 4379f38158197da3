// Package timesheet generates the plausible work log printed as the invoice
// annex. Tasks, durations and dates are synthesized from the billed quantity;
// the numbers always add up to the invoiced total.
package timesheet

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/kopsha/micro-invoicer/internal/application/usecase"
	"github.com/kopsha/micro-invoicer/internal/domain"
	"github.com/kopsha/micro-invoicer/internal/domain/entity"
)

var _ usecase.TimesheetGenerator = (*Generator)(nil)

// taskNamePool holds the activity phrases; {flavor} is replaced with the
// invoice description before capitalization.
var taskNamePool = []string{
	"sprint planning",
	"sprint review",
	"development tasks estimation",
	"defects investigation",
	"worst case analysis",
	"code reviews",
	"refactoring old-code",
	"system architecture updates",
	"release notes",
	"system component design",
	"public API design",
	"public API implementation",
	"public API integration",
	"{flavor} performance profiling",
	"{flavor} generic mock setup",
	"{flavor} state manager",
	"{flavor} components architecture",
	"{flavor} android communication layer",
	"{flavor} android native implementation",
	"{flavor} iOs communication layer",
	"{flavor} iOs native implementation",
	"{flavor} core implementation",
	"{flavor} class diagram",
	"{flavor} public interfaces",
	"{flavor} core business logic",
	"{flavor} testing module",
	"{flavor} user interface",
	"{flavor} presentation models",
	"{flavor} data modeling",
	"{flavor} event handling",
	"{flavor} exceptions handling",
	"{flavor} component design",
	"{flavor} component integration",
	"{flavor} defects verification",
	"{flavor} defects analysis",
	"{flavor} defects correction",
	"{flavor} code coverage testing",
	"{flavor} low level api",
}

const (
	minTasks = 8
	maxTasks = 17
)

// Generator synthesizes timesheets from a seedable random source, so tests can
// fix the seed and get reproducible output.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator over the given random source.
func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// NewSeeded creates a generator with a time-based seed.
func NewSeeded() *Generator {
	return New(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// Generate builds a timesheet of 8 to 17 tasks covering the billed hours,
// starting at the first working day on or after start. Only hourly billing can
// be expanded into a work log.
func (g *Generator) Generate(start time.Time, flavor, project string, quantity decimal.Decimal, unit string) (*entity.Timesheet, error) {
	if unit != entity.UnitHour {
		return nil, fmt.Errorf("%w: cannot expand unit %q into a work log", domain.ErrInvalidInput, unit)
	}
	hours := int(quantity.Round(0).IntPart())
	if hours < 1 {
		return nil, fmt.Errorf("%w: quantity must cover at least one hour", domain.ErrInvalidInput)
	}

	count := minTasks + g.rng.Intn(maxTasks-minTasks+1)
	if count > hours {
		count = hours
	}

	names := g.pickTaskNames(flavor, count)
	durations := g.splitDuration(hours, count)
	dates := computeStartDates(start, durations)

	tasks := make([]entity.Task, count)
	for i := range tasks {
		tasks[i] = entity.Task{
			Name:     names[i],
			Date:     dates[i],
			Duration: decimal.NewFromInt(int64(durations[i])),
			Project:  project,
		}
	}

	return &entity.Timesheet{
		StartDate: start,
		Flavor:    flavor,
		Project:   project,
		Tasks:     tasks,
	}, nil
}

// pickTaskNames samples count distinct phrases from the pool, substitutes the
// flavor and capitalizes the result.
func (g *Generator) pickTaskNames(flavor string, count int) []string {
	idx := g.rng.Perm(len(taskNamePool))
	names := make([]string, count)
	for i := 0; i < count; i++ {
		phrase := strings.ReplaceAll(taskNamePool[idx[i]], "{flavor}", flavor)
		names[i] = capitalize(phrase)
	}
	return names
}

// splitDuration divides the total hours into count uneven chunks. Each step
// caps its share at a golden-ratio fraction of what remains, weighted towards
// later tasks, and the final task absorbs the remainder so the chunks always
// sum to the total exactly.
func (g *Generator) splitDuration(duration, count int) []int {
	left := duration
	splits := make([]int, 0, count)

	for step := 0; step < count-1; step++ {
		maxSplit := int(math.Round(float64(left) * (0.618 * float64(step+2) / float64(count))))
		minSplit := maxSplit - 1
		if minSplit > 4 {
			minSplit = 4
		}
		if minSplit < 1 {
			minSplit = 1
		}
		current := minSplit
		if maxSplit > minSplit {
			current = minSplit + g.rng.Intn(maxSplit-minSplit)
		}
		if current > left-(count-1-step) {
			// keep at least one hour for every remaining task
			current = left - (count - 1 - step)
		}
		if current < 1 {
			current = 1
		}
		splits = append(splits, current)
		left -= current
	}

	splits = append(splits, left)
	return splits
}

// computeStartDates walks the calendar forward, advancing roughly one day per
// eight worked hours and skipping over weekends.
func computeStartDates(start time.Time, durations []int) []time.Time {
	dates := make([]time.Time, 0, len(durations))
	trace := start
	for _, d := range durations {
		trace = trace.AddDate(0, 0, int(math.Round(float64(d)/8)))
		switch trace.Weekday() {
		case time.Saturday:
			trace = trace.AddDate(0, 0, 2)
		case time.Sunday:
			trace = trace.AddDate(0, 0, 1)
		}
		dates = append(dates, trace)
	}
	return dates
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
