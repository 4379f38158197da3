package billing

import (
	"fmt"
	"time"
)

// Romanian month names, no diacritics so they survive the core PDF fonts.
var romanianMonths = [...]string{
	"Ianuarie", "Februarie", "Martie", "Aprilie", "Mai", "Iunie",
	"Iulie", "August", "Septembrie", "Octombrie", "Noiembrie", "Decembrie",
}

// MonthYear formats a period heading such as "August 2026" in the locale
// matching the domestic flag.
func MonthYear(t time.Time, domestic bool) string {
	if domestic {
		return fmt.Sprintf("%s %d", romanianMonths[t.Month()-1], t.Year())
	}
	return fmt.Sprintf("%s %d", t.Month().String(), t.Year())
}
