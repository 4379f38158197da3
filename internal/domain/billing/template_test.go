package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kopsha/micro-invoicer/internal/domain/billing"
)

func TestResolveDescriptionPlaceholders(t *testing.T) {
	issued := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	got := billing.ResolveDescription("Servicii software, {last_month}", issued, true)
	assert.Equal(t, "Servicii software, Februarie 2026", got)

	got = billing.ResolveDescription("Software services, {this_month}", issued, false)
	assert.Equal(t, "Software services, March 2026", got)
}

func TestResolveDescriptionPassThrough(t *testing.T) {
	got := billing.ResolveDescription("Consultanta IT", time.Now(), true)
	assert.Equal(t, "Consultanta IT", got, "templates without placeholders must pass unchanged")
}

func TestPreviousMonthCrossesYearBoundary(t *testing.T) {
	got := billing.PreviousMonth(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestUsesLastMonth(t *testing.T) {
	assert.True(t, billing.UsesLastMonth("work done in {last_month}"))
	assert.False(t, billing.UsesLastMonth("work done in {this_month}"))
	assert.False(t, billing.UsesLastMonth("plain description"))
}

func TestMonthYearLocales(t *testing.T) {
	march := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Martie 2026", billing.MonthYear(march, true))
	assert.Equal(t, "March 2026", billing.MonthYear(march, false))
}
