package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kopsha/micro-invoicer/internal/domain/entity"
)

func TestFormatSeriesNumber(t *testing.T) {
	assert.Equal(t, "AAA-0007", entity.FormatSeriesNumber("AAA", 7))
	assert.Equal(t, "X-2026-0123", entity.FormatSeriesNumber("X-2026", 123))
	assert.Equal(t, "AAA-12345", entity.FormatSeriesNumber("AAA", 12345), "padding must not truncate large numbers")
}

func TestParseSeriesNumberRoundTrip(t *testing.T) {
	series, number, err := entity.ParseSeriesNumber("AAA-0007")
	require.NoError(t, err)
	assert.Equal(t, "AAA", series)
	assert.Equal(t, 7, number)

	// series containing dashes split at the last one
	series, number, err = entity.ParseSeriesNumber("X-2026-0123")
	require.NoError(t, err)
	assert.Equal(t, "X-2026", series)
	assert.Equal(t, 123, number)
}

func TestParseSeriesNumberRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"", "AAA", "AAA-", "-0007", "AAA-007x"} {
		_, _, err := entity.ParseSeriesNumber(bad)
		assert.Error(t, err, "input %q should not parse", bad)
	}
}

func TestInvoiceStatusTransitions(t *testing.T) {
	assert.True(t, entity.StatusDraft.CanTransition(entity.StatusPublished))
	assert.True(t, entity.StatusPublished.CanTransition(entity.StatusStorno))

	// one step forward at a time, never backwards
	assert.False(t, entity.StatusDraft.CanTransition(entity.StatusStorno), "a draft was never published, it cannot be reversed")
	assert.False(t, entity.StatusPublished.CanTransition(entity.StatusDraft))
	assert.False(t, entity.StatusStorno.CanTransition(entity.StatusPublished))
	assert.False(t, entity.StatusStorno.CanTransition(entity.StatusStorno))
}

func TestInvoiceStatusString(t *testing.T) {
	assert.Equal(t, "draft", entity.StatusDraft.String())
	assert.Equal(t, "published", entity.StatusPublished.String())
	assert.Equal(t, "storno", entity.StatusStorno.String())
}
