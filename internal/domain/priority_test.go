package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriority_Valid(t *testing.T) {
	assert.True(t, PriorityLow.Valid())
	assert.True(t, PriorityNormal.Valid())
	assert.True(t, PriorityHigh.Valid())

	assert.False(t, MessagePriority("").Valid())
	assert.False(t, MessagePriority("urgent").Valid())
	assert.False(t, MessagePriority("HIGH").Valid())
}

func TestPriority_PolishLabel(t *testing.T) {
	cases := map[MessagePriority]string{
		PriorityLow:    "Niski",
		PriorityNormal: "Normalny",
		PriorityHigh:   "Wysoki",
	}
	for priority, label := range cases {
		assert.Equal(t, label, priority.PolishLabel())
	}
}

func TestPriority_UnknownLabelFallsBackToValue(t *testing.T) {
	assert.Equal(t, "custom", MessagePriority("custom").PolishLabel())
}
