package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPeriodDate(t *testing.T) {
	tests := []struct {
		now      time.Time
		expected string
	}{
		{time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC), "2025-06-20"},
		{time.Date(2025, time.June, 20, 23, 59, 0, 0, time.UTC), "2025-06-20"},
		{time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), "2025-12-20"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, defaultPeriodDate(tt.now))
	}
}
