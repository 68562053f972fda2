package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoklk/ProjectTracker/internal/model"
)

func TestEstimateAlreadyComplete(t *testing.T) {
	today := day(2026, 8, 29)

	est := Estimate(0, model.EfficiencyStats{AvgEfficiency: 2, AvgHoursPerDay: 3}, today)

	require.NotNil(t, est.RequiredHours)
	assert.Equal(t, 0.0, *est.RequiredHours)
	require.NotNil(t, est.CompletionDate)
	assert.True(t, est.CompletionDate.Equal(today))
}

func TestEstimateNoHistory(t *testing.T) {
	est := Estimate(10, model.EfficiencyStats{}, day(2026, 8, 29))

	assert.Nil(t, est.RequiredHours)
	assert.Nil(t, est.CompletionDate)
}

func TestEstimateHoursWithoutCadence(t *testing.T) {
	// efficiency known but all work fell on a single day span with no
	// cadence: hours can be projected, a date cannot
	est := Estimate(10, model.EfficiencyStats{AvgEfficiency: 2.0}, day(2026, 8, 29))

	require.NotNil(t, est.RequiredHours)
	assert.Equal(t, 5.0, *est.RequiredHours)
	assert.Nil(t, est.CompletionDate)
}

func TestEstimateFullProjection(t *testing.T) {
	today := day(2026, 8, 29)
	stats := model.EfficiencyStats{AvgEfficiency: 2.0, AvgHoursPerDay: 4.0}

	// 20 units / 2 per hour = 10 hours; 10h / 4h per day = 2.5 days,
	// truncated to 2
	est := Estimate(20, stats, today)

	require.NotNil(t, est.RequiredHours)
	assert.Equal(t, 10.0, *est.RequiredHours)
	require.NotNil(t, est.CompletionDate)
	assert.True(t, est.CompletionDate.Equal(day(2026, 8, 31)))
}

func TestEstimateNegativeRemainingTreatedAsComplete(t *testing.T) {
	est := Estimate(-5, model.EfficiencyStats{AvgEfficiency: 1}, day(2026, 8, 29))

	require.NotNil(t, est.RequiredHours)
	assert.Equal(t, 0.0, *est.RequiredHours)
}
