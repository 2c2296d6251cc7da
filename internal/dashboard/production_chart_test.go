package dashboard

import (
	"testing"
	"time"

	"textile-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWindow(t *testing.T) {
	now := time.Date(2024, 5, 15, 13, 0, 0, 0, time.UTC) // Wednesday

	start, end := Window(PeriodDaily, 7, now)
	require.Equal(t, at(2024, 5, 9), start)
	require.Equal(t, at(2024, 5, 15), end)

	start, end = Window(PeriodWeekly, 2, now)
	require.Equal(t, at(2024, 5, 6), start)
	require.Equal(t, at(2024, 5, 19), end)

	start, end = Window(PeriodMonthly, 3, now)
	require.Equal(t, at(2024, 3, 1), start)
	require.Equal(t, at(2024, 5, 31), end)
}

func TestBuildChart_DailyZeroFilled(t *testing.T) {
	now := time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)
	entries := []models.QualityEntry{
		{Date: at(2024, 5, 13), Subtotal: 15},
		{Date: at(2024, 5, 13), Subtotal: 25},
		{Date: at(2024, 5, 15), Subtotal: 2.5},
		{Date: at(2024, 4, 1), Subtotal: 1000},
	}

	chart := BuildChart(entries, PeriodDaily, 3, now)
	require.Equal(t, "2024-05-13", chart.From)
	require.Equal(t, "2024-05-15", chart.To)
	require.Equal(t, []ChartPoint{
		{Label: "2024-05-13", Entries: 2, Total: 40},
		{Label: "2024-05-14"},
		{Label: "2024-05-15", Entries: 1, Total: 2.5},
	}, chart.Points)
	require.Equal(t, 42.5, chart.GrandTotal)
}

func TestBuildChart_Monthly(t *testing.T) {
	now := time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)
	chart := BuildChart([]models.QualityEntry{
		{Date: at(2024, 4, 30), Subtotal: 10},
		{Date: at(2024, 5, 1), Subtotal: 5},
	}, PeriodMonthly, 2, now)

	require.Len(t, chart.Points, 2)
	require.Equal(t, 10.0, chart.Points[0].Total)
	require.Equal(t, 5.0, chart.Points[1].Total)
}
