package services

import (
	"testing"
	"time"

	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestFormatMonths(t *testing.T) {
	tests := []struct {
		months int
		want   string
	}{
		{-3, "Less than 1 month"},
		{0, "Less than 1 month"},
		{1, "1 month"},
		{2, "2 months"},
		{12, "1 year"},
		{14, "1 year and 2 months"},
		{13, "1 year and 1 month"},
		{24, "2 years"},
		{63, "5 years and 3 months"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMonths(tt.months), "months=%d", tt.months)
	}
}

func TestMonthsBetween_IgnoresDayOfMonth(t *testing.T) {
	assert.Equal(t, 1, MonthsBetween(date(2024, time.January, 31), date(2024, time.February, 1)))
	assert.Equal(t, 0, MonthsBetween(date(2024, time.March, 1), date(2024, time.March, 31)))
	assert.Equal(t, 14, MonthsBetween(date(2022, time.November, 15), date(2024, time.January, 2)))
}

func TestTotalExperience_UsesEarliestStartRegardlessOfOrder(t *testing.T) {
	now := date(2024, time.June, 10)
	recent := &models.Experience{Title: "Senior", StartDate: date(2023, time.January, 1)}
	oldest := &models.Experience{Title: "Junior", StartDate: date(2019, time.March, 1)}
	middle := &models.Experience{Title: "Mid", StartDate: date(2021, time.July, 1)}

	want := "5 years and 3 months"
	assert.Equal(t, want, TotalExperience([]*models.Experience{recent, middle, oldest}, now))
	assert.Equal(t, want, TotalExperience([]*models.Experience{oldest, recent, middle}, now))
	assert.Equal(t, want, TotalExperience([]*models.Experience{middle, oldest, recent}, now))
}

func TestTotalExperience_Empty(t *testing.T) {
	assert.Equal(t, NoExperienceData, TotalExperience(nil, time.Now()))
	assert.Equal(t, NoExperienceData, TotalExperience([]*models.Experience{}, time.Now()))
}

func TestTotalExperience_StartedThisMonth(t *testing.T) {
	now := date(2024, time.June, 28)
	experiences := []*models.Experience{{StartDate: date(2024, time.June, 3)}}
	assert.Equal(t, LessThanOneMonth, TotalExperience(experiences, now))
}
