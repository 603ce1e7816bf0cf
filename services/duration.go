package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-backend/models"
)

const (
	NoExperienceData  = "No experience data available"
	UnableToCalculate = "Unable to calculate"
	LessThanOneMonth  = "Less than 1 month"
)

// TotalExperience renders the time elapsed since the earliest start date in
// experiences. The slice is scanned, not reordered, so any ordering works.
func TotalExperience(experiences []*models.Experience, now time.Time) string {
	var earliest time.Time
	found := false
	for _, exp := range experiences {
		if exp == nil {
			continue
		}
		if !found || exp.StartDate.Before(earliest) {
			earliest = exp.StartDate
			found = true
		}
	}
	if !found {
		return NoExperienceData
	}
	return FormatMonths(MonthsBetween(earliest, now))
}

// MonthsBetween counts calendar months from start to end, ignoring the day of month
func MonthsBetween(start, end time.Time) int {
	start, end = start.UTC(), end.UTC()
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}

// FormatMonths renders a month count as "N years and M months"
func FormatMonths(total int) string {
	if total <= 0 {
		return LessThanOneMonth
	}

	years, months := total/12, total%12
	var parts []string
	if years > 0 {
		parts = append(parts, pluralize(years, "year"))
	}
	if months > 0 {
		parts = append(parts, pluralize(months, "month"))
	}
	return strings.Join(parts, " and ")
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
