package utils

import (
	"math"
	"strings"
	"time"

	"carrental-backend/internal/domain"
)

const (
	dateLayout   = "2006-01-02"
	daysPerWeek  = 7
	daysPerMonth = 30

	weeklyDiscount  = 0.81
	monthlyDiscount = 0.65
)

// ParseDate converts a yyyy-mm-dd string into a UTC calendar date
func ParseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, &domain.ValidationError{Field: field, Message: "pick start and end dates"}
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: field, Message: "invalid date, expected yyyy-mm-dd"}
	}
	return t, nil
}

// RentalDays counts whole days between start and end, never less than one
func RentalDays(start, end time.Time) int {
	days := int(math.Round(end.Sub(start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// EffectiveRate returns the per-unit price of a plan derived from the daily rate.
// Weekly and monthly units carry the bulk discount.
func EffectiveRate(rate int64, plan domain.Plan) int64 {
	switch plan {
	case domain.PlanWeekly:
		return int64(math.Round(float64(rate) * daysPerWeek * weeklyDiscount))
	case domain.PlanMonthly:
		return int64(math.Round(float64(rate) * daysPerMonth * monthlyDiscount))
	default:
		return rate
	}
}

// ComputeTotal prices a plan over the span between two yyyy-mm-dd dates
func ComputeTotal(rate int64, plan domain.Plan, startDate, endDate string) (domain.Quote, error) {
	if !plan.Valid() {
		return domain.Quote{}, &domain.ValidationError{Field: "plan", Message: "select a daily, weekly or monthly plan"}
	}
	if rate < 0 {
		return domain.Quote{}, &domain.ValidationError{Field: "rate", Message: "rate must not be negative"}
	}

	start, err := ParseDate("start", startDate)
	if err != nil {
		return domain.Quote{}, err
	}
	end, err := ParseDate("end", endDate)
	if err != nil {
		return domain.Quote{}, err
	}
	if end.Before(start) {
		return domain.Quote{}, &domain.ValidationError{Field: "end", Message: "end date must be after start date"}
	}

	days := RentalDays(start, end)
	eff := EffectiveRate(rate, plan)

	var units int64
	switch plan {
	case domain.PlanWeekly:
		units = ceilDiv(days, daysPerWeek)
	case domain.PlanMonthly:
		units = ceilDiv(days, daysPerMonth)
	default:
		units = int64(days)
	}

	return domain.Quote{Days: days, Total: eff * units}, nil
}

func ceilDiv(n, d int) int64 {
	return int64((n + d - 1) / d)
}
