package budget

import (
	"math"
	"time"
)

// Alert tiers derived from the spending-to-limit percentage.
const (
	AlertSafe     = "safe"
	AlertWarning  = "warning"
	AlertCritical = "critical"
)

// Status is the budget snapshot returned by the budget endpoints.
type Status struct {
	MonthlyLimit    float64 `json:"monthly_limit"`
	CurrentSpending float64 `json:"current_spending"`
	Percentage      float64 `json:"percentage"`
	AlertStatus     string  `json:"alert_status"`
}

// Compute derives the budget status from a monthly limit and the spending
// accumulated since the start of the current calendar month. A zero or
// unset limit never alerts and reports a zero percentage.
func Compute(limit, spending float64) Status {
	percentage := 0.0
	if limit > 0 {
		percentage = spending / limit * 100
	}
	percentage = math.Round(percentage*100) / 100

	alert := AlertSafe
	if limit > 0 {
		if percentage >= 100 {
			alert = AlertCritical
		} else if percentage >= 80 {
			alert = AlertWarning
		}
	}

	return Status{
		MonthlyLimit:    limit,
		CurrentSpending: spending,
		Percentage:      percentage,
		AlertStatus:     alert,
	}
}

// StartOfMonth truncates now to the first day of its calendar month at
// 00:00:00. This is calendar-aware, unlike the rolling expense list filters.
func StartOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
