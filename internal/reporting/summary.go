// Package reporting computes per-employee aggregates from an assignment
// list: worked hours, night/weekend/24-hour duty counts and the monthly hour
// frame the roster was solved against.
package reporting

import (
	"math"
	"time"

	"github.com/oliszewskirob-bit/Grafiki-automat/internal/calendar"
	"github.com/oliszewskirob-bit/Grafiki-automat/internal/domain"
)

// Nominal daily hours of a full-time employment post; the AUTO monthly
// target is fraction x workdays x this.
const employmentDailyHours = 7.5833

// EmployeeSummary is one employee's month in numbers.
type EmployeeSummary struct {
	EmployeeID string
	Name       string
	Group      domain.Group
	Contract   domain.Contract

	TotalHours    float64
	NightCount    int
	WeekendCount  int
	Shift24hCount int

	TargetHours *float64
	MinHours    *float64
	MaxHours    *float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summarize aggregates the assignments per employee, in employee input
// order. The weekend count follows the day (weekend or holiday), not the
// shift's own class.
func Summarize(employees []domain.Employee, assignments []domain.Assignment, catalog *domain.ShiftCatalog, monthDays []time.Time) []EmployeeSummary {
	workdays := calendar.CountWorkdays(monthDays)

	byEmployee := make(map[string][]domain.Assignment)
	for _, a := range assignments {
		byEmployee[a.EmployeeID] = append(byEmployee[a.EmployeeID], a)
	}

	summaries := make([]EmployeeSummary, 0, len(employees))
	for _, e := range employees {
		sum := EmployeeSummary{
			EmployeeID: e.ID,
			Name:       e.Name,
			Group:      e.Group,
			Contract:   e.Contract,
			MinHours:   e.MinHours,
			MaxHours:   e.MaxHours,
		}

		for _, a := range byEmployee[e.ID] {
			shift, ok := catalog.Get(a.ShiftCode)
			if !ok {
				continue
			}
			sum.TotalHours += shift.DurationHours
			if shift.Is24h {
				sum.Shift24hCount++
			}
			if shift.IsNight() {
				sum.NightCount++
			}
			if calendar.IsWeekend(a.Date) || calendar.IsHoliday(a.Date) {
				sum.WeekendCount++
			}
		}
		sum.TotalHours = round2(sum.TotalHours)

		if e.Contract == domain.ContractEmployment && e.AutoTarget && e.EmploymentFraction != nil {
			target := round2(*e.EmploymentFraction * float64(workdays) * employmentDailyHours)
			sum.TargetHours = &target
		} else {
			sum.TargetHours = e.TargetHours
		}

		summaries = append(summaries, sum)
	}
	return summaries
}
