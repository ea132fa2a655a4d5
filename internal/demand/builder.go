// Package demand turns a target month and the shift catalog into per-day
// staffing lines. Weekdays run the full radiographer day/night program plus
// nurse cover; weekends and holidays collapse the radiographer side to the
// single 24-hour shift.
package demand

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/oliszewskirob-bit/Grafiki-automat/internal/calendar"
	"github.com/oliszewskirob-bit/Grafiki-automat/internal/domain"
)

// ErrCatalogShape is wrapped by every "required shift category missing"
// failure, so callers can branch on the class with errors.Is.
var ErrCatalogShape = errors.New("shift catalog incomplete")

// find returns the catalog shifts matching the filters, sorted by start time
// (ties broken by code so the day/night split is reproducible).
func find(shifts []domain.ShiftType, group domain.Group, modality domain.Modality, is24h bool) []domain.ShiftType {
	var out []domain.ShiftType
	for _, s := range shifts {
		if s.Group != group || s.Is24h != is24h {
			continue
		}
		if modality != "" && s.Modality != modality {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Code < out[j].Code
	})
	return out
}

func line(day time.Time, s domain.ShiftType, min, target int) domain.Demand {
	return domain.Demand{
		Date:        day,
		ShiftCode:   s.Code,
		MinStaff:    min,
		TargetStaff: target,
		Modality:    s.Modality,
		Group:       s.Group,
	}
}

// Build emits the demand lines for every day of the month, ordered by date
// and, within a day, radiographer lines before nurse lines.
func Build(month string, catalog *domain.ShiftCatalog) ([]domain.Demand, error) {
	days, err := calendar.MonthDays(month)
	if err != nil {
		return nil, err
	}
	shifts := catalog.All()

	er24 := find(shifts, domain.GroupRadiographer, "", true)
	if len(er24) == 0 {
		return nil, fmt.Errorf("%w: no 24h radiographer shift", ErrCatalogShape)
	}
	erMR := find(shifts, domain.GroupRadiographer, domain.ModalityMR, false)
	if len(erMR) == 0 {
		return nil, fmt.Errorf("%w: no MR day shift", ErrCatalogShape)
	}
	erTK := find(shifts, domain.GroupRadiographer, domain.ModalityTK, false)
	if len(erTK) < 2 {
		return nil, fmt.Errorf("%w: need a TK day and a TK night shift", ErrCatalogShape)
	}
	nurse := find(shifts, domain.GroupNurse, domain.ModalityZDO, false)
	if len(nurse) < 2 {
		return nil, fmt.Errorf("%w: need a nurse day and a nurse night shift", ErrCatalogShape)
	}

	var demands []domain.Demand
	for _, day := range days {
		if calendar.IsWeekend(day) || calendar.IsHoliday(day) {
			demands = append(demands, line(day, er24[0], 1, 1))
		} else {
			// Earliest start is the day shift, latest the night shift.
			demands = append(demands,
				line(day, erMR[0], 1, 2),
				line(day, erTK[0], 1, 1),
				line(day, erTK[len(erTK)-1], 1, 1),
			)
		}
		demands = append(demands,
			line(day, nurse[0], 1, 1),
			line(day, nurse[len(nurse)-1], 1, 1),
		)
	}
	return demands, nil
}
