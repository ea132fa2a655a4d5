package engine

import (
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/oliszewskirob-bit/Grafiki-automat/internal/domain"
)

const (
	minRestMinutes     = 11 * 60
	maxConsecutiveDays = 6
)

// addMinCoverage enforces every demand line's minimum staffing. A line with
// no eligible employee gets the constant constraint 0 >= min_staff, which
// makes the model infeasible and lets the driver point at the shortage.
func addMinCoverage(b *cpmodel.Builder, demands []domain.Demand, days []time.Time, employees []domain.Employee, vars map[varKey]cpmodel.BoolVar) {
	dayIndex := make(map[time.Time]int, len(days))
	for i, d := range days {
		dayIndex[d] = i
	}

	for _, dem := range demands {
		di := dayIndex[dem.Date]
		sum := cpmodel.NewLinearExpr()
		n := 0
		for ei := range employees {
			if v, ok := vars[varKey{emp: ei, day: di, code: dem.ShiftCode}]; ok {
				sum.Add(v)
				n++
			}
		}
		minStaff := cpmodel.NewConstant(int64(dem.MinStaff))
		if n > 0 {
			b.AddGreaterOrEqual(sum, minStaff)
		} else {
			b.AddGreaterOrEqual(cpmodel.NewConstant(0), minStaff)
		}
	}
}

// addOneShiftPerDay caps each employee at one shift per calendar day.
func addOneShiftPerDay(b *cpmodel.Builder, employees []domain.Employee, days []time.Time, catalog *domain.ShiftCatalog, vars map[varKey]cpmodel.BoolVar) {
	for ei := range employees {
		for di := range days {
			var dayVars []cpmodel.BoolVar
			for _, code := range catalog.Codes() {
				if v, ok := vars[varKey{emp: ei, day: di, code: code}]; ok {
					dayVars = append(dayVars, v)
				}
			}
			if len(dayVars) > 0 {
				b.AddAtMostOne(dayVars...)
			}
		}
	}
}

// restGapMinutes returns the rest between the end of shift a worked on dayA
// and the start of shift b worked on dayB.
func restGapMinutes(dayA, dayB time.Time, a, b domain.ShiftType) int {
	offset := int(dayB.Sub(dayA) / time.Minute)
	return offset + int(b.Start) - a.EndAbs(0)
}

// addRestConstraints forbids working a pair of shifts on consecutive days
// whenever the gap between the first shift's end and the second's start is
// below the 11-hour minimum.
func addRestConstraints(b *cpmodel.Builder, employees []domain.Employee, days []time.Time, catalog *domain.ShiftCatalog, vars map[varKey]cpmodel.BoolVar) {
	shifts := catalog.All()
	for ei := range employees {
		for di := 0; di+1 < len(days); di++ {
			for _, sa := range shifts {
				ka := varKey{emp: ei, day: di, code: sa.Code}
				va, ok := vars[ka]
				if !ok {
					continue
				}
				for _, sb := range shifts {
					kb := varKey{emp: ei, day: di + 1, code: sb.Code}
					vb, ok := vars[kb]
					if !ok {
						continue
					}
					if restGapMinutes(days[di], days[di+1], sa, sb) < minRestMinutes {
						pair := cpmodel.NewLinearExpr().Add(va).Add(vb)
						b.AddLessOrEqual(pair, cpmodel.NewConstant(1))
					}
				}
			}
		}
	}
}

// addMaxConsecutiveDays forbids more than six working days inside any window
// of seven consecutive days.
func addMaxConsecutiveDays(b *cpmodel.Builder, employees []domain.Employee, days []time.Time, catalog *domain.ShiftCatalog, vars map[varKey]cpmodel.BoolVar) {
	windowSize := maxConsecutiveDays + 1
	if len(days) < windowSize {
		return
	}
	for ei := range employees {
		for start := 0; start+windowSize <= len(days); start++ {
			sum := cpmodel.NewLinearExpr()
			n := 0
			for di := start; di < start+windowSize; di++ {
				for _, code := range catalog.Codes() {
					if v, ok := vars[varKey{emp: ei, day: di, code: code}]; ok {
						sum.Add(v)
						n++
					}
				}
			}
			if n > 0 {
				b.AddLessOrEqual(sum, cpmodel.NewConstant(maxConsecutiveDays))
			}
		}
	}
}
