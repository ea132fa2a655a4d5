package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/oliszewskirob-bit/Grafiki-automat/internal/calendar"
	"github.com/oliszewskirob-bit/Grafiki-automat/internal/domain"
)

const (
	weeklyLimitMinutes = 48 * 60

	// Nominal daily hours of a full-time employment contract, used by the
	// AUTO monthly target: fraction x workdays x this.
	employmentDailyHours = 7.5833
)

type balanceMetric string

const (
	metricNight   balanceMetric = "night"
	metricWeekend balanceMetric = "weekend"
	metric24h     balanceMetric = "shift_24h"
)

var balanceMetrics = []balanceMetric{metricNight, metricWeekend, metric24h}

func minutesFromHours(h float64) int64 {
	return int64(math.Round(h * 60))
}

// autoTargetMinutes computes the AUTO monthly target for an EMPLOYMENT
// contract with the given fraction over the given number of workdays.
func autoTargetMinutes(fraction float64, workdays int) int64 {
	return int64(math.Round(fraction * float64(workdays) * employmentDailyHours * 60))
}

// targetMinutesFor resolves the employee's monthly hour target in minutes,
// if any: the AUTO formula for EMPLOYMENT+AUTO, the explicit target
// otherwise.
func targetMinutesFor(e domain.Employee, workdays int) (int64, bool) {
	if e.Contract == domain.ContractEmployment && e.AutoTarget {
		if e.EmploymentFraction == nil {
			return 0, false
		}
		return autoTargetMinutes(*e.EmploymentFraction, workdays), true
	}
	if e.TargetHours != nil {
		return minutesFromHours(*e.TargetHours), true
	}
	return 0, false
}

// posPart returns a non-negative variable constrained by v >= expr; under a
// minimizing objective it takes the value max(0, expr).
func posPart(b *cpmodel.Builder, expr cpmodel.LinearArgument, ub int64, name string) cpmodel.IntVar {
	v := b.NewIntVar(0, ub).WithName(name)
	b.AddGreaterOrEqual(v, expr)
	return v
}

// absPart returns a non-negative variable constrained by v >= expr and
// v >= -expr; under a minimizing objective it takes the value |expr|.
func absPart(b *cpmodel.Builder, expr cpmodel.LinearArgument, ub int64, name string) cpmodel.IntVar {
	v := b.NewIntVar(0, ub).WithName(name)
	b.AddGreaterOrEqual(v, expr)
	b.AddGreaterOrEqual(v, cpmodel.NewLinearExpr().AddTerm(expr, -1))
	return v
}

// addSoftConstraints attaches the penalty objective: monthly min/max/target
// hours, the statutory weekly 48-hour cap for B2B and MANDATE contracts, and
// the per-group balance of night, weekend and 24-hour duty. Without any
// penalty term the model is left without an objective.
func addSoftConstraints(b *cpmodel.Builder, employees []domain.Employee, days []time.Time, catalog *domain.ShiftCatalog, vars map[varKey]cpmodel.BoolVar, settings domain.Settings) {
	shiftMinutes := make(map[string]int64, catalog.Len())
	var maxShiftMinutes int64
	for _, s := range catalog.All() {
		m := int64(s.DurationMinutes())
		shiftMinutes[s.Code] = m
		if m > maxShiftMinutes {
			maxShiftMinutes = m
		}
	}
	totalMax := int64(len(days)) * maxShiftMinutes
	workdays := calendar.CountWorkdays(days)

	obj := cpmodel.NewLinearExpr()
	havePenalty := false
	penalize := func(v cpmodel.IntVar, weight int64) {
		obj.AddTerm(v, weight)
		havePenalty = true
	}

	metricCounts := make(map[int]map[balanceMetric]cpmodel.IntVar, len(employees))

	for ei, e := range employees {
		total := b.NewIntVar(0, totalMax).WithName(fmt.Sprintf("minutes_e%d", ei))
		minuteExpr := cpmodel.NewLinearExpr()
		for di := range days {
			for _, code := range catalog.Codes() {
				if v, ok := vars[varKey{emp: ei, day: di, code: code}]; ok {
					minuteExpr.AddTerm(v, shiftMinutes[code])
				}
			}
		}
		b.AddEquality(total, minuteExpr)

		if e.MaxHours != nil {
			maxMin := minutesFromHours(*e.MaxHours)
			over := cpmodel.NewLinearExpr().Add(total).AddConstant(-maxMin)
			excess := posPart(b, over, totalMax, fmt.Sprintf("excess_e%d", ei))
			penalize(excess, settings.WMaxHours)
		}
		if e.MinHours != nil {
			minMin := minutesFromHours(*e.MinHours)
			under := cpmodel.NewLinearExpr().AddTerm(total, -1).AddConstant(minMin)
			shortage := posPart(b, under, minMin, fmt.Sprintf("short_e%d", ei))
			penalize(shortage, settings.WMinHours)
		}
		if target, ok := targetMinutesFor(e, workdays); ok {
			diff := cpmodel.NewLinearExpr().Add(total).AddConstant(-target)
			dev := absPart(b, diff, totalMax+target, fmt.Sprintf("dev_target_e%d", ei))
			penalize(dev, settings.WTargetHours)
		}

		if e.Contract == domain.ContractB2B || e.Contract == domain.ContractMandate {
			addWeeklyLimitPenalties(b, ei, days, catalog, shiftMinutes, vars, settings.WWeekly48h, penalize)
		}

		metricCounts[ei] = addBalanceCounts(b, ei, days, catalog, vars)
	}

	addBalancePenalties(b, employees, days, metricCounts, settings.WBalance, penalize)

	if havePenalty {
		b.Minimize(obj)
	}
}

// isoWeek identifies an ISO week-numbering year/week pair.
type isoWeek struct {
	year int
	week int
}

// addWeeklyLimitPenalties penalizes every ISO week whose assigned minutes
// exceed the 48-hour statutory cap.
func addWeeklyLimitPenalties(b *cpmodel.Builder, ei int, days []time.Time, catalog *domain.ShiftCatalog, shiftMinutes map[string]int64, vars map[varKey]cpmodel.BoolVar, weight int64, penalize func(cpmodel.IntVar, int64)) {
	var order []isoWeek
	buckets := make(map[isoWeek][]int)
	for di, day := range days {
		y, w := day.ISOWeek()
		key := isoWeek{year: y, week: w}
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], di)
	}

	var maxShift int64
	for _, m := range shiftMinutes {
		if m > maxShift {
			maxShift = m
		}
	}

	for _, key := range order {
		indices := buckets[key]
		weekMax := int64(len(indices)) * maxShift
		weekExpr := cpmodel.NewLinearExpr()
		n := 0
		for _, di := range indices {
			for _, code := range catalog.Codes() {
				if v, ok := vars[varKey{emp: ei, day: di, code: code}]; ok {
					weekExpr.AddTerm(v, shiftMinutes[code])
					n++
				}
			}
		}
		if n == 0 {
			continue
		}
		weekTotal := b.NewIntVar(0, weekMax).WithName(fmt.Sprintf("week_minutes_e%d_w%d_%d", ei, key.year, key.week))
		b.AddEquality(weekTotal, weekExpr)
		over := cpmodel.NewLinearExpr().Add(weekTotal).AddConstant(-weeklyLimitMinutes)
		excess := posPart(b, over, weekMax, fmt.Sprintf("week_excess_e%d_w%d_%d", ei, key.year, key.week))
		penalize(excess, weight)
	}
}

// addBalanceCounts defines, per metric, an integer equal to the employee's
// number of matching assignments. The weekend metric selects by the day
// (weekend or holiday) regardless of the shift's own class; night and 24h
// select by the shift.
func addBalanceCounts(b *cpmodel.Builder, ei int, days []time.Time, catalog *domain.ShiftCatalog, vars map[varKey]cpmodel.BoolVar) map[balanceMetric]cpmodel.IntVar {
	counts := make(map[balanceMetric]cpmodel.IntVar, len(balanceMetrics))
	for _, metric := range balanceMetrics {
		expr := cpmodel.NewLinearExpr()
		for di, day := range days {
			offDay := calendar.IsWeekend(day) || calendar.IsHoliday(day)
			for _, s := range catalog.All() {
				switch metric {
				case metricNight:
					if !s.IsNight() {
						continue
					}
				case metric24h:
					if !s.Is24h {
						continue
					}
				case metricWeekend:
					if !offDay {
						continue
					}
				}
				if v, ok := vars[varKey{emp: ei, day: di, code: s.Code}]; ok {
					expr.Add(v)
				}
			}
		}
		cv := b.NewIntVar(0, int64(len(days))).WithName(fmt.Sprintf("%s_count_e%d", metric, ei))
		b.AddEquality(cv, expr)
		counts[metric] = cv
	}
	return counts
}

// addBalancePenalties drives each member's metric count toward the group
// mean: for group size G and group total T, every member pays
// w_balance * |count*G - T|, which is integer arithmetic for G * |count -
// mean|.
func addBalancePenalties(b *cpmodel.Builder, employees []domain.Employee, days []time.Time, metricCounts map[int]map[balanceMetric]cpmodel.IntVar, weight int64, penalize func(cpmodel.IntVar, int64)) {
	var groupOrder []domain.Group
	members := make(map[domain.Group][]int)
	for ei, e := range employees {
		if _, seen := members[e.Group]; !seen {
			groupOrder = append(groupOrder, e.Group)
		}
		members[e.Group] = append(members[e.Group], ei)
	}

	for _, group := range groupOrder {
		indices := members[group]
		groupSize := int64(len(indices))
		totalMax := groupSize * int64(len(days))
		for _, metric := range balanceMetrics {
			totalExpr := cpmodel.NewLinearExpr()
			for _, ei := range indices {
				totalExpr.Add(metricCounts[ei][metric])
			}
			total := b.NewIntVar(0, totalMax).WithName(fmt.Sprintf("total_%s_%s", metric, group))
			b.AddEquality(total, totalExpr)

			for _, ei := range indices {
				diff := cpmodel.NewLinearExpr().
					AddTerm(metricCounts[ei][metric], groupSize).
					AddTerm(total, -1)
				dev := absPart(b, diff, totalMax*groupSize, fmt.Sprintf("dev_%s_%s_e%d", metric, group, ei))
				penalize(dev, weight)
			}
		}
	}
}
