package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oliszewskirob-bit/Grafiki-automat/internal/calendar"
	"github.com/oliszewskirob-bit/Grafiki-automat/internal/demand"
	"github.com/oliszewskirob-bit/Grafiki-automat/internal/domain"
)

func testCatalog(t *testing.T) *domain.ShiftCatalog {
	t.Helper()
	c := domain.NewShiftCatalog()
	add := func(s domain.ShiftType) {
		require.NoError(t, c.Add(s))
	}
	add(domain.ShiftType{Code: "MRD", Group: domain.GroupRadiographer, Modality: domain.ModalityMR,
		Start: 8 * 60, End: 18 * 60, DurationHours: 10})
	add(domain.ShiftType{Code: "TKD", Group: domain.GroupRadiographer, Modality: domain.ModalityTK,
		Start: 7*60 + 30, End: 19*60 + 30, DurationHours: 12})
	add(domain.ShiftType{Code: "TKN", Group: domain.GroupRadiographer, Modality: domain.ModalityTK,
		Start: 19 * 60, End: 7 * 60, DurationHours: 12})
	add(domain.ShiftType{Code: "R24", Group: domain.GroupRadiographer, Modality: domain.ModalityALL,
		Start: 8 * 60, End: 8 * 60, DurationHours: 24, Is24h: true})
	add(domain.ShiftType{Code: "PD", Group: domain.GroupNurse, Modality: domain.ModalityZDO,
		Start: 7 * 60, End: 19 * 60, DurationHours: 12})
	add(domain.ShiftType{Code: "PN", Group: domain.GroupNurse, Modality: domain.ModalityZDO,
		Start: 19 * 60, End: 7 * 60, DurationHours: 12})
	return c
}

func fullRadiographer(id, name string) domain.Employee {
	e := domain.Employee{
		ID:                     id,
		Name:                   name,
		Group:                  domain.GroupRadiographer,
		Contract:               domain.ContractB2B,
		Skills:                 domain.NewSkillSet(domain.SkillMR, domain.SkillTK),
		MayWork24h:             true,
		AccountingPeriodMonths: 1,
	}
	e.Derive()
	return e
}

func testNurse(id, name string) domain.Employee {
	e := domain.Employee{
		ID:                     id,
		Name:                   name,
		Group:                  domain.GroupNurse,
		Contract:               domain.ContractMandate,
		AccountingPeriodMonths: 1,
	}
	e.Derive()
	return e
}

func newTestSolver() *Solver {
	return NewSolver(domain.DefaultSettings(), nil)
}

// S1: no demand lines means a trivially feasible, empty roster.
func TestSolveEmptyDemands(t *testing.T) {
	res, err := newTestSolver().Solve(nil, nil, domain.NewShiftCatalog())
	require.NoError(t, err)
	assert.True(t, res.Feasible)
	assert.Empty(t, res.Assignments)
	assert.Empty(t, res.Report)
}

// checkUniversalInvariants asserts the properties every feasible roster must
// satisfy: eligibility, one shift per day, coverage, 11h rest, and the six
// working days per seven-day-window cap.
func checkUniversalInvariants(t *testing.T, res SolveResult, employees []domain.Employee, demands []domain.Demand, catalog *domain.ShiftCatalog) {
	t.Helper()
	byID := make(map[string]domain.Employee)
	for _, e := range employees {
		byID[e.ID] = e
	}

	perDay := make(map[string]map[time.Time]string)
	covered := make(map[time.Time]map[string]int)
	for _, a := range res.Assignments {
		e, ok := byID[a.EmployeeID]
		require.True(t, ok, "assignment for unknown employee %s", a.EmployeeID)
		s, ok := catalog.Get(a.ShiftCode)
		require.True(t, ok, "assignment for unknown shift %s", a.ShiftCode)
		assert.True(t, Eligible(e, s), "%s not eligible for %s", a.EmployeeID, a.ShiftCode)

		if perDay[a.EmployeeID] == nil {
			perDay[a.EmployeeID] = make(map[time.Time]string)
		}
		prev, dup := perDay[a.EmployeeID][a.Date]
		assert.False(t, dup, "%s works both %s and %s on %s", a.EmployeeID, prev, a.ShiftCode, a.Date.Format("2006-01-02"))
		perDay[a.EmployeeID][a.Date] = a.ShiftCode

		if covered[a.Date] == nil {
			covered[a.Date] = make(map[string]int)
		}
		covered[a.Date][a.ShiftCode]++
	}

	for _, dem := range demands {
		assert.GreaterOrEqual(t, covered[dem.Date][dem.ShiftCode], dem.MinStaff,
			"demand %s %s under-covered", dem.Date.Format("2006-01-02"), dem.ShiftCode)
	}

	for id, daysWorked := range perDay {
		for day, codeA := range daysWorked {
			next := day.AddDate(0, 0, 1)
			codeB, ok := daysWorked[next]
			if !ok {
				continue
			}
			sa, _ := catalog.Get(codeA)
			sb, _ := catalog.Get(codeB)
			assert.GreaterOrEqual(t, restGapMinutes(day, next, sa, sb), minRestMinutes,
				"%s: rest violated between %s on %s and %s", id, codeA, day.Format("2006-01-02"), codeB)
		}

		for day := range daysWorked {
			worked := 0
			for off := 0; off < 7; off++ {
				if _, ok := daysWorked[day.AddDate(0, 0, off)]; ok {
					worked++
				}
			}
			assert.LessOrEqual(t, worked, 6, "%s works more than 6 days in the window from %s", id, day.Format("2006-01-02"))
		}
	}
}

// S2: a staffed month solves, weekend radiographer cover comes from the 24h
// shift only, and the invariants hold.
func TestSolveFebruary2026(t *testing.T) {
	catalog := testCatalog(t)
	employees := []domain.Employee{
		fullRadiographer("E1", "Anna Nowak"),
		fullRadiographer("E2", "Jan Kowalski"),
		fullRadiographer("E3", "Maria Wozniak"),
		testNurse("N1", "Ewa Mazur"),
		testNurse("N2", "Piotr Zielinski"),
		testNurse("N3", "Hanna Lis"),
	}
	demands, err := demand.Build("2026-02", catalog)
	require.NoError(t, err)

	res, err := newTestSolver().Solve(employees, demands, catalog)
	require.NoError(t, err)
	require.True(t, res.Feasible, "report: %s", res.Report)

	checkUniversalInvariants(t, res, employees, demands, catalog)

	offDays := 0
	r24Covered := make(map[time.Time]bool)
	for _, a := range res.Assignments {
		if a.ShiftCode == "R24" {
			assert.True(t, calendar.IsWeekend(a.Date) || calendar.IsHoliday(a.Date),
				"24h duty on workday %s", a.Date.Format("2006-01-02"))
			r24Covered[a.Date] = true
		}
	}
	days, err := calendar.MonthDays("2026-02")
	require.NoError(t, err)
	for _, d := range days {
		if calendar.IsWeekend(d) || calendar.IsHoliday(d) {
			offDays++
			assert.True(t, r24Covered[d], "no 24h duty on %s", d.Format("2006-01-02"))
		}
	}
	assert.Equal(t, 8, offDays)
}

// Determinism: identical inputs give identical assignment lists.
func TestSolveDeterministic(t *testing.T) {
	catalog := testCatalog(t)
	employees := []domain.Employee{
		fullRadiographer("E1", "Anna Nowak"),
		fullRadiographer("E2", "Jan Kowalski"),
		fullRadiographer("E3", "Maria Wozniak"),
		testNurse("N1", "Ewa Mazur"),
		testNurse("N2", "Piotr Zielinski"),
		testNurse("N3", "Hanna Lis"),
	}
	demands, err := demand.Build("2026-02", catalog)
	require.NoError(t, err)

	first, err := newTestSolver().Solve(employees, demands, catalog)
	require.NoError(t, err)
	second, err := newTestSolver().Solve(employees, demands, catalog)
	require.NoError(t, err)

	assert.Equal(t, first.Feasible, second.Feasible)
	assert.Equal(t, first.Assignments, second.Assignments)
}

// S3: without any 24h-qualified radiographer every weekend line is short and
// the report names each date.
func TestSolveInfeasibleReportsShortage(t *testing.T) {
	catalog := testCatalog(t)
	er := fullRadiographer("E1", "Anna Nowak")
	er.MayWork24h = false
	employees := []domain.Employee{er, testNurse("N1", "Ewa Mazur"), testNurse("N2", "Piotr Zielinski")}

	demands, err := demand.Build("2026-02", catalog)
	require.NoError(t, err)

	res, err := newTestSolver().Solve(employees, demands, catalog)
	require.NoError(t, err)
	assert.False(t, res.Feasible)
	assert.Empty(t, res.Assignments)
	assert.Contains(t, res.Report, "No eligible candidates for demand lines:")
	assert.Contains(t, res.Report, "- 2026-02-01: R24: 0/1")
	assert.Contains(t, res.Report, "- 2026-02-28: R24: 0/1")
}

// S5: two identical nurses over 28 night lines split them evenly.
func TestSolveBalancesNights(t *testing.T) {
	catalog := testCatalog(t)
	employees := []domain.Employee{testNurse("N1", "Ewa Mazur"), testNurse("N2", "Piotr Zielinski")}

	days, err := calendar.MonthDays("2026-02")
	require.NoError(t, err)
	var demands []domain.Demand
	for _, d := range days {
		demands = append(demands, domain.Demand{
			Date: d, ShiftCode: "PN", MinStaff: 1, TargetStaff: 1,
			Modality: domain.ModalityZDO, Group: domain.GroupNurse,
		})
	}

	res, err := newTestSolver().Solve(employees, demands, catalog)
	require.NoError(t, err)
	require.True(t, res.Feasible, "report: %s", res.Report)

	counts := map[string]int{}
	for _, a := range res.Assignments {
		counts[a.EmployeeID]++
	}
	diff := counts["N1"] - counts["N2"]
	if diff < 0 {
		diff = -diff
	}
	assert.LessOrEqual(t, diff, 1, "night counts %v", counts)
}

// S4: the 30-minute gap between TK night end and TK day start forbids that
// sequence across midnight.
func TestSolveRespectsRestRule(t *testing.T) {
	catalog := testCatalog(t)
	employees := []domain.Employee{
		fullRadiographer("E1", "Anna Nowak"),
		fullRadiographer("E2", "Jan Kowalski"),
		fullRadiographer("E3", "Maria Wozniak"),
		testNurse("N1", "Ewa Mazur"),
		testNurse("N2", "Piotr Zielinski"),
		testNurse("N3", "Hanna Lis"),
	}
	demands, err := demand.Build("2026-02", catalog)
	require.NoError(t, err)

	res, err := newTestSolver().Solve(employees, demands, catalog)
	require.NoError(t, err)
	require.True(t, res.Feasible, "report: %s", res.Report)

	onShift := make(map[string]map[time.Time]string)
	for _, a := range res.Assignments {
		if onShift[a.EmployeeID] == nil {
			onShift[a.EmployeeID] = make(map[time.Time]string)
		}
		onShift[a.EmployeeID][a.Date] = a.ShiftCode
	}
	for id, byDay := range onShift {
		for day, code := range byDay {
			if code != "TKN" {
				continue
			}
			next := byDay[day.AddDate(0, 0, 1)]
			assert.NotEqual(t, "TKD", next, "%s works TKD right after TKN ending %s",
				id, day.AddDate(0, 0, 1).Format("2006-01-02"))
		}
	}
}

func TestDiagnoseInfeasibleFallback(t *testing.T) {
	catalog := testCatalog(t)
	// The pool is eligible for everything, so no structural shortage exists.
	employees := []domain.Employee{fullRadiographer("E1", "Anna Nowak")}
	demands := []domain.Demand{{
		Date: calendar.Date(2026, time.February, 2), ShiftCode: "TKD",
		MinStaff: 1, TargetStaff: 1, Modality: domain.ModalityTK, Group: domain.GroupRadiographer,
	}}

	report := diagnoseInfeasible(demands, employees, catalog)
	assert.Equal(t, "Model infeasible: no specific hints", report)
}

func TestDiagnoseInfeasibleGroupsByDate(t *testing.T) {
	catalog := testCatalog(t)
	demands := []domain.Demand{
		{Date: calendar.Date(2026, time.February, 8), ShiftCode: "R24", MinStaff: 1},
		{Date: calendar.Date(2026, time.February, 1), ShiftCode: "R24", MinStaff: 1},
		{Date: calendar.Date(2026, time.February, 1), ShiftCode: "PN", MinStaff: 1},
	}

	report := diagnoseInfeasible(demands, nil, catalog)
	lines := strings.Split(report, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "No eligible candidates for demand lines:", lines[0])
	assert.Equal(t, "- 2026-02-01: R24: 0/1, PN: 0/1", lines[1])
	assert.Equal(t, "- 2026-02-08: R24: 0/1", lines[2])
}
