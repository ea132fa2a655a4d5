package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"

	"github.com/oliszewskirob-bit/Grafiki-automat/internal/domain"
	"github.com/oliszewskirob-bit/Grafiki-automat/pkg/logger"
)

// SolveResult is the outcome of one solve. On infeasibility Assignments is
// empty and Report carries the diagnostic text; on success Report is empty.
type SolveResult struct {
	Feasible    bool
	Assignments []domain.Assignment
	Report      string
}

// Solver drives one model build and solve per call. It holds no state across
// calls; a solve is a pure function of its inputs.
type Solver struct {
	settings domain.Settings
	log      *logger.Logger
}

// NewSolver creates a solver with the given settings.
func NewSolver(settings domain.Settings, log *logger.Logger) *Solver {
	if log == nil {
		log = logger.New("engine", "INFO")
	}
	return &Solver{settings: settings, log: log}
}

func collectDays(demands []domain.Demand) []time.Time {
	seen := make(map[time.Time]struct{})
	var days []time.Time
	for _, d := range demands {
		if _, ok := seen[d.Date]; !ok {
			seen[d.Date] = struct{}{}
			days = append(days, d.Date)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// Solve builds the model for the given inputs, runs CP-SAT and extracts the
// assignment list. Infeasibility (including an expired time limit) is a
// regular result, not an error; errors mean the model could not be built or
// the solver could not run.
func (s *Solver) Solve(employees []domain.Employee, demands []domain.Demand, catalog *domain.ShiftCatalog) (SolveResult, error) {
	if len(demands) == 0 {
		return SolveResult{Feasible: true}, nil
	}

	days := collectDays(demands)

	b := cpmodel.NewCpModelBuilder()
	vars := buildDecisionVars(b, employees, days, catalog)
	addMinCoverage(b, demands, days, employees, vars)
	addOneShiftPerDay(b, employees, days, catalog, vars)
	addRestConstraints(b, employees, days, catalog, vars)
	addMaxConsecutiveDays(b, employees, days, catalog, vars)
	addSoftConstraints(b, employees, days, catalog, vars, s.settings)

	m, err := b.Model()
	if err != nil {
		return SolveResult{}, fmt.Errorf("building CP model: %w", err)
	}
	s.log.Debug("model built",
		"employees", len(employees),
		"days", len(days),
		"demands", len(demands),
		"decision_vars", len(vars),
	)

	started := time.Now()
	var response *cmpb.CpSolverResponse
	if s.settings.MaxSolveSeconds > 0 {
		params := &sppb.SatParameters{
			MaxTimeInSeconds: proto.Float64(s.settings.MaxSolveSeconds),
		}
		response, err = cpmodel.SolveCpModelWithParameters(m, params)
	} else {
		response, err = cpmodel.SolveCpModel(m)
	}
	if err != nil {
		return SolveResult{}, fmt.Errorf("solving CP model: %w", err)
	}

	status := response.GetStatus()
	s.log.Info("solve finished",
		"status", status.String(),
		"wall", time.Since(started).Round(time.Millisecond),
	)

	if status != cmpb.CpSolverStatus_OPTIMAL && status != cmpb.CpSolverStatus_FEASIBLE {
		return SolveResult{Report: diagnoseInfeasible(demands, employees, catalog)}, nil
	}

	assignments := extractAssignments(response, demands, days, employees, vars)
	return SolveResult{Feasible: true, Assignments: assignments}, nil
}

// diagnoseInfeasible looks for the structural root cause: demand lines whose
// pool of eligible employees is already smaller than the minimum staffing.
func diagnoseInfeasible(demands []domain.Demand, employees []domain.Employee, catalog *domain.ShiftCatalog) string {
	type shortage struct {
		date  time.Time
		lines []string
	}
	byDate := make(map[time.Time]*shortage)
	var order []time.Time

	for _, dem := range demands {
		shift, ok := catalog.Get(dem.ShiftCode)
		if !ok {
			continue
		}
		available := 0
		for _, e := range employees {
			if Eligible(e, shift) {
				available++
			}
		}
		if available >= dem.MinStaff {
			continue
		}
		sh, seen := byDate[dem.Date]
		if !seen {
			sh = &shortage{date: dem.Date}
			byDate[dem.Date] = sh
			order = append(order, dem.Date)
		}
		sh.lines = append(sh.lines, fmt.Sprintf("%s: %d/%d", dem.ShiftCode, available, dem.MinStaff))
	}

	if len(order) == 0 {
		return "Model infeasible: no specific hints"
	}
	sort.Slice(order, func(i, j int) bool { return order[i].Before(order[j]) })

	lines := []string{"No eligible candidates for demand lines:"}
	for _, date := range order {
		sh := byDate[date]
		lines = append(lines, fmt.Sprintf("- %s: %s", date.Format("2006-01-02"), strings.Join(sh.lines, ", ")))
	}
	return strings.Join(lines, "\n")
}

// extractAssignments reads the solution values and emits the assignment
// list, sorted by (date, shift code, employee id) so the output is identical
// across runs for a given solver solution.
func extractAssignments(response *cmpb.CpSolverResponse, demands []domain.Demand, days []time.Time, employees []domain.Employee, vars map[varKey]cpmodel.BoolVar) []domain.Assignment {
	dayIndex := make(map[time.Time]int, len(days))
	for i, d := range days {
		dayIndex[d] = i
	}

	var assignments []domain.Assignment
	for _, dem := range demands {
		di := dayIndex[dem.Date]
		for ei, e := range employees {
			v, ok := vars[varKey{emp: ei, day: di, code: dem.ShiftCode}]
			if !ok {
				continue
			}
			if cpmodel.SolutionBooleanValue(response, v) {
				assignments = append(assignments, domain.Assignment{
					Date:       dem.Date,
					ShiftCode:  dem.ShiftCode,
					EmployeeID: e.ID,
					Name:       e.Name,
				})
			}
		}
	}

	sort.Slice(assignments, func(i, j int) bool {
		a, b := assignments[i], assignments[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.ShiftCode != b.ShiftCode {
			return a.ShiftCode < b.ShiftCode
		}
		return a.EmployeeID < b.EmployeeID
	})
	return assignments
}
