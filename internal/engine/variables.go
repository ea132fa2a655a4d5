package engine

import (
	"fmt"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/oliszewskirob-bit/Grafiki-automat/internal/domain"
)

// varKey addresses the decision variable x[employee, day, shift].
type varKey struct {
	emp  int
	day  int
	code string
}

// buildDecisionVars creates one 0/1 variable per eligible triple and no more.
// Employees are indexed by input order and days by position in the sorted day
// list, so variable names and iteration are reproducible.
//
// TODO: WeekdayOnly employees still get weekend/holiday variables; once the
// flag is promoted to a hard rule, skip those triples here.
func buildDecisionVars(b *cpmodel.Builder, employees []domain.Employee, days []time.Time, catalog *domain.ShiftCatalog) map[varKey]cpmodel.BoolVar {
	vars := make(map[varKey]cpmodel.BoolVar)
	for ei, e := range employees {
		for di := range days {
			for _, s := range catalog.All() {
				if !Eligible(e, s) {
					continue
				}
				v := b.NewBoolVar().WithName(fmt.Sprintf("x_e%d_d%d_s%s", ei, di, s.Code))
				vars[varKey{emp: ei, day: di, code: s.Code}] = v
			}
		}
	}
	return vars
}
