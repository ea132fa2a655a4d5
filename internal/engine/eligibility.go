// Package engine builds and solves the CP-SAT roster model: one Boolean
// decision variable per eligible (employee, day, shift) triple, hard staffing
// and labor-law constraints, and a weighted soft-penalty objective.
package engine

import (
	"github.com/oliszewskirob-bit/Grafiki-automat/internal/domain"
)

// Eligible reports whether the employee may work the shift at all: same
// group, 24-hour qualification when needed, and the shift's modality covered
// by the employee's skills.
func Eligible(e domain.Employee, s domain.ShiftType) bool {
	if e.Group != s.Group {
		return false
	}
	if s.Is24h && !e.MayWork24h {
		return false
	}
	switch s.Modality {
	case domain.ModalityMR:
		return e.Skills.Has(domain.SkillMR)
	case domain.ModalityTK:
		return e.Skills.Has(domain.SkillTK)
	case domain.ModalityZDO:
		return e.Skills.Has(domain.SkillZDO)
	case domain.ModalityALL:
		return e.Group == domain.GroupRadiographer
	}
	return false
}
