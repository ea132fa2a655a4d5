package domain

import (
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(employeeStructLevel, Employee{})
	return v
}

// employeeStructLevel enforces the cross-field invariants that tags cannot
// express: fraction present iff EMPLOYMENT, radiographers hold MR or TK, and
// the AUTO target only applies to EMPLOYMENT with a fraction.
func employeeStructLevel(sl validator.StructLevel) {
	e := sl.Current().Interface().(Employee)

	if e.Contract == ContractEmployment && e.EmploymentFraction == nil {
		sl.ReportError(e.EmploymentFraction, "EmploymentFraction", "employment_fraction", "required_for_employment", "")
	}
	if e.Contract != ContractEmployment && e.EmploymentFraction != nil {
		sl.ReportError(e.EmploymentFraction, "EmploymentFraction", "employment_fraction", "employment_only", "")
	}
	if e.Group == GroupRadiographer && !e.Skills.Has(SkillMR) && !e.Skills.Has(SkillTK) {
		sl.ReportError(e.Skills, "Skills", "skills", "radiographer_modality_required", "")
	}
	if e.AutoTarget && (e.Contract != ContractEmployment || e.EmploymentFraction == nil) {
		sl.ReportError(e.AutoTarget, "AutoTarget", "target_hours", "auto_requires_employment_fraction", "")
	}
}

// Validate checks the record against the domain invariants. The returned
// error, if any, is a validator.ValidationErrors and is row-addressable by
// the adapters.
func (e Employee) Validate() error {
	return validate.Struct(e)
}

// Validate checks the catalog entry against the domain invariants.
func (s ShiftType) Validate() error {
	return validate.Struct(s)
}
