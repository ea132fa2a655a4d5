package domain

import "time"

// Demand is one staffing line: on Date, the shift ShiftCode needs at least
// MinStaff and ideally TargetStaff employees of the given group and modality.
type Demand struct {
	Date        time.Time
	ShiftCode   string
	MinStaff    int
	TargetStaff int
	Modality    Modality
	Group       Group
}

// Assignment places one employee on one shift on one day. Assignments are
// created only by the solve driver after a feasible solve.
type Assignment struct {
	Date       time.Time
	ShiftCode  string
	EmployeeID string
	Name       string
}
