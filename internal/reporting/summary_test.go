package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oliszewskirob-bit/Grafiki-automat/internal/calendar"
	"github.com/oliszewskirob-bit/Grafiki-automat/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func buildCatalog(t *testing.T) *domain.ShiftCatalog {
	t.Helper()
	c := domain.NewShiftCatalog()
	add := func(s domain.ShiftType) {
		require.NoError(t, c.Add(s))
	}
	add(domain.ShiftType{Code: "TKD", Group: domain.GroupRadiographer, Modality: domain.ModalityTK,
		Start: 7*60 + 30, End: 19*60 + 30, DurationHours: 12})
	add(domain.ShiftType{Code: "TKN", Group: domain.GroupRadiographer, Modality: domain.ModalityTK,
		Start: 19 * 60, End: 7 * 60, DurationHours: 12})
	add(domain.ShiftType{Code: "R24", Group: domain.GroupRadiographer, Modality: domain.ModalityALL,
		Start: 8 * 60, End: 8 * 60, DurationHours: 24, Is24h: true})
	return c
}

func TestSummarizeAggregates(t *testing.T) {
	catalog := buildCatalog(t)
	er := domain.Employee{ID: "E1", Name: "Anna Nowak", Group: domain.GroupRadiographer,
		Contract: domain.ContractB2B, Skills: domain.NewSkillSet(domain.SkillMR, domain.SkillTK),
		MaxHours: ptr(200), AccountingPeriodMonths: 1}

	days, err := calendar.MonthDays("2026-02")
	require.NoError(t, err)

	assignments := []domain.Assignment{
		{Date: calendar.Date(2026, time.February, 2), ShiftCode: "TKD", EmployeeID: "E1", Name: er.Name},
		{Date: calendar.Date(2026, time.February, 3), ShiftCode: "TKN", EmployeeID: "E1", Name: er.Name},
		{Date: calendar.Date(2026, time.February, 7), ShiftCode: "R24", EmployeeID: "E1", Name: er.Name}, // Saturday
	}

	summaries := Summarize([]domain.Employee{er}, assignments, catalog, days)
	require.Len(t, summaries, 1)
	s := summaries[0]

	assert.Equal(t, "E1", s.EmployeeID)
	assert.Equal(t, 48.0, s.TotalHours)
	assert.Equal(t, 1, s.NightCount)
	assert.Equal(t, 1, s.WeekendCount)
	assert.Equal(t, 1, s.Shift24hCount)
	require.NotNil(t, s.MaxHours)
	assert.Equal(t, 200.0, *s.MaxHours)
	assert.Nil(t, s.TargetHours)
}

func TestSummarizeAutoTarget(t *testing.T) {
	catalog := buildCatalog(t)
	nurse := domain.Employee{ID: "N1", Name: "Ewa Mazur", Group: domain.GroupNurse,
		Contract: domain.ContractEmployment, EmploymentFraction: ptr(0.5), AutoTarget: true,
		AccountingPeriodMonths: 1}

	days, err := calendar.MonthDays("2026-02")
	require.NoError(t, err)

	summaries := Summarize([]domain.Employee{nurse}, nil, catalog, days)
	require.Len(t, summaries, 1)
	require.NotNil(t, summaries[0].TargetHours)
	// 0.5 x 20 workdays x 7.5833 h.
	assert.InDelta(t, 75.83, *summaries[0].TargetHours, 0.01)
}

func TestSummarizeKeepsEmployeeOrder(t *testing.T) {
	catalog := buildCatalog(t)
	days, err := calendar.MonthDays("2026-02")
	require.NoError(t, err)

	employees := []domain.Employee{
		{ID: "B", Group: domain.GroupNurse, Contract: domain.ContractMandate},
		{ID: "A", Group: domain.GroupNurse, Contract: domain.ContractMandate},
	}
	summaries := Summarize(employees, nil, catalog, days)
	require.Len(t, summaries, 2)
	assert.Equal(t, "B", summaries[0].EmployeeID)
	assert.Equal(t, "A", summaries[1].EmployeeID)
}

func TestSummarizeWeekendCountsHoliday(t *testing.T) {
	catalog := buildCatalog(t)
	er := domain.Employee{ID: "E1", Group: domain.GroupRadiographer, Contract: domain.ContractB2B,
		Skills: domain.NewSkillSet(domain.SkillTK)}

	days, err := calendar.MonthDays("2026-01")
	require.NoError(t, err)

	// Epiphany, a Tuesday: the weekend metric follows the day.
	assignments := []domain.Assignment{
		{Date: calendar.Date(2026, time.January, 6), ShiftCode: "TKD", EmployeeID: "E1"},
	}
	summaries := Summarize([]domain.Employee{er}, assignments, catalog, days)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].WeekendCount)
	assert.Equal(t, 0, summaries[0].NightCount)
}
