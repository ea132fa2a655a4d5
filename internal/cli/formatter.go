package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/oliszewskirob-bit/Grafiki-automat/internal/domain"
	"github.com/oliszewskirob-bit/Grafiki-automat/internal/reporting"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	return table
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatBool(v bool) string {
	if v {
		return "tak"
	}
	return ""
}

func formatSkills(s domain.SkillSet) string {
	var skills []string
	for _, sk := range []domain.Skill{domain.SkillMR, domain.SkillTK, domain.SkillALL, domain.SkillZDO} {
		if s.Has(sk) {
			skills = append(skills, string(sk))
		}
	}
	return strings.Join(skills, "+")
}

func renderEmployees(w io.Writer, employees []domain.Employee) {
	table := newTable(w, []string{
		"id", "name", "group", "contract", "fraction", "skills", "24h", "weekday-only",
		"min h", "max h", "target h",
	})
	for _, e := range employees {
		target := formatOptional(e.TargetHours)
		if e.AutoTarget {
			target = "AUTO"
		}
		table.Append([]string{
			e.ID, e.Name, string(e.Group), string(e.Contract),
			formatOptional(e.EmploymentFraction), formatSkills(e.Skills),
			formatBool(e.MayWork24h), formatBool(e.WeekdayOnly),
			formatOptional(e.MinHours), formatOptional(e.MaxHours), target,
		})
	}
	table.Render()
}

func renderShifts(w io.Writer, catalog *domain.ShiftCatalog) {
	table := newTable(w, []string{"code", "group", "modality", "start", "end", "hours", "24h", "night"})
	for _, s := range catalog.All() {
		table.Append([]string{
			s.Code, string(s.Group), string(s.Modality),
			s.Start.String(), s.End.String(),
			strconv.FormatFloat(s.DurationHours, 'f', -1, 64),
			formatBool(s.Is24h), formatBool(s.IsNight()),
		})
	}
	table.Render()
}

func renderDemands(w io.Writer, demands []domain.Demand, limit int) {
	table := newTable(w, []string{"date", "shift", "min", "target", "modality", "group"})
	for i, d := range demands {
		if i == limit {
			break
		}
		table.Append([]string{
			d.Date.Format("2006-01-02"), d.ShiftCode,
			strconv.Itoa(d.MinStaff), strconv.Itoa(d.TargetStaff),
			string(d.Modality), string(d.Group),
		})
	}
	table.Render()
}

func renderSummary(w io.Writer, summaries []reporting.EmployeeSummary) {
	table := newTable(w, []string{
		"id", "name", "group", "contract", "hours", "nights", "weekends", "24h", "target h", "min h", "max h",
	})
	for _, s := range summaries {
		table.Append([]string{
			s.EmployeeID, s.Name, string(s.Group), string(s.Contract),
			fmt.Sprintf("%.2f", s.TotalHours),
			strconv.Itoa(s.NightCount), strconv.Itoa(s.WeekendCount), strconv.Itoa(s.Shift24hCount),
			formatOptional(s.TargetHours), formatOptional(s.MinHours), formatOptional(s.MaxHours),
		})
	}
	table.Render()
}
