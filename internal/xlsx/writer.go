package xlsx

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/oliszewskirob-bit/Grafiki-automat/internal/domain"
	"github.com/oliszewskirob-bit/Grafiki-automat/internal/reporting"
)

// Output sheet names.
const (
	SheetRoster     = "grafik"
	SheetSummary    = "podsumowanie"
	SheetViolations = "naruszenia"
)

const maxColumnWidth = 60

// Export writes the roster grid, the per-employee summary and the solve
// report into a new workbook at path.
func Export(path string, employees []domain.Employee, catalog *domain.ShiftCatalog, assignments []domain.Assignment, report string, days []time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetRoster); err != nil {
		return fmt.Errorf("preparing workbook: %w", err)
	}
	for _, name := range []string{SheetSummary, SheetViolations} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %q: %w", name, err)
		}
	}

	if err := writeRoster(f, catalog, assignments, days); err != nil {
		return err
	}
	if err := writeSummary(f, employees, catalog, assignments, days); err != nil {
		return err
	}
	if err := writeReport(f, report); err != nil {
		return err
	}

	for _, name := range []string{SheetRoster, SheetSummary, SheetViolations} {
		if err := formatSheet(f, name); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing workbook %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// writeRoster emits one row per day with a column per shift code; each cell
// lists the assigned names, sorted and comma-joined.
func writeRoster(f *excelize.File, catalog *domain.ShiftCatalog, assignments []domain.Assignment, days []time.Time) error {
	type slot struct {
		date time.Time
		code string
	}
	names := make(map[slot][]string)
	for _, a := range assignments {
		k := slot{date: a.Date, code: a.ShiftCode}
		names[k] = append(names[k], a.Name)
	}

	header := []interface{}{"data"}
	for _, code := range catalog.Codes() {
		header = append(header, code)
	}
	if err := setRow(f, SheetRoster, 1, header); err != nil {
		return err
	}

	for i, day := range days {
		row := []interface{}{day.Format("2006-01-02")}
		for _, code := range catalog.Codes() {
			assigned := append([]string(nil), names[slot{date: day, code: code}]...)
			sort.Strings(assigned)
			row = append(row, strings.Join(assigned, ", "))
		}
		if err := setRow(f, SheetRoster, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func formatOptionalHours(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func writeSummary(f *excelize.File, employees []domain.Employee, catalog *domain.ShiftCatalog, assignments []domain.Assignment, days []time.Time) error {
	header := []interface{}{
		"pracownik_id", "imie_nazwisko", "grupa", "typ_umowy",
		"godziny", "noce", "weekendy", "dyzury_24h",
		"cel_godz", "min_godz", "max_godz",
	}
	if err := setRow(f, SheetSummary, 1, header); err != nil {
		return err
	}

	for i, s := range reporting.Summarize(employees, assignments, catalog, days) {
		row := []interface{}{
			s.EmployeeID, s.Name, string(s.Group), string(s.Contract),
			s.TotalHours, s.NightCount, s.WeekendCount, s.Shift24hCount,
			formatOptionalHours(s.TargetHours), formatOptionalHours(s.MinHours), formatOptionalHours(s.MaxHours),
		}
		if err := setRow(f, SheetSummary, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeReport(f *excelize.File, report string) error {
	if err := setRow(f, SheetViolations, 1, []interface{}{"naruszenie"}); err != nil {
		return err
	}
	if report == "" {
		report = "OK"
	}
	for i, line := range strings.Split(report, "\n") {
		if err := setRow(f, SheetViolations, i+2, []interface{}{line}); err != nil {
			return err
		}
	}
	return nil
}

// formatSheet freezes the header row, switches on the auto filter and fits
// column widths to content.
func formatSheet(f *excelize.File, sheet string) error {
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	cols := 0
	widths := []int{}
	for _, row := range rows {
		for i, cell := range row {
			if i >= cols {
				cols = i + 1
				widths = append(widths, 0)
			}
			if n := len(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	lastCol, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}
	ref := fmt.Sprintf("A1:%s%d", lastCol, len(rows))
	if err := f.AutoFilter(sheet, ref, nil); err != nil {
		return err
	}

	for i, w := range widths {
		name, cerr := excelize.ColumnNumberToName(i + 1)
		if cerr != nil {
			return cerr
		}
		width := w + 2
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := f.SetColWidth(sheet, name, name, float64(width)); err != nil {
			return err
		}
	}
	return nil
}
