// Package xlsx adapts the planning workbook to the typed domain records and
// writes the resulting roster back out. All header-alias and free-text
// tolerance lives here; the engine only ever sees canonical records.
package xlsx

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"

	"github.com/oliszewskirob-bit/Grafiki-automat/internal/domain"
)

// Workbook sheet names, as produced by the planning template.
const (
	SheetEmployees     = "pracownicy"
	SheetShifts        = "typy_zmian"
	SheetGroupSettings = "ustawienia_grup"
)

// RowIssue is one row-addressable validation failure.
type RowIssue struct {
	Row     int
	Field   string
	Message string
}

// LoadError aggregates every issue found in one sheet.
type LoadError struct {
	Sheet  string
	Issues []RowIssue
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("sheet %q has %d invalid rows", e.Sheet, len(e.Issues))
}

// Workbook is an open planning workbook.
type Workbook struct {
	f *excelize.File
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	return &Workbook{f: f}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// normalizeHeader folds a column header to its alias key: lower case with
// spaces, hyphens and underscores removed.
func normalizeHeader(s string) string {
	folded := strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, folded)
}

type sheetRows struct {
	header map[string]int
	rows   [][]string
}

func (w *Workbook) sheet(name string) (*sheetRows, error) {
	rows, err := w.f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", name, err)
	}
	if len(rows) == 0 {
		return &sheetRows{header: map[string]int{}}, nil
	}
	header := make(map[string]int, len(rows[0]))
	for i, col := range rows[0] {
		header[normalizeHeader(col)] = i
	}
	return &sheetRows{header: header, rows: rows[1:]}, nil
}

// hasColumn reports whether any alias names an existing column.
func (s *sheetRows) hasColumn(aliases ...string) bool {
	for _, a := range aliases {
		if _, ok := s.header[normalizeHeader(a)]; ok {
			return true
		}
	}
	return false
}

// cell returns the trimmed value of the first alias present in the row.
func (s *sheetRows) cell(row []string, aliases ...string) string {
	for _, a := range aliases {
		idx, ok := s.header[normalizeHeader(a)]
		if !ok || idx >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[idx]); v != "" {
			return v
		}
	}
	return ""
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseFloatCell(raw string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."), 64)
}

// autoSentinel marks a target-hours cell asking for the derived value.
const autoSentinel = "AUTO"

// optionalHours parses a numeric hours cell, leaving nil for an empty one.
func optionalHours(raw string, row int, field string, issues *[]RowIssue) *float64 {
	if raw == "" {
		return nil
	}
	v, err := parseFloatCell(raw)
	if err != nil {
		*issues = append(*issues, RowIssue{Row: row, Field: field, Message: fmt.Sprintf("not a number: %q", raw)})
		return nil
	}
	return &v
}

// validationIssues flattens validator errors into row issues.
func validationIssues(err error, row int) []RowIssue {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []RowIssue{{Row: row, Field: "record", Message: err.Error()}}
	}
	out := make([]RowIssue, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, RowIssue{Row: row, Field: fe.Field(), Message: fe.Tag()})
	}
	return out
}

// Employees loads and validates the employee sheet. The returned warnings
// note tolerated gaps (missing optional columns); a non-nil error of type
// *LoadError means at least one row was rejected.
func (w *Workbook) Employees() ([]domain.Employee, []string, error) {
	sheet, err := w.sheet(SheetEmployees)
	if err != nil {
		return nil, nil, err
	}

	groupPeriods, err := w.groupSettings()
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	if !sheet.hasColumn("moze_24h", "moze 24h", "24h", "czy 24h") {
		warnings = append(warnings, "column 'moze_24h' missing, defaulting to false")
	}
	if !sheet.hasColumn("PN-PT", "pn pt", "pnpt", "pon-pt") {
		warnings = append(warnings, "column 'PN-PT' missing, defaulting to false")
	}

	var employees []domain.Employee
	var issues []RowIssue

	for i, row := range sheet.rows {
		if rowEmpty(row) {
			continue
		}
		rowNum := i + 2 // 1-based, after the header

		e := domain.Employee{
			ID:       sheet.cell(row, "pracownik_id", "id", "pracownik id"),
			Name:     sheet.cell(row, "imie_nazwisko", "imię i nazwisko", "imie i nazwisko", "nazwisko"),
			Position: sheet.cell(row, "stanowisko", "rola"),
			Skills:   domain.NewSkillSet(),

			MayWork24h:  domain.ParseBool(sheet.cell(row, "moze_24h", "moze 24h", "24h", "czy 24h")),
			WeekdayOnly: domain.ParseBool(sheet.cell(row, "PN-PT", "pn pt", "pnpt", "pon-pt")),

			AccountingPeriodMonths: 1,
		}

		if raw := sheet.cell(row, "grupa", "group"); raw != "" {
			group, gerr := domain.NormalizeGroup(raw)
			if gerr != nil {
				issues = append(issues, RowIssue{Row: rowNum, Field: "grupa", Message: gerr.Error()})
			} else {
				e.Group = group
				if period, ok := groupPeriods[group]; ok {
					e.AccountingPeriodMonths = period
				}
			}
		}
		if raw := sheet.cell(row, "typ_umowy", "typ umowy", "umowa"); raw != "" {
			contract, cerr := domain.NormalizeContract(raw)
			if cerr != nil {
				issues = append(issues, RowIssue{Row: rowNum, Field: "typ_umowy", Message: cerr.Error()})
			} else {
				e.Contract = contract
			}
		}

		e.EmploymentFraction = optionalHours(sheet.cell(row, "etat"), rowNum, "etat", &issues)

		if domain.ParseBool(sheet.cell(row, "MR")) {
			e.Skills.Add(domain.SkillMR)
		}
		if domain.ParseBool(sheet.cell(row, "TK")) {
			e.Skills.Add(domain.SkillTK)
		}

		e.MaxWeeklyHours = optionalHours(sheet.cell(row, "max_godz_tydz", "max godz tydz", "max tyg", "max tygodniowo"), rowNum, "max_godz_tydz", &issues)
		e.MinHours = optionalHours(sheet.cell(row, "min_godz_miesiac", "min godz mies", "min"), rowNum, "min_godz_miesiac", &issues)
		e.MaxHours = optionalHours(sheet.cell(row, "max_godz_miesiac", "max godz mies", "max"), rowNum, "max_godz_miesiac", &issues)

		target := sheet.cell(row, "cel_godz_miesiac", "cel godz mies", "cel", "target")
		if strings.EqualFold(target, autoSentinel) {
			e.AutoTarget = true
		} else {
			e.TargetHours = optionalHours(target, rowNum, "cel_godz_miesiac", &issues)
		}

		e.Derive()
		if verr := e.Validate(); verr != nil {
			issues = append(issues, validationIssues(verr, rowNum)...)
			continue
		}
		employees = append(employees, e)
	}

	if len(issues) > 0 {
		return nil, warnings, &LoadError{Sheet: SheetEmployees, Issues: issues}
	}
	return employees, warnings, nil
}

// Shifts loads and validates the shift catalog, preserving sheet order.
func (w *Workbook) Shifts() (*domain.ShiftCatalog, error) {
	sheet, err := w.sheet(SheetShifts)
	if err != nil {
		return nil, err
	}

	catalog := domain.NewShiftCatalog()
	var issues []RowIssue

	for i, row := range sheet.rows {
		if rowEmpty(row) {
			continue
		}
		rowNum := i + 2

		s := domain.ShiftType{
			Code:  sheet.cell(row, "shift_code", "kod", "code"),
			Is24h: domain.ParseBool(sheet.cell(row, "czy_24h", "czy 24h", "24h")),
		}

		if raw := sheet.cell(row, "grupa", "group"); raw != "" {
			group, gerr := domain.NormalizeGroup(raw)
			if gerr != nil {
				issues = append(issues, RowIssue{Row: rowNum, Field: "grupa", Message: gerr.Error()})
			} else {
				s.Group = group
			}
		}

		if raw := sheet.cell(row, "modalnosc", "modalność", "modality"); raw != "" {
			switch m := domain.Modality(strings.ToUpper(raw)); m {
			case domain.ModalityMR, domain.ModalityTK, domain.ModalityZDO, domain.ModalityALL:
				s.Modality = m
			default:
				issues = append(issues, RowIssue{Row: rowNum, Field: "modalnosc", Message: fmt.Sprintf("unknown modality %q", raw)})
			}
		}

		if raw := sheet.cell(row, "start"); raw != "" {
			start, terr := domain.ParseTimeOfDay(raw)
			if terr != nil {
				issues = append(issues, RowIssue{Row: rowNum, Field: "start", Message: terr.Error()})
			} else {
				s.Start = start
			}
		}
		if raw := sheet.cell(row, "koniec", "end"); raw != "" {
			end, terr := domain.ParseTimeOfDay(raw)
			if terr != nil {
				issues = append(issues, RowIssue{Row: rowNum, Field: "koniec", Message: terr.Error()})
			} else {
				s.End = end
			}
		}
		if raw := sheet.cell(row, "czas_h", "czas h", "duration"); raw != "" {
			hours, herr := parseFloatCell(raw)
			if herr != nil {
				issues = append(issues, RowIssue{Row: rowNum, Field: "czas_h", Message: herr.Error()})
			} else {
				s.DurationHours = hours
			}
		}

		if verr := s.Validate(); verr != nil {
			issues = append(issues, validationIssues(verr, rowNum)...)
			continue
		}
		if aerr := catalog.Add(s); aerr != nil {
			issues = append(issues, RowIssue{Row: rowNum, Field: "shift_code", Message: aerr.Error()})
		}
	}

	if len(issues) > 0 {
		return nil, &LoadError{Sheet: SheetShifts, Issues: issues}
	}
	return catalog, nil
}

// groupSettings reads the optional per-group accounting period sheet.
func (w *Workbook) groupSettings() (map[domain.Group]int, error) {
	if idx, err := w.f.GetSheetIndex(SheetGroupSettings); err != nil || idx < 0 {
		return nil, nil
	}
	sheet, err := w.sheet(SheetGroupSettings)
	if err != nil {
		return nil, err
	}

	periods := make(map[domain.Group]int)
	for _, row := range sheet.rows {
		if rowEmpty(row) {
			continue
		}
		group, gerr := domain.NormalizeGroup(sheet.cell(row, "grupa", "group"))
		if gerr != nil {
			continue
		}
		raw := sheet.cell(row, "okres_rozliczeniowy_mies", "okres rozliczeniowy", "okres")
		months, perr := strconv.Atoi(strings.TrimSpace(raw))
		if perr != nil || months < 1 {
			continue
		}
		periods[group] = months
	}
	return periods, nil
}
