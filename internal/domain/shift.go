package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of one calendar day in minutes.
const MinutesPerDay = 24 * 60

// TimeOfDay is a clock time expressed as minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" (seconds, if present, are ignored).
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("invalid time of day %q (want HH:MM)", raw)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", raw)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", raw)
	}
	return TimeOfDay(h*60 + m), nil
}

// String renders the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// ShiftType is a catalog entry describing one kind of shift.
type ShiftType struct {
	Code          string   `validate:"required"`
	Group         Group    `validate:"required,oneof=RADIOGRAPHER NURSE"`
	Modality      Modality `validate:"required,oneof=MR TK ZDO ALL"`
	Start         TimeOfDay
	End           TimeOfDay
	DurationHours float64 `validate:"gt=0,lte=24"`
	Is24h         bool
}

// IsNight reports whether the shift crosses midnight: its end time is not
// after its start time and it is not a 24-hour shift.
func (s ShiftType) IsNight() bool {
	return !s.Is24h && s.End <= s.Start
}

// DurationMinutes returns the shift duration rounded to whole minutes.
func (s ShiftType) DurationMinutes() int {
	return int(math.Round(s.DurationHours * 60))
}

// StartAbs returns the shift start as minutes from midnight of day 0 when the
// shift is worked on the day with the given index.
func (s ShiftType) StartAbs(dayIdx int) int {
	return dayIdx*MinutesPerDay + int(s.Start)
}

// EndAbs returns the shift end as minutes from midnight of day 0 when the
// shift is worked on the day with the given index. A 24-hour shift ends a full
// day after its start; a shift whose end is not after its start ends on the
// next day.
func (s ShiftType) EndAbs(dayIdx int) int {
	if s.Is24h {
		return dayIdx*MinutesPerDay + int(s.Start) + MinutesPerDay
	}
	end := dayIdx*MinutesPerDay + int(s.End)
	if s.End <= s.Start {
		end += MinutesPerDay
	}
	return end
}

// ErrDuplicateShiftCode is returned when a catalog entry reuses a code.
var ErrDuplicateShiftCode = errors.New("duplicate shift code")

// ShiftCatalog holds shift types keyed by code, preserving insertion order so
// that every iteration over the catalog is reproducible.
type ShiftCatalog struct {
	codes  []string
	byCode map[string]ShiftType
}

// NewShiftCatalog creates an empty catalog.
func NewShiftCatalog() *ShiftCatalog {
	return &ShiftCatalog{byCode: make(map[string]ShiftType)}
}

// Add appends a shift type to the catalog.
func (c *ShiftCatalog) Add(s ShiftType) error {
	if _, ok := c.byCode[s.Code]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateShiftCode, s.Code)
	}
	c.codes = append(c.codes, s.Code)
	c.byCode[s.Code] = s
	return nil
}

// Get looks up a shift type by code.
func (c *ShiftCatalog) Get(code string) (ShiftType, bool) {
	s, ok := c.byCode[code]
	return s, ok
}

// Codes returns the shift codes in insertion order.
func (c *ShiftCatalog) Codes() []string {
	return c.codes
}

// All returns the shift types in insertion order.
func (c *ShiftCatalog) All() []ShiftType {
	out := make([]ShiftType, 0, len(c.codes))
	for _, code := range c.codes {
		out = append(out, c.byCode[code])
	}
	return out
}

// Len returns the number of catalog entries.
func (c *ShiftCatalog) Len() int {
	return len(c.codes)
}
