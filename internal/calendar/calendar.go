// Package calendar provides Gregorian month expansion and the Polish public
// holiday calendar used when sizing staffing demand.
package calendar

import (
	"fmt"
	"time"
)

// Date returns the given date normalized to midnight UTC. All dates handled by
// the engine are day-granular and compared by this normal form.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MonthDays expands a month given as "YYYY-MM" into its days, first to last.
func MonthDays(ym string) ([]time.Time, error) {
	first, err := time.ParseInLocation("2006-01", ym, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q (want YYYY-MM): %w", ym, err)
	}
	next := first.AddDate(0, 1, 0)

	var days []time.Time
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsHoliday reports whether the date is a Polish public holiday.
func IsHoliday(d time.Time) bool {
	_, ok := Holidays(d.Year())[Date(d.Year(), d.Month(), d.Day())]
	return ok
}

// IsWorkday reports whether the date is neither a weekend nor a holiday.
func IsWorkday(d time.Time) bool {
	return !IsWeekend(d) && !IsHoliday(d)
}

// CountWorkdays counts the workdays among the given days.
func CountWorkdays(days []time.Time) int {
	n := 0
	for _, d := range days {
		if IsWorkday(d) {
			n++
		}
	}
	return n
}

// Holidays returns the Polish public holidays of the given year, keyed by
// midnight-UTC date: nine fixed dates plus the four Easter-derived feasts.
func Holidays(year int) map[time.Time]struct{} {
	holidays := map[time.Time]struct{}{
		Date(year, time.January, 1):   {}, // New Year
		Date(year, time.January, 6):   {}, // Epiphany
		Date(year, time.May, 1):       {}, // Labour Day
		Date(year, time.May, 3):       {}, // Constitution Day
		Date(year, time.August, 15):   {}, // Assumption
		Date(year, time.November, 1):  {}, // All Saints
		Date(year, time.November, 11): {}, // Independence Day
		Date(year, time.December, 25): {}, // Christmas Day
		Date(year, time.December, 26): {}, // Second Christmas Day
	}

	easter := EasterSunday(year)
	holidays[easter] = struct{}{}
	holidays[easter.AddDate(0, 0, 1)] = struct{}{}  // Easter Monday
	holidays[easter.AddDate(0, 0, 49)] = struct{}{} // Pentecost
	holidays[easter.AddDate(0, 0, 60)] = struct{}{} // Corpus Christi

	return holidays
}

// EasterSunday computes Easter Sunday for the given year with the Anonymous
// Gregorian algorithm.
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return Date(year, time.Month(month), day)
}
