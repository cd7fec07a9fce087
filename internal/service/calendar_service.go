package service

import (
	"fmt"
	"time"
)

// Working hours of the clinic: Monday to Friday, 09:00 until (exclusive) 18:00,
// 30-minute slots, with the 12:00-13:00 lunch hour not bookable.
const (
	openingHour  = 9
	closingHour  = 18
	lunchHour    = 12
	slotMinutes  = 30
	slotsPerHour = 60 / slotMinutes
)

// CalendarService is the pure calendar policy: which dates are business days
// and which time slots exist on them before bookings are subtracted.
// It performs no I/O and is safe for concurrent use.
type CalendarService struct {
	loc *time.Location
}

func NewCalendarService(loc *time.Location) *CalendarService {
	return &CalendarService{loc: loc}
}

// Location returns the clinic timezone all dates are interpreted in.
func (s *CalendarService) Location() *time.Location {
	return s.loc
}

// ParseDate parses a YYYY-MM-DD string in the clinic timezone.
func (s *CalendarService) ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", date, s.loc)
}

// IsBusinessDay reports whether the clinic accepts appointments on the date.
func (s *CalendarService) IsBusinessDay(date time.Time) bool {
	wd := date.In(s.loc).Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// BaseSlots returns the chronological list of bookable HH:mm slots for the
// date, before any committed appointments are subtracted. Empty when the date
// is not a business day.
func (s *CalendarService) BaseSlots(date time.Time) []string {
	if !s.IsBusinessDay(date) {
		return []string{}
	}

	slots := make([]string, 0, (closingHour-openingHour-1)*slotsPerHour)
	for hour := openingHour; hour < closingHour; hour++ {
		if hour == lunchHour {
			continue
		}
		for i := 0; i < slotsPerHour; i++ {
			slots = append(slots, fmt.Sprintf("%02d:%02d", hour, i*slotMinutes))
		}
	}
	return slots
}
