package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"bookline/models"
)

// SlotChecker validates requested (date, time) pairs against a shop's booking
// window and operating hours, and proposes alternatives when a request is
// rejected.
type SlotChecker struct {
	Now func() time.Time
}

func NewSlotChecker() *SlotChecker {
	return &SlotChecker{Now: time.Now}
}

// ValidateSlot checks a requested date and time against the shop policy and
// operating hours. Rules run in order and the first failure returns a
// customer-facing reason. On success the parsed moment is returned.
func (c *SlotChecker) ValidateSlot(date, timeOfDay string, policy models.ReservationPolicy, hours map[string]string) (bool, string, time.Time) {
	requested, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeOfDay, time.Local)
	if err != nil {
		return false, "Invalid date or time format", time.Time{}
	}

	now := c.Now()
	if requested.Before(now) {
		return false, "Cannot book in the past", time.Time{}
	}
	if minAt := now.Add(time.Duration(policy.MinBookingHoursAdvance) * time.Hour); requested.Before(minAt) {
		return false, fmt.Sprintf("Booking must be at least %d hour(s) in advance", policy.MinBookingHoursAdvance), time.Time{}
	}
	if maxAt := now.AddDate(0, 0, policy.MaxAdvanceBookingDays); requested.After(maxAt) {
		return false, fmt.Sprintf("Cannot book more than %d days in advance", policy.MaxAdvanceBookingDays), time.Time{}
	}

	if len(hours) > 0 {
		day := strings.ToLower(requested.Weekday().String())
		hoursStr, ok := hours[day]
		if !ok || hoursStr == "" || strings.EqualFold(hoursStr, "closed") {
			return false, fmt.Sprintf("We're closed on %s", requested.Weekday()), time.Time{}
		}
		if ok, reason := withinShopHours(requested, hoursStr); !ok {
			return false, reason, time.Time{}
		}
	}

	return true, "Valid datetime", requested
}

// withinShopHours checks the wall-clock time against an "open - close" hours
// string. A close time earlier than the open time means the shop closes after
// midnight, so the window wraps: valid iff t >= open or t <= close.
func withinShopHours(requested time.Time, hoursStr string) (bool, string) {
	openStr, closeStr, ok := splitHours(hoursStr)
	if !ok {
		return true, "" // unparsable hours never block
	}
	openMin, okOpen := parseClock(openStr)
	closeMin, okClose := parseClock(closeStr)
	if !okOpen || !okClose {
		return true, ""
	}

	t := requested.Hour()*60 + requested.Minute()
	if closeMin < openMin {
		if t >= openMin || t <= closeMin {
			return true, ""
		}
	} else if t >= openMin && t <= closeMin {
		return true, ""
	}
	return false, fmt.Sprintf("Time must be between %s and %s", openStr, closeStr)
}

func splitHours(hoursStr string) (string, string, bool) {
	parts := strings.SplitN(hoursStr, "-", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

// parseClock reads a display time like "9:00 AM" or "19:30" into minutes from
// midnight.
func parseClock(s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))

	meridiem := ""
	if strings.HasSuffix(s, "AM") {
		meridiem = "AM"
		s = strings.TrimSpace(strings.TrimSuffix(s, "AM"))
	} else if strings.HasSuffix(s, "PM") {
		meridiem = "PM"
		s = strings.TrimSpace(strings.TrimSuffix(s, "PM"))
	}

	hourStr, minuteStr, found := strings.Cut(s, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(hourStr))
	if err != nil {
		return 0, false
	}
	minute := 0
	if found {
		minute, err = strconv.Atoi(strings.TrimSpace(minuteStr))
		if err != nil {
			return 0, false
		}
	}

	switch meridiem {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// AlternativeSlots proposes up to four candidate moments near a rejected
// request: hourly slots inside the same weekday's window that are still in the
// future, then a short lookahead over coming days at a default afternoon hour,
// skipping days the shop is closed. Results are chronological.
func (c *SlotChecker) AlternativeSlots(base time.Time, hours map[string]string) []time.Time {
	var alternatives []time.Time
	now := c.Now()

	day := strings.ToLower(base.Weekday().String())
	if hoursStr, ok := hours[day]; ok && hoursStr != "" && !strings.EqualFold(hoursStr, "closed") {
		if openStr, closeStr, ok := splitHours(hoursStr); ok {
			openMin, okOpen := parseClock(openStr)
			closeMin, okClose := parseClock(closeStr)
			if okOpen && okClose {
				for h := openMin / 60; h < closeMin/60; h++ {
					slot := time.Date(base.Year(), base.Month(), base.Day(), h, 0, 0, 0, base.Location())
					if slot.After(now) {
						alternatives = append(alternatives, slot)
					}
				}
			}
		}
	}

	if len(alternatives) < 3 {
		for _, ahead := range []int{1, 2, 3, 7} {
			if len(alternatives) >= 4 {
				break
			}
			next := base.AddDate(0, 0, ahead)
			nextDay := strings.ToLower(next.Weekday().String())
			hoursStr, ok := hours[nextDay]
			if !ok || hoursStr == "" || strings.EqualFold(hoursStr, "closed") {
				continue
			}
			slot := time.Date(next.Year(), next.Month(), next.Day(), 14, 0, 0, 0, next.Location())
			if slot.After(now) {
				alternatives = append(alternatives, slot)
			}
		}
	}

	sortTimes(alternatives)
	if len(alternatives) > 4 {
		alternatives = alternatives[:4]
	}
	return alternatives
}

func sortTimes(ts []time.Time) {
	for i := 1; i < len(ts); i++ {
		for j := i; j > 0 && ts[j].Before(ts[j-1]); j-- {
			ts[j], ts[j-1] = ts[j-1], ts[j]
		}
	}
}

// FormatSlots renders alternatives as a numbered, customer-facing list.
func FormatSlots(slots []time.Time) string {
	if len(slots) == 0 {
		return "No alternative slots available."
	}
	lines := make([]string, 0, len(slots))
	for i, slot := range slots {
		lines = append(lines, fmt.Sprintf("%d. %s, %s at %s",
			i+1,
			slot.Weekday(),
			slot.Format("January 02, 2006"),
			strings.TrimPrefix(slot.Format("3:04 PM"), "0")))
	}
	return strings.Join(lines, "\n")
}
