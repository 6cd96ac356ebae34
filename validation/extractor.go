package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bookline/models"
)

// Extractor pulls reservation fields out of free-form customer messages with
// ordered heuristic rules. It is a pure function of the message text; fields
// it cannot resolve are simply left empty so the agent asks for them.
type Extractor struct {
	MaxPartySize int
	Now          func() time.Time
}

func NewExtractor(maxPartySize int) *Extractor {
	if maxPartySize <= 0 {
		maxPartySize = 20
	}
	return &Extractor{MaxPartySize: maxPartySize, Now: time.Now}
}

// servicePatterns maps a keyword regex to a service label. First match wins.
var servicePatterns = []struct {
	pattern *regexp.Regexp
	service string
}{
	{regexp.MustCompile(`haircut|hair cut`), "Haircut"},
	{regexp.MustCompile(`beard|trim|shape`), "Beard Trim & Shape"},
	{regexp.MustCompile(`shave`), "Traditional Shave"},
	{regexp.MustCompile(`color|coloring`), "Hair Coloring"},
	{regexp.MustCompile(`treatment|keratin`), "Keratin Treatment"},
	{regexp.MustCompile(`classic`), "Classic Haircut"},
	{regexp.MustCompile(`massage`), "Massage"},
	{regexp.MustCompile(`dinner|dining`), "Dinner Reservation"},
	{regexp.MustCompile(`brunch`), "Weekend Brunch"},
	{regexp.MustCompile(`private|room`), "Private Dining Room"},
	{regexp.MustCompile(`appointment|booking|reservation`), "General Service"},
}

// soloPatterns definitely mean a party of one and override everything else.
var soloPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\balone\b`),
	regexp.MustCompile(`\bsolo\b`),
	regexp.MustCompile(`\bjust me\b`),
	regexp.MustCompile(`\bonly me\b`),
	regexp.MustCompile(`\bmyself\b`),
	regexp.MustCompile(`\bjust for me\b`),
	regexp.MustCompile(`\bsingle\b`),
	regexp.MustCompile(`\bone person\b`),
	regexp.MustCompile(`\bby myself\b`),
	regexp.MustCompile(`\bon my own\b`),
}

// "for me" counts as solo unless followed by "and"; "one" counts unless
// followed by more/other/extra. Go regexps have no lookahead, so the
// exceptions are matched separately.
var (
	forMeRe       = regexp.MustCompile(`\bfor me\b`)
	forMeAndRe    = regexp.MustCompile(`\bfor me\s+and\b`)
	bareOneRe     = regexp.MustCompile(`\bone\b`)
	oneFollowedRe = regexp.MustCompile(`\bone\s+(?:more|other|extra)\b`)
)

var partyContextWords = []string{
	"people", "persons", "guests", "person", "adults", "kids",
	"children", "group", "party", "size", "for", "of", "with",
}

// relationshipSizes maps a mentioned relationship to a baseline party size.
// Repeat mentions of the same word bump the count by one each.
var relationshipSizes = []struct {
	word string
	size int
}{
	{"brother", 2}, {"sister", 2}, {"friend", 2}, {"friends", 2},
	{"partner", 2}, {"wife", 2}, {"husband", 2}, {"child", 2},
	{"children", 2}, {"kids", 2}, {"family", 3}, {"parents", 3},
	{"colleague", 2}, {"co-worker", 2}, {"cousin", 2},
	{"mom", 2}, {"dad", 2}, {"mother", 2}, {"father", 2},
}

var groupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bboth\b`),
	regexp.MustCompile(`\btogether\b`),
	regexp.MustCompile(`\bwe are\b`),
	regexp.MustCompile(`\bwe're\b`),
	regexp.MustCompile(`\bus\b`),
	regexp.MustCompile(`\ball of us\b`),
	regexp.MustCompile(`\beveryone\b`),
}

var (
	numberRe       = regexp.MustCompile(`\b(\d+)\b`)
	numericDateRe  = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)
	monthDateRe    = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+(\d{4})\b`)
	clockColonRe   = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*(am|pm)?\b`)
	clockMeridemRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(am|pm)\b`)
	clockOClockRe  = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:o'clock|oclock|clock)\b`)
)

var monthNumbers = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Extract parses a customer message into partial reservation fields.
func (e *Extractor) Extract(message string) models.ReservationDraft {
	var out models.ReservationDraft
	lower := strings.ToLower(strings.TrimSpace(message))

	e.extractServiceType(lower, &out)
	e.extractPartySize(lower, &out)
	e.extractDate(lower, message, &out)
	e.extractTime(message, &out)

	// "tonight" implies an evening default when no explicit time was given.
	if out.Time == "" && (strings.Contains(lower, "tonight") || strings.Contains(lower, "this evening")) {
		out.Time = "18:00"
	}
	return out
}

func (e *Extractor) extractServiceType(lower string, out *models.ReservationDraft) {
	for _, sp := range servicePatterns {
		if sp.pattern.MatchString(lower) {
			out.ServiceType = sp.service
			return
		}
	}
}

func (e *Extractor) extractPartySize(lower string, out *models.ReservationDraft) {
	size := 0

	// Strict solo indicators first.
	for _, re := range soloPatterns {
		if re.MatchString(lower) {
			size = 1
			break
		}
	}
	if size == 0 && forMeRe.MatchString(lower) && !forMeAndRe.MatchString(lower) {
		size = 1
	}
	if size == 0 && bareOneRe.MatchString(lower) && !oneFollowedRe.MatchString(lower) {
		size = 1
	}

	// Explicit numbers adjacent to a party-context word.
	if size == 0 {
		ctx := strings.Join(partyContextWords, "|")
		for _, m := range numberRe.FindAllString(lower, -1) {
			n, err := strconv.Atoi(m)
			if err != nil || n < 1 || n > e.MaxPartySize {
				continue
			}
			fwd := regexp.MustCompile(`\b` + m + `\s+(?:` + ctx + `)\b`)
			rev := regexp.MustCompile(`\b(?:` + ctx + `)\s+` + m + `\b`)
			if fwd.MatchString(lower) || rev.MatchString(lower) {
				size = n
				break
			}
		}
	}

	// Relationship indicators, duplicate mentions increment.
	if size == 0 {
		for _, rel := range relationshipSizes {
			if !strings.Contains(lower, rel.word) {
				continue
			}
			count := len(regexp.MustCompile(`\b`+rel.word+`\b`).FindAllString(lower, -1))
			size = rel.size
			if count > 1 {
				size += count - 1
			}
			break
		}
	}

	// Generic group words with no explicit number.
	if size == 0 {
		for _, re := range groupPatterns {
			if re.MatchString(lower) {
				size = 2
				break
			}
		}
	}

	if size > 0 {
		if size > e.MaxPartySize {
			size = e.MaxPartySize
		}
		out.PartySize = size
	}
}

func (e *Extractor) extractDate(lower, original string, out *models.ReservationDraft) {
	today := e.Now()

	switch {
	case strings.Contains(lower, "tonight"), strings.Contains(lower, "this evening"), strings.Contains(lower, "today"):
		out.Date = today.Format("2006-01-02")
	case strings.Contains(lower, "tomorrow"):
		out.Date = today.AddDate(0, 0, 1).Format("2006-01-02")
	case strings.Contains(lower, "next week"):
		out.Date = today.AddDate(0, 0, 7).Format("2006-01-02")
	case strings.Contains(lower, "weekend"):
		// Next Saturday; a full week ahead when today already is Saturday.
		ahead := (int(time.Saturday) - int(today.Weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		out.Date = today.AddDate(0, 0, ahead).Format("2006-01-02")
	default:
		if m := numericDateRe.FindStringSubmatch(original); m != nil {
			if d, ok := parseNumericDate(m[1], m[2], m[3]); ok {
				out.Date = d
			}
			return
		}
		if m := monthDateRe.FindStringSubmatch(original); m != nil {
			day, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[3])
			month := monthNumbers[strings.ToLower(m[2])]
			if day >= 1 && day <= 31 {
				out.Date = fmt.Sprintf("%04d-%02d-%02d", year, month, day)
			}
		}
	}
}

// parseNumericDate reads a D/M/Y pattern, swapping day and month when the
// first component cannot be a day of month.
func parseNumericDate(a, b, y string) (string, bool) {
	day, _ := strconv.Atoi(a)
	month, _ := strconv.Atoi(b)
	year, _ := strconv.Atoi(y)
	if year < 100 {
		year += 2000
	}
	if month > 12 && day <= 12 {
		day, month = month, day
	}
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, time.Month(month), day), true
}

func (e *Extractor) extractTime(original string, out *models.ReservationDraft) {
	if m := clockColonRe.FindStringSubmatch(original); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if t, ok := to24Hour(hour, minute, strings.ToLower(m[3])); ok {
			out.Time = t
		}
		return
	}
	if m := clockMeridemRe.FindStringSubmatch(original); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if t, ok := to24Hour(hour, 0, strings.ToLower(m[2])); ok {
			out.Time = t
		}
		return
	}
	if m := clockOClockRe.FindStringSubmatch(original); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if t, ok := to24Hour(hour, 0, ""); ok {
			out.Time = t
		}
	}
}

// to24Hour applies standard 12-hour conversion: 12 AM maps to 00, 12 PM stays 12.
func to24Hour(hour, minute int, meridiem string) (string, bool) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", false
	}
	switch meridiem {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}
