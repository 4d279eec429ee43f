// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dates normalizes date bounds for discovery queries and extracts
// date ranges from conversational text.
package dates

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MinYear is the hard floor for query date bounds. Years below it are
// rejected rather than clamped.
const MinYear = 1900

// ErrYearBelowMinimum reports a date bound whose year precedes MinYear.
var ErrYearBelowMinimum = errors.New("year is before minimum allowed")

// nowFunc returns the current time; tests substitute it for determinism.
var nowFunc = time.Now

func today() time.Time {
	return nowFunc().UTC()
}

// lastDay returns the last day of the given month, leap-aware.
func lastDay(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func clampMonth(m int) int {
	if m < 1 {
		return 1
	}
	if m > 12 {
		return 12
	}
	return m
}

func checkYear(year int) error {
	if year < MinYear {
		return fmt.Errorf("%w: %d < %d", ErrYearBelowMinimum, year, MinYear)
	}
	return nil
}

// digitsOf strips everything but ASCII digits from s.
func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeBound expands a date-like value into a full YYYYMMDD string.
//
// An empty value defaults to 19000101 for a start bound and today (UTC)
// for an end bound. A 4-digit year expands to January 1 or December 31.
// A 6-digit YYYYMM expands to the first or last day of the month. Eight
// or more digits are used as-is (first eight). Odd lengths treat the
// first four digits as the year and the remainder as month and day.
// A value with no digits at all normalizes to the empty string.
//
// Years before MinYear return ErrYearBelowMinimum.
func NormalizeBound(value string, isStart bool) (string, error) {
	if strings.TrimSpace(value) == "" {
		if isStart {
			return "19000101", nil
		}
		return today().Format("20060102"), nil
	}

	digits := digitsOf(value)
	if digits == "" {
		return "", nil
	}

	if len(digits) >= 8 {
		ymd := digits[:8]
		year, _ := strconv.Atoi(ymd[:4])
		if err := checkYear(year); err != nil {
			return "", err
		}
		return ymd, nil
	}

	if len(digits) == 4 {
		year, _ := strconv.Atoi(digits)
		if err := checkYear(year); err != nil {
			return "", err
		}
		if isStart {
			return digits + "0101", nil
		}
		return digits + "1231", nil
	}

	if len(digits) > 4 {
		// 5, 6, or 7 digits: year plus a partial month/day tail.
		year, _ := strconv.Atoi(digits[:4])
		if err := checkYear(year); err != nil {
			return "", err
		}
		rest := digits[4:]
		month := 0
		if len(rest) == 1 {
			month, _ = strconv.Atoi(rest)
		} else {
			month, _ = strconv.Atoi(rest[:2])
		}
		month = clampMonth(month)
		if isStart {
			return fmt.Sprintf("%04d%02d01", year, month), nil
		}
		return fmt.Sprintf("%04d%02d%02d", year, month, lastDay(year, month)), nil
	}

	// 1-3 digits: treat as a (short) year.
	year, _ := strconv.Atoi(digits)
	if err := checkYear(year); err != nil {
		return "", err
	}
	if isStart {
		return fmt.Sprintf("%04d0101", year), nil
	}
	return fmt.Sprintf("%04d1231", year), nil
}

const monthNames = `(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

var (
	reYearRangeFrom    = regexp.MustCompile(`from\s+(\d{4})\s+(?:to|-)\s+(\d{4})`)
	reYearRangeBetween = regexp.MustCompile(`between\s+(\d{4})\s+and\s+(\d{4})`)
	reYearRangeDash    = regexp.MustCompile(`(\d{4})\s*[-–]\s*(\d{4})`)
	reFullDate         = regexp.MustCompile(`(\d{4})[-/]?(\d{1,2})[-/]?(\d{1,2})`)
	reMonthDayYear     = regexp.MustCompile(monthNames + `\s+(\d{1,2}),?\s+(\d{4})`)
	reMonthYear        = regexp.MustCompile(monthNames + `\s+(\d{4})`)
	reSinceYear        = regexp.MustCompile(`since\s+(\d{4})`)
	reAfterYear        = regexp.MustCompile(`after\s+(\d{4})`)
	reBeforeYear       = regexp.MustCompile(`before\s+(\d{4})`)
	reLastNYears       = regexp.MustCompile(`last\s+(\d{1,2})\s+years`)
	reLastNMonths      = regexp.MustCompile(`last\s+(\d{1,2})\s+months`)
	reLastMonth        = regexp.MustCompile(`last\s+month`)
	reQuarter          = regexp.MustCompile(`q([1-4])\s*(\d{4})`)
	reBareYear         = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

var monthIndex = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// ExtractRange finds a date range in free text. Pattern families are
// tried in priority order and the first match wins; families are never
// combined. Either return may be empty, and values are year, YYYYMM01,
// or YYYYMMDD digit strings for NormalizeBound to expand.
func ExtractRange(text string) (from, to string) {
	if strings.TrimSpace(text) == "" {
		return "", ""
	}
	t := strings.ToLower(text)

	// Explicit year ranges beat everything else.
	for _, re := range []*regexp.Regexp{reYearRangeFrom, reYearRangeBetween, reYearRangeDash} {
		if m := re.FindStringSubmatch(t); m != nil {
			return m[1], m[2]
		}
	}

	// Full numeric dates, e.g. 2020-03-05, 2020/03/05, 20200305.
	if m := reFullDate.FindStringSubmatch(t); m != nil {
		mm, _ := strconv.Atoi(m[2])
		dd, _ := strconv.Atoi(m[3])
		return fmt.Sprintf("%s%02d%02d", m[1], mm, dd), ""
	}

	// Month-name dates, with the day-bearing form first.
	if m := reMonthDayYear.FindStringSubmatch(t); m != nil {
		dd, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%s%02d%02d", m[3], monthIndex[m[1][:3]], dd), ""
	}
	if m := reMonthYear.FindStringSubmatch(t); m != nil {
		return fmt.Sprintf("%s%02d01", m[2], monthIndex[m[1][:3]]), ""
	}

	if m := reSinceYear.FindStringSubmatch(t); m != nil {
		return m[1], ""
	}

	// "after 2019" starts the year after; "before 2019" ends the year before.
	if m := reAfterYear.FindStringSubmatch(t); m != nil {
		y, _ := strconv.Atoi(m[1])
		return strconv.Itoa(y + 1), ""
	}
	if m := reBeforeYear.FindStringSubmatch(t); m != nil {
		y, _ := strconv.Atoi(m[1])
		return "", strconv.Itoa(y - 1)
	}

	if m := reLastNYears.FindStringSubmatch(t); m != nil {
		n, _ := strconv.Atoi(m[1])
		y := today().Year()
		return strconv.Itoa(y - n + 1), strconv.Itoa(y)
	}

	if m := reLastNMonths.FindStringSubmatch(t); m != nil {
		n, _ := strconv.Atoi(m[1])
		return monthsAgoStart(n), today().Format("20060102")
	}
	if reLastMonth.MatchString(t) {
		return monthsAgoStart(2), today().Format("20060102")
	}

	if m := reQuarter.FindStringSubmatch(t); m != nil {
		q, _ := strconv.Atoi(m[1])
		yr, _ := strconv.Atoi(m[2])
		startM := (q-1)*3 + 1
		endM := startM + 2
		return fmt.Sprintf("%04d%02d01", yr, startM),
			fmt.Sprintf("%04d%02d%02d", yr, endM, lastDay(yr, endM))
	}

	if m := reBareYear.FindString(t); m != "" {
		return m, ""
	}

	return "", ""
}

// monthsAgoStart returns the first day of the month n-1 months before the
// current one, as YYYYMM01. n=1 means the current month.
func monthsAgoStart(n int) string {
	now := today()
	year, month := now.Year(), int(now.Month())
	month = month - n + 1
	for month <= 0 {
		month += 12
		year--
	}
	return fmt.Sprintf("%04d%02d01", year, month)
}
