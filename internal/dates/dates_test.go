// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixNow pins the clock for the duration of a test.
func fixNow(t *testing.T, year int, month time.Month, day int) {
	t.Helper()
	old := nowFunc
	nowFunc = func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
	t.Cleanup(func() { nowFunc = old })
}

func TestNormalizeBound(t *testing.T) {
	fixNow(t, 2025, time.October, 27)

	tests := []struct {
		name    string
		value   string
		isStart bool
		want    string
	}{
		{"empty start defaults to floor", "", true, "19000101"},
		{"empty end defaults to today", "", false, "20251027"},
		{"whitespace only start", "   ", true, "19000101"},
		{"four digit year start", "2020", true, "20200101"},
		{"floor year itself accepted start", "1900", true, "19000101"},
		{"floor year itself accepted end", "1900", false, "19001231"},
		{"four digit year end", "2020", false, "20201231"},
		{"six digit month start", "202003", true, "20200301"},
		{"six digit month end", "202003", false, "20200331"},
		{"six digit february leap year end", "202002", false, "20200229"},
		{"six digit february common year end", "202102", false, "20210228"},
		{"eight digits verbatim", "20200305", true, "20200305"},
		{"more than eight digits truncated", "2020030512", true, "20200305"},
		{"five digits year plus month", "20203", true, "20200301"},
		{"five digits year plus month end", "20203", false, "20200331"},
		{"seven digits year month day prefix", "2020031", false, "20200331"},
		{"six digit month clamped high", "202015", true, "20201201"},
		{"six digit month clamped low", "202000", true, "20200101"},
		{"digits mixed with separators", "2020-03-05", true, "20200305"},
		{"no digits at all", "soon", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeBound(tt.value, tt.isStart)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeBoundYearFloor(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isStart bool
	}{
		{"four digit year below floor", "1850", true},
		{"eight digit date below floor", "18991231", false},
		{"six digit month below floor", "189906", true},
		{"three digit year below floor", "999", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeBound(tt.value, tt.isStart)
			assert.ErrorIs(t, err, ErrYearBelowMinimum)
		})
	}
}

func TestExtractRange(t *testing.T) {
	fixNow(t, 2025, time.October, 27)

	tests := []struct {
		name     string
		text     string
		wantFrom string
		wantTo   string
	}{
		{"from to range", "papers from 2015 to 2020", "2015", "2020"},
		{"between range", "published between 2010 and 2015", "2010", "2015"},
		{"dash range", "studies 2015-2020 please", "2015", "2020"},
		{"dash range with spaces", "studies 2015 - 2020 please", "2015", "2020"},
		{"full date dashes", "published 2020-03-05", "20200305", ""},
		{"full date slashes", "published 2020/03/05", "20200305", ""},
		{"full date compact", "published 20200305", "20200305", ""},
		{"month day year", "since March 5, 2020", "20200305", ""},
		{"month day year no comma", "march 5 2020", "20200305", ""},
		{"abbreviated month year", "papers from Mar 2020", "20200301", ""},
		{"full month year", "papers from March 2020", "20200301", ""},
		{"since year", "articles since 2018", "2018", ""},
		{"after year starts next year", "published after 2019", "2020", ""},
		{"before year ends prior year", "published before 2019", "", "2018"},
		{"last n years", "research from the last 3 years", "2023", "2025"},
		{"last n months", "papers from the last 2 months", "20250901", "20251027"},
		{"last month", "anything from last month", "20250901", "20251027"},
		{"quarter one", "reports from Q1 2018", "20180101", "20180331"},
		{"quarter two ends on true month end", "q2 2021", "20210401", "20210630"},
		{"quarter four", "Q4 2019", "20191001", "20191231"},
		{"bare year", "the 1999 survey", "1999", ""},
		{"no dates", "machine learning papers", "", ""},
		{"empty text", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := ExtractRange(tt.text)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}
}

func TestExtractRangeLastMonthsYearRollover(t *testing.T) {
	fixNow(t, 2025, time.January, 15)

	from, to := ExtractRange("publications from the last 3 months")
	assert.Equal(t, "20241101", from)
	assert.Equal(t, "20250115", to)
}

func TestExtractRangeFamilyPriority(t *testing.T) {
	fixNow(t, 2025, time.October, 27)

	// A year range outranks the bare years inside it.
	from, to := ExtractRange("from 2015 to 2020, ideally since 2018")
	assert.Equal(t, "2015", from)
	assert.Equal(t, "2020", to)

	// "since" outranks a later bare year.
	from, to = ExtractRange("since 2018 or maybe 2019")
	assert.Equal(t, "2018", from)
	assert.Equal(t, "", to)
}
