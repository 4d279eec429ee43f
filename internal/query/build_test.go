// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-assistant/internal/dates"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want string
	}{
		{
			name: "terms only",
			in:   Input{Query: "machine learning"},
			want: "any,contains,machine learning",
		},
		{
			name: "empty query still emits the term clause",
			in:   Input{Query: "", PeerReviewed: true},
			want: "any,contains,,AND;facet_tlevel,exact,peer_reviewed",
		},
		{
			name: "language facet",
			in:   Input{Query: "climate change", LangCode: "eng"},
			want: "any,contains,climate change,AND;lang,exact,eng",
		},
		{
			name: "resource facet last",
			in:   Input{Query: "deep learning", LangCode: "eng", PeerReviewed: true, ResourceFacet: "articles"},
			want: "any,contains,deep learning,AND;lang,exact,eng,AND;facet_tlevel,exact,peer_reviewed,AND;rtype,exact,articles",
		},
		{
			name: "authors in mention order",
			in:   Input{Query: "neural networks", Authors: []string{"Andrew Ng", "Yann LeCun"}},
			want: "any,contains,neural networks,AND;creator,contains,Andrew Ng,AND;creator,contains,Yann LeCun",
		},
		{
			name: "blank authors skipped",
			in:   Input{Query: "robotics", Authors: []string{"  ", "Jane Doe"}},
			want: "any,contains,robotics,AND;creator,contains,Jane Doe",
		},
		{
			name: "date bounds",
			in:   Input{Query: "genomics", DateFrom: "20200101", DateTo: "20201231"},
			want: "any,contains,genomics,AND;dr_s,exact,20200101,AND;dr_e,exact,20201231",
		},
		{
			name: "start bound only",
			in:   Input{Query: "genomics", DateFrom: "20200101"},
			want: "any,contains,genomics,AND;dr_s,exact,20200101",
		},
		{
			name: "everything in fixed order",
			in: Input{
				Query:         "quantum computing",
				Authors:       []string{"John Preskill"},
				DateFrom:      "20180101",
				DateTo:        "20221231",
				LangCode:      "eng",
				PeerReviewed:  true,
				ResourceFacet: "dissertations",
			},
			want: "any,contains,quantum computing" +
				",AND;creator,contains,John Preskill" +
				",AND;dr_s,exact,20180101" +
				",AND;dr_e,exact,20221231" +
				",AND;lang,exact,eng" +
				",AND;facet_tlevel,exact,peer_reviewed" +
				",AND;rtype,exact,dissertations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.in))
		})
	}
}

func TestBuildDeterministic(t *testing.T) {
	in := Input{Query: "ai ethics", Authors: []string{"A", "B"}, PeerReviewed: true}
	assert.Equal(t, Build(in), Build(in))
}

func TestClampDates(t *testing.T) {
	today := time.Now().UTC().Format("20060102")

	tests := []struct {
		name     string
		from, to string
		wantFrom string
		wantTo   string
	}{
		{"both empty pass through", "", "", "", ""},
		{"years expand to full bounds", "2015", "2020", "20150101", "20201231"},
		{"missing start takes the floor", "", "2020", "19000101", "20201231"},
		{"missing end takes today", "2020", "", "20200101", today},
		{"future end clamps to today", "2020", "2999", "20200101", today},
		{"inverted bounds swap after expansion", "2021", "2019", "20191231", "20210101"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := ClampDates(tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}
}

func TestClampDatesYearFloor(t *testing.T) {
	_, _, err := ClampDates("1850", "2020")
	assert.ErrorIs(t, err, dates.ErrYearBelowMinimum)
}
