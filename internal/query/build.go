// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query compiles extracted search parameters into the discovery
// API's boolean q-string.
package query

import (
	"strings"

	"github.com/pdiddy/scholar-assistant/internal/dates"
)

// separator joins clauses with an implicit boolean AND. The trailing
// semicolon terminates the previous clause, so the literal includes it.
const separator = ",AND;"

// Clause is one field,operator,value triple in a compiled query.
type Clause struct {
	Field string
	Op    string
	Value string
}

func (c Clause) String() string {
	return c.Field + "," + c.Op + "," + c.Value
}

// Input carries everything Build needs. ResourceFacet is the provider's
// facet vocabulary (e.g. "articles", "dissertations"), already mapped by
// the caller; date bounds are normalized YYYYMMDD strings or empty.
type Input struct {
	Query         string
	Authors       []string
	DateFrom      string
	DateTo        string
	LangCode      string
	PeerReviewed  bool
	ResourceFacet string
}

// Build compiles the query string. Clause order is fixed: the term
// clause always comes first (even when the query is empty), then one
// creator clause per author, the date bounds, the language facet, the
// peer-review facet, and the resource-type facet. Identical inputs
// produce identical bytes.
func Build(in Input) string {
	clauses := []Clause{{Field: "any", Op: "contains", Value: in.Query}}

	for _, a := range in.Authors {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		clauses = append(clauses, Clause{Field: "creator", Op: "contains", Value: a})
	}

	if in.DateFrom != "" {
		clauses = append(clauses, Clause{Field: "dr_s", Op: "exact", Value: in.DateFrom})
	}
	if in.DateTo != "" {
		clauses = append(clauses, Clause{Field: "dr_e", Op: "exact", Value: in.DateTo})
	}

	if in.LangCode != "" {
		clauses = append(clauses, Clause{Field: "lang", Op: "exact", Value: in.LangCode})
	}
	if in.PeerReviewed {
		clauses = append(clauses, Clause{Field: "facet_tlevel", Op: "exact", Value: "peer_reviewed"})
	}
	if in.ResourceFacet != "" {
		clauses = append(clauses, Clause{Field: "rtype", Op: "exact", Value: in.ResourceFacet})
	}

	parts := make([]string, len(clauses))
	for i, c := range clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, separator)
}

// ClampDates normalizes a pair of date bounds for querying. When at
// least one bound is present both are expanded to YYYYMMDD (the absent
// one takes its default), future bounds are clamped to today, and the
// bounds are swapped when the start exceeds the end. Two empty bounds
// pass through untouched. A bound whose year precedes the floor returns
// dates.ErrYearBelowMinimum.
func ClampDates(from, to string) (string, string, error) {
	if from == "" && to == "" {
		return "", "", nil
	}

	start, err := dates.NormalizeBound(from, true)
	if err != nil {
		return "", "", err
	}
	end, err := dates.NormalizeBound(to, false)
	if err != nil {
		return "", "", err
	}

	todayStr, _ := dates.NormalizeBound("", false)
	if end > todayStr {
		end = todayStr
	}
	if start > todayStr {
		start = todayStr
	}
	if start != "" && end != "" && start > end {
		start, end = end, start
	}
	return start, end, nil
}
