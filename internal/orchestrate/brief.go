// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orchestrate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/scholar-assistant/pkg/types"
)

var reYear = regexp.MustCompile(`\d{4}`)

// BriefFromDoc flattens one provider record into the fields shown to the
// user. Missing values get display defaults rather than empty strings so
// downstream formatting never has holes.
func BriefFromDoc(doc types.Document, cfg types.PrimoConfig) types.Brief {
	b := types.Brief{
		RecordID:     first(doc.PNX.Control.RecordID),
		Title:        first(doc.PNX.Display.Title),
		Creators:     doc.PNX.Display.Creator,
		CreationDate: briefYear(doc),
		ResourceType: first(doc.PNX.Display.Type),
		Context:      doc.Context,
		Permalink:    permalink(doc, cfg),
	}
	if b.RecordID == "" {
		b.RecordID = doc.ID
	}
	if b.Title == "" {
		b.Title = "Untitled"
	}
	if b.ResourceType == "" {
		b.ResourceType = "unknown"
	}
	return b
}

// BriefsFromDocs flattens a result page in order.
func BriefsFromDocs(docs []types.Document, cfg types.PrimoConfig) []types.Brief {
	briefs := make([]types.Brief, 0, len(docs))
	for _, doc := range docs {
		briefs = append(briefs, BriefFromDoc(doc, cfg))
	}
	return briefs
}

// briefYear extracts the publication year. The sort field is cleanest;
// the display and addata fields are free text and scanned for the first
// four-digit run.
func briefYear(doc types.Document) string {
	for _, candidates := range [][]string{
		doc.PNX.Sort.CreationDate,
		doc.PNX.Display.CreationDate,
		doc.PNX.Addata.Date,
	} {
		for _, v := range candidates {
			if y := reYear.FindString(v); y != "" {
				return y
			}
		}
	}
	return "N/A"
}

// permalink prefers the provider-resolved record link and falls back to
// constructing the discovery UI's full-display URL.
func permalink(doc types.Document, cfg types.PrimoConfig) string {
	if doc.Link.Record != "" {
		return doc.Link.Record
	}
	if cfg.DiscoveryBase == "" || doc.ID == "" {
		return ""
	}
	v := url.Values{}
	v.Set("docid", doc.ID)
	v.Set("vid", cfg.VID)
	v.Set("context", doc.Context)
	return fmt.Sprintf("%s/discovery/fulldisplay?%s", strings.TrimRight(cfg.DiscoveryBase, "/"), v.Encode())
}

// FormatList renders briefs as a numbered markdown list headed by the
// search terms.
func FormatList(briefs []types.Brief, query string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Top %d results for **%s**:\n", len(briefs), query)
	for i, brief := range briefs {
		fmt.Fprintf(&b, "\n%d. [%s] **%s** (%s)", i+1, brief.ResourceType, brief.Title, brief.CreationDate)
		if len(brief.Creators) > 0 {
			fmt.Fprintf(&b, " — *%s*", strings.Join(brief.Creators, "; "))
		}
		if brief.Permalink != "" {
			fmt.Fprintf(&b, " — %s", brief.Permalink)
		}
	}
	return b.String()
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}
