// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ResourceType is the internal, singular name for a kind of library record.
// The discovery API uses a different (mostly plural) facet vocabulary;
// Facet performs the mapping.
type ResourceType string

const (
	ResourceArticle               ResourceType = "article"
	ResourceBook                  ResourceType = "book"
	ResourceJournal               ResourceType = "journal"
	ResourceThesis                ResourceType = "thesis"
	ResourceBookChapter           ResourceType = "book_chapter"
	ResourceConferenceProceeding  ResourceType = "conference_proceeding"
	ResourceVideo                 ResourceType = "video"
	ResourceDataset               ResourceType = "dataset"
	ResourcePatent                ResourceType = "patent"
	ResourceReport                ResourceType = "report"
	ResourceSoftware              ResourceType = "software"
	ResourceWebsite               ResourceType = "website"
	ResourceReferenceEntry        ResourceType = "reference_entry"
	ResourceGovernmentDocument    ResourceType = "government_document"
	ResourceMap                   ResourceType = "map"
	ResourceScore                 ResourceType = "score"
	ResourceAudio                 ResourceType = "audio"
	ResourceImage                 ResourceType = "image"
	ResourceNewspaperArticle      ResourceType = "newspaper_article"
	ResourceReview                ResourceType = "review"
)

// facets maps internal resource types to the discovery API's rtype facet
// values. Types absent from the map pass through unchanged.
var facets = map[ResourceType]string{
	ResourceArticle:              "articles",
	ResourceBook:                 "books",
	ResourceJournal:              "journals",
	ResourceThesis:               "dissertations",
	ResourceBookChapter:          "book_chapters",
	ResourceConferenceProceeding: "conference_proceedings",
	ResourceVideo:                "videos",
	ResourceDataset:              "datasets",
	ResourcePatent:               "patents",
	ResourceReport:               "reports",
	ResourceSoftware:             "software",
	ResourceWebsite:              "websites",
	ResourceReferenceEntry:       "reference_entries",
	ResourceGovernmentDocument:   "government_documents",
	ResourceMap:                  "maps",
	ResourceScore:                "scores",
	ResourceAudio:                "audio",
	ResourceImage:                "images",
	ResourceNewspaperArticle:     "newspaper_articles",
	ResourceReview:               "reviews",
}

// Facet returns the discovery API facet value for the resource type.
// An empty type returns the empty string.
func (r ResourceType) Facet() string {
	if f, ok := facets[r]; ok {
		return f
	}
	return string(r)
}

const (
	// DefaultLimit is the number of results requested when the user did
	// not ask for a specific count.
	DefaultLimit = 10

	// MaxLimit is the largest result count the discovery API accepts per page.
	MaxLimit = 50
)

// SearchParams is everything a search needs, extracted from a conversation.
// Every field has a usable zero/default value so a search can always run.
type SearchParams struct {
	// Query is the sanitized search phrase with boilerplate removed.
	// It contains no boolean operators.
	Query string `json:"query" yaml:"query"`

	// Limit is the requested number of results, in [1, 50]. Default 10.
	Limit int `json:"limit" yaml:"limit"`

	// ResourceType restricts results to one kind of record. Empty means
	// no restriction.
	ResourceType ResourceType `json:"resource_type,omitempty" yaml:"resource_type,omitempty"`

	// PeerReviewed restricts results to peer-reviewed material.
	PeerReviewed bool `json:"peer_reviewed" yaml:"peer_reviewed"`

	// DateFrom and DateTo bound the publication date, as YYYYMMDD strings
	// (shorter year or year-month forms are accepted and expanded before
	// query compilation). Empty means unbounded.
	DateFrom string `json:"date_from,omitempty" yaml:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty" yaml:"date_to,omitempty"`

	// Authors lists creator names to filter by, in mention order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`
}

// ClampedLimit returns Limit forced into [1, MaxLimit], substituting
// DefaultLimit when Limit is unset or nonsensical.
func (p SearchParams) ClampedLimit() int {
	n := p.Limit
	if n <= 0 {
		n = DefaultLimit
	}
	if n > MaxLimit {
		n = MaxLimit
	}
	return n
}
