// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Document is one raw record from the discovery API's pnxs endpoint.
// Only the fields the assistant reads are modeled; the provider returns
// far more. Most PNX fields are arrays of strings even when they hold a
// single value.
type Document struct {
	// ID is the top-level record identifier.
	ID string `json:"id"`

	// Context is the search context the record came from (e.g. "PC", "L").
	Context string `json:"context"`

	// PNX is the normalized record body.
	PNX PNX `json:"pnx"`

	// Link carries provider-resolved links for the record.
	Link DocumentLink `json:"link"`
}

// PNX groups the record sections the assistant consumes.
type PNX struct {
	Control PNXControl `json:"control"`
	Display PNXDisplay `json:"display"`
	Sort    PNXSort    `json:"sort"`
	Addata  PNXAddata  `json:"addata"`
	Facets  PNXFacets  `json:"facets"`
}

// PNXControl holds record identifiers.
type PNXControl struct {
	RecordID []string `json:"recordid"`
}

// PNXDisplay holds human-readable record fields.
type PNXDisplay struct {
	Title        []string `json:"title"`
	Creator      []string `json:"creator"`
	Type         []string `json:"type"`
	Source       []string `json:"source"`
	CreationDate []string `json:"creationdate"`
}

// PNXSort holds sortable variants of record fields.
type PNXSort struct {
	CreationDate []string `json:"creationdate"`
}

// PNXAddata holds additional bibliographic data.
type PNXAddata struct {
	Date []string `json:"date"`
	Pub  []string `json:"pub"`
	ISSN []string `json:"issn"`
	DOI  []string `json:"doi"`
}

// PNXFacets holds facet values attached to the record.
type PNXFacets struct {
	// Tlevel lists availability facets; a "peer_reviewed" entry (in any
	// of the provider's spelling variants) marks peer-reviewed material.
	Tlevel []string `json:"tlevel"`
}

// DocumentLink holds resolved links for a record.
type DocumentLink struct {
	// Record is the permalink to the full record view, when the provider
	// supplies one.
	Record string `json:"record"`
}

// ResultSetInfo carries result-set metadata.
type ResultSetInfo struct {
	// Total is the total number of matches, which may exceed len(Docs).
	Total int `json:"total"`
}

// ResultSet is a page of search results as returned by the discovery API.
type ResultSet struct {
	Docs []Document    `json:"docs"`
	Info ResultSetInfo `json:"info"`
}

// Brief is the assistant's flattened view of a Document: the handful of
// fields shown to the user and persisted in history. Briefs are derived
// once per document and never mutated.
type Brief struct {
	// RecordID identifies the record at the provider.
	RecordID string `json:"record_id" yaml:"record_id"`

	// Title is the record title, or "Untitled" when missing.
	Title string `json:"title" yaml:"title"`

	// Creators lists the record's creators in display order.
	Creators []string `json:"creators" yaml:"creators"`

	// CreationDate is the four-digit publication year, or "N/A".
	CreationDate string `json:"creation_date" yaml:"creation_date"`

	// ResourceType is the display type of the record (e.g. "article").
	ResourceType string `json:"resource_type" yaml:"resource_type"`

	// Context is the search context the record came from.
	Context string `json:"context" yaml:"context"`

	// Permalink is a stable link to the full record view.
	Permalink string `json:"permalink" yaml:"permalink"`
}
