// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package orchestrate runs one full search cycle: extract parameters
// from the conversation, compile and execute the query, flatten the
// results, and render the user-facing reply.
package orchestrate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/scholar-assistant/internal/extract"
	"github.com/pdiddy/scholar-assistant/internal/llm"
	"github.com/pdiddy/scholar-assistant/internal/primo"
	"github.com/pdiddy/scholar-assistant/internal/query"
	"github.com/pdiddy/scholar-assistant/pkg/types"
)

// Recorder persists completed runs. A nil recorder disables history.
type Recorder interface {
	Record(ctx context.Context, params types.SearchParams, compiled string, briefs []types.Brief) error
}

// Outcome is the result of one search cycle. Message is always set; the
// other fields let callers persist or inspect the run.
type Outcome struct {
	// Params are the extracted search parameters, post-clamping.
	Params types.SearchParams

	// Query is the compiled q-string sent to the provider.
	Query string

	// Briefs are the flattened results, in rank order.
	Briefs []types.Brief

	// Total is the provider's full match count, which may exceed len(Briefs).
	Total int

	// Message is the user-facing reply: a result list, zero-result
	// suggestions, or an error notice.
	Message string
}

// Orchestrator wires the extraction, query, and search components.
type Orchestrator struct {
	extractor *extract.Extractor
	searcher  primo.Searcher
	client    llm.Client
	recorder  Recorder
	settings  types.SearchSettings
	primoCfg  types.PrimoConfig
	log       zerolog.Logger
}

// New builds an orchestrator. recorder may be nil.
func New(extractor *extract.Extractor, searcher primo.Searcher, client llm.Client,
	recorder Recorder, settings types.SearchSettings, primoCfg types.PrimoConfig,
	log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		extractor: extractor,
		searcher:  searcher,
		client:    client,
		recorder:  recorder,
		settings:  settings,
		primoCfg:  primoCfg,
		log:       log.With().Str("component", "orchestrate").Logger(),
	}
}

// Run executes one search cycle over the conversation. It never fails:
// search errors become an error notice in the message, history failures
// are logged and swallowed.
func (o *Orchestrator) Run(ctx context.Context, turns []types.Turn) Outcome {
	params := o.extractor.Extract(ctx, turns)

	from, to, err := query.ClampDates(params.DateFrom, params.DateTo)
	if err != nil {
		// A bound before the supported floor drops the date filter rather
		// than failing the whole search.
		o.log.Warn().Err(err).Str("from", params.DateFrom).Str("to", params.DateTo).
			Msg("dropping invalid date range")
		from, to = "", ""
	}
	params.DateFrom, params.DateTo = from, to

	if params.Limit <= 0 {
		params.Limit = o.settings.DefaultLimit
	}
	params.Limit = params.ClampedLimit()

	compiled := query.Build(query.Input{
		Query:         params.Query,
		Authors:       params.Authors,
		DateFrom:      params.DateFrom,
		DateTo:        params.DateTo,
		LangCode:      o.settings.Language,
		PeerReviewed:  params.PeerReviewed,
		ResourceFacet: params.ResourceType.Facet(),
	})

	rs, err := o.searcher.Search(ctx, compiled, primo.SearchOptions{
		Limit: params.Limit,
		Sort:  o.settings.Sort,
	})
	if err != nil {
		o.log.Error().Err(err).Str("query", compiled).Msg("search failed")
		return Outcome{
			Params:  params,
			Query:   compiled,
			Message: fmt.Sprintf("Error executing search: %v", err),
		}
	}

	if len(rs.Docs) == 0 {
		o.log.Info().Str("query", compiled).Msg("zero results")
		return Outcome{
			Params: params,
			Query:  compiled,
			Message: fmt.Sprintf("No results found for **%s**.\n\nSuggestions:\n%s",
				params.Query, suggestions(ctx, o.client, params)),
		}
	}

	briefs := BriefsFromDocs(rs.Docs, o.primoCfg)

	if o.recorder != nil {
		if err := o.recorder.Record(ctx, params, compiled, briefs); err != nil {
			o.log.Warn().Err(err).Msg("recording run failed")
		}
	}

	o.log.Info().Int("results", len(briefs)).Int("total", rs.Info.Total).
		Str("query", compiled).Msg("search complete")

	return Outcome{
		Params:  params,
		Query:   compiled,
		Briefs:  briefs,
		Total:   rs.Info.Total,
		Message: FormatList(briefs, params.Query),
	}
}
