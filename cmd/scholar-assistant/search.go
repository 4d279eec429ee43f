// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-assistant/internal/observability"
	"github.com/pdiddy/scholar-assistant/internal/orchestrate"
	"github.com/pdiddy/scholar-assistant/internal/primo"
	"github.com/pdiddy/scholar-assistant/internal/query"
	"github.com/pdiddy/scholar-assistant/internal/queryfile"
	"github.com/pdiddy/scholar-assistant/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a single library search from flags",
	Long: `Search compiles the given parameters into one discovery query, runs it,
and prints the results. Unlike chat, no conversation or chat model is
involved; the flags are the parameters.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "search terms")
	searchCmd.Flags().String("type", "", "resource type (article, book, thesis, ...)")
	searchCmd.Flags().Int("limit", 0, "number of results (default from config)")
	searchCmd.Flags().Bool("peer-reviewed", false, "restrict to peer-reviewed material")
	searchCmd.Flags().String("from", "", "publication date range start (YYYY, YYYYMM, or YYYYMMDD)")
	searchCmd.Flags().String("to", "", "publication date range end (YYYY, YYYYMM, or YYYYMMDD)")
	searchCmd.Flags().StringSlice("author", nil, "filter by creator name (repeatable)")
	searchCmd.Flags().String("save", "", "save the run to a YAML query file")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	terms, _ := cmd.Flags().GetString("query")
	if terms == "" {
		return fmt.Errorf("provide search terms with --query")
	}

	cfg := loadAppConfig()
	log := observability.NewLogger(cfg.Logging)

	rtype, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = cfg.Search.DefaultLimit
	}
	peerReviewed, _ := cmd.Flags().GetBool("peer-reviewed")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	authors, _ := cmd.Flags().GetStringSlice("author")

	params := types.SearchParams{
		Query:        terms,
		Limit:        limit,
		ResourceType: types.ResourceType(rtype),
		PeerReviewed: peerReviewed,
		DateFrom:     from,
		DateTo:       to,
		Authors:      authors,
	}
	params.Limit = params.ClampedLimit()

	var err error
	params.DateFrom, params.DateTo, err = query.ClampDates(params.DateFrom, params.DateTo)
	if err != nil {
		return fmt.Errorf("invalid date range: %w", err)
	}

	compiled := query.Build(query.Input{
		Query:         params.Query,
		Authors:       params.Authors,
		DateFrom:      params.DateFrom,
		DateTo:        params.DateTo,
		LangCode:      cfg.Search.Language,
		PeerReviewed:  params.PeerReviewed,
		ResourceFacet: params.ResourceType.Facet(),
	})

	searcher := primo.NewClient(cfg.Primo, log)
	rs, err := searcher.Search(cmd.Context(), compiled, primo.SearchOptions{
		Limit: params.Limit,
		Sort:  cfg.Search.Sort,
	})
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	briefs := orchestrate.BriefsFromDocs(rs.Docs, cfg.Primo)

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(briefs); err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
	} else {
		fmt.Fprintln(out, orchestrate.FormatList(briefs, params.Query))
	}

	if save, _ := cmd.Flags().GetString("save"); save != "" {
		if err := queryfile.Write(save, params, compiled, briefs, rs.Info.Total); err != nil {
			return fmt.Errorf("saving query file: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved run to %s\n", save)
	}
	return nil
}
