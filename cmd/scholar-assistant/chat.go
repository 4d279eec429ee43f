// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-assistant/internal/conversation"
	"github.com/pdiddy/scholar-assistant/internal/extract"
	"github.com/pdiddy/scholar-assistant/internal/history"
	"github.com/pdiddy/scholar-assistant/internal/llm"
	"github.com/pdiddy/scholar-assistant/internal/observability"
	"github.com/pdiddy/scholar-assistant/internal/orchestrate"
	"github.com/pdiddy/scholar-assistant/internal/primo"
	"github.com/pdiddy/scholar-assistant/pkg/types"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive search conversation",
	Long: `Chat runs a turn-by-turn conversation: the assistant asks clarifying
questions until it has enough to search, runs the search, and shows a ranked
result list. Type "exit" or "quit" to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := loadAppConfig()
	log := observability.NewLogger(cfg.Logging)

	client := llm.NewGroqClient(cfg.LLM, log)
	searcher := primo.NewClient(cfg.Primo, log)
	analyzer := conversation.NewAnalyzer(client, log)
	extractor := extract.NewExtractor(client, log)

	var recorder orchestrate.Recorder
	store, err := history.Open(cfg.History)
	if err != nil {
		log.Warn().Err(err).Msg("history disabled")
	} else {
		defer store.Close()
		recorder = store
	}

	orch := orchestrate.New(extractor, searcher, client, recorder, cfg.Search, cfg.Primo, log)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Welcome! What research topic would you like to explore today?")

	var session conversation.Session
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}

		reply := analyzer.Advance(cmd.Context(), &session, line)
		if !reply.Ready {
			fmt.Fprintln(out, reply.Message)
			continue
		}

		outcome := orch.Run(cmd.Context(), session.Turns)
		fmt.Fprintln(out, outcome.Message)
		session.Turns = append(session.Turns, types.Turn{
			Role:    types.RoleAssistant,
			Content: outcome.Message,
		})
		session.Reset()
	}
	return scanner.Err()
}
