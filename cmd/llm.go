package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/abhisek/mathctx/internal/store"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request/response events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM events found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-14s  %-10s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Provider", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 112))

		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-14s  %-10s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				e.Provider,
				truncate(e.Model, 28),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		printLLMEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}
		printUsage(out, usageByModel(events))
		return nil
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. context-draft)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}

func printLLMEvent(out io.Writer, e *store.LLMEvent) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintf(out, "ID:        %d\n", e.ID)
	fmt.Fprintf(out, "Time:      %s (%s)\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"), humanize.Time(e.Timestamp))
	fmt.Fprintf(out, "Provider:  %s\n", e.Provider)
	fmt.Fprintf(out, "Model:     %s\n", e.Model)
	fmt.Fprintf(out, "Purpose:   %s\n", e.Purpose)
	fmt.Fprintf(out, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
	fmt.Fprintf(out, "Latency:   %dms\n", e.LatencyMs)
	fmt.Fprintf(out, "Success:   %v\n", e.Success)
	if e.ErrorMessage != "" {
		fmt.Fprintf(out, "Error:     %s\n", e.ErrorMessage)
	}

	for _, part := range []struct{ title, body string }{
		{"REQUEST", e.RequestBody},
		{"RESPONSE", e.ResponseBody},
	} {
		fmt.Fprintf(out, "\n%s\n%s\n%s\n", sep, part.title, sep)
		if part.body == "" {
			fmt.Fprintln(out, "(not captured)")
			continue
		}
		fmt.Fprintln(out, part.body)
	}
}

type modelUsage struct {
	Provider     string
	Model        string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
}

// usageByModel aggregates events per provider and model, busiest first.
func usageByModel(events []store.LLMEvent) []modelUsage {
	byKey := make(map[string]*modelUsage)
	for _, e := range events {
		key := e.Provider + "/" + e.Model
		u, ok := byKey[key]
		if !ok {
			u = &modelUsage{Provider: e.Provider, Model: e.Model}
			byKey[key] = u
		}
		u.Calls++
		if !e.Success {
			u.Failures++
		}
		u.InputTokens += e.InputTokens
		u.OutputTokens += e.OutputTokens
		u.LatencyMs += e.LatencyMs
	}

	out := make([]modelUsage, 0, len(byKey))
	for _, u := range byKey {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Calls != out[j].Calls {
			return out[i].Calls > out[j].Calls
		}
		return out[i].Provider+out[i].Model < out[j].Provider+out[j].Model
	})
	return out
}

func printUsage(out io.Writer, usage []modelUsage) {
	line := strings.Repeat("─", 84)
	fmt.Fprintf(out, "%-10s  %-28s  %6s  %6s  %10s  %10s  %8s\n",
		"Provider", "Model", "Calls", "Failed", "Input", "Output", "Avg Ms")
	fmt.Fprintln(out, line)

	var calls, in, outTokens int
	for _, u := range usage {
		fmt.Fprintf(out, "%-10s  %-28s  %6d  %6d  %10s  %10s  %8d\n",
			u.Provider, truncate(u.Model, 28), u.Calls, u.Failures,
			humanize.Comma(int64(u.InputTokens)), humanize.Comma(int64(u.OutputTokens)),
			u.LatencyMs/int64(u.Calls))
		calls += u.Calls
		in += u.InputTokens
		outTokens += u.OutputTokens
	}

	fmt.Fprintln(out, line)
	fmt.Fprintf(out, "%-10s  %-28s  %6d  %6s  %10s  %10s\n",
		"TOTAL", "", calls, "", humanize.Comma(int64(in)), humanize.Comma(int64(outTokens)))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
