package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/mathpractice/internal/llm"
	"github.com/abhisek/mathpractice/internal/store"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, _, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM requests recorded.")
			return nil
		}
		fmt.Fprintln(out, renderEvents(events))
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full prompt and reply of one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		s, _, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		writeEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		fmt.Fprintln(out, "Usage by purpose")
		fmt.Fprintln(out, renderPurposeUsage(byPurpose))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Estimated cost (USD)")
		fmt.Fprintln(out, renderModelCost(byModel))
		return nil
	},
}

func renderEvents(events []store.LLMEvent) string {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		rows = append(rows, []string{
			strconv.Itoa(e.ID),
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Purpose,
			truncate(e.Model, 28),
			strconv.Itoa(e.InputTokens),
			strconv.Itoa(e.OutputTokens),
			strconv.FormatInt(e.LatencyMs, 10),
			ok,
		})
	}
	return renderTable([]string{"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK"}, rows)
}

func renderPurposeUsage(stats []store.PurposeUsage) string {
	var calls, in, out int
	rows := make([][]string, 0, len(stats)+1)
	for _, st := range stats {
		rows = append(rows, []string{
			st.Purpose,
			strconv.Itoa(st.Calls),
			strconv.Itoa(st.InputTokens),
			strconv.Itoa(st.OutputTokens),
			strconv.FormatInt(st.AvgLatencyMs, 10),
		})
		calls += st.Calls
		in += st.InputTokens
		out += st.OutputTokens
	}
	rows = append(rows, []string{"TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(out), ""})
	return renderTable([]string{"Purpose", "Calls", "Input", "Output", "Avg ms"}, rows)
}

func renderModelCost(usage []store.ModelUsage) string {
	var total float64
	var unpriced []string
	rows := make([][]string, 0, len(usage)+1)
	for _, mu := range usage {
		cost := "?"
		if price, ok := llm.PriceFor(mu.Model); ok {
			c := price.Cost(llm.Usage{Input: mu.InputTokens, Output: mu.OutputTokens})
			total += c
			cost = formatCost(c)
		} else {
			unpriced = append(unpriced, mu.Model)
		}
		rows = append(rows, []string{
			truncate(mu.Model, 32),
			strconv.Itoa(mu.Calls),
			strconv.Itoa(mu.InputTokens),
			strconv.Itoa(mu.OutputTokens),
			cost,
		})
	}

	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	rows = append(rows, []string{label, "", "", "", formatCost(total)})

	s := renderTable([]string{"Model", "Calls", "Input", "Output", "Cost"}, rows)
	if len(unpriced) > 0 {
		s += "\nNo pricing for: " + strings.Join(unpriced, ", ")
	}
	return s
}

func writeEvent(w io.Writer, e *store.LLMEvent) {
	fmt.Fprintf(w, "ID:        %d\n", e.ID)
	fmt.Fprintf(w, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Provider:  %s\n", e.Provider)
	fmt.Fprintf(w, "Model:     %s\n", e.Model)
	fmt.Fprintf(w, "Purpose:   %s\n", e.Purpose)
	fmt.Fprintf(w, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
	fmt.Fprintf(w, "Latency:   %dms\n", e.LatencyMs)
	if e.ErrorMessage != "" {
		fmt.Fprintf(w, "Error:     %s\n", e.ErrorMessage)
	}

	sep := strings.Repeat("─", 60)
	for _, part := range []struct{ title, body string }{
		{"PROMPT", e.RequestBody},
		{"REPLY", e.ResponseBody},
	} {
		body := part.body
		if body == "" {
			body = "(none)"
		}
		fmt.Fprintf(w, "\n%s\n%s\n%s\n%s\n", sep, part.title, sep, body)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show this purpose (problem-gen or feedback)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
