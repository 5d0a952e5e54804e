package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lifewheel/internal/llm"
	"github.com/abhisek/lifewheel/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded narrative requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := store.QueryOpts{}
		opts.Limit, _ = cmd.Flags().GetInt("limit")
		opts.Purpose, _ = cmd.Flags().GetString("purpose")
		if since, _ := cmd.Flags().GetDuration("since"); since > 0 {
			opts.From = time.Now().Add(-since)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No LLM calls recorded.")
			return nil
		}

		fmt.Printf("%5s  %-19s  %-10s  %-11s  %-26s  %6s  %6s  %6s  %s\n",
			"ID", "Time", "Purpose", "Provider", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 108))
		for _, e := range events {
			ok := green("✓")
			if !e.Success {
				ok = red("✗")
			}
			fmt.Printf("%5d  %-19s  %-10s  %-11s  %-26s  %6d  %6d  %6d  %s\n",
				e.ID, e.Timestamp.Local().Format(timeLayout), truncate(e.Purpose, 10),
				truncate(e.Provider, 11), truncate(e.Model, 26),
				e.InputTokens, e.OutputTokens, e.LatencyMs, ok)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid event id %q", args[0])
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

		field := func(name string, v any) { fmt.Printf("%-10s %v\n", name+":", v) }
		field("ID", e.ID)
		field("Time", e.Timestamp.Local().Format(timeLayout))
		field("Provider", e.Provider)
		field("Model", e.Model)
		field("Purpose", e.Purpose)
		field("Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens))
		field("Latency", fmt.Sprintf("%dms", e.LatencyMs))
		if e.Success {
			field("Result", green("ok"))
		} else {
			field("Result", red("failed: "+e.ErrorMessage))
		}

		section := func(title, body string) {
			fmt.Println()
			fmt.Println(bold(title))
			fmt.Println(strings.Repeat("─", 60))
			if body == "" {
				body = dim("(not captured)")
			}
			fmt.Println(body)
		}
		section("Request", e.RequestBody)
		section("Response", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		fmt.Println(bold("Usage by purpose"))
		fmt.Printf("%-12s  %6s  %10s  %10s  %8s\n", "Purpose", "Calls", "Input", "Output", "Avg ms")
		fmt.Println(strings.Repeat("─", 54))
		var calls, in, out int
		for _, u := range byPurpose {
			fmt.Printf("%-12s  %6d  %10d  %10d  %8d\n",
				truncate(u.Purpose, 12), u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
			calls += u.Calls
			in += u.InputTokens
			out += u.OutputTokens
		}
		fmt.Println(strings.Repeat("─", 54))
		fmt.Printf("%-12s  %6d  %10d  %10d\n", "total", calls, in, out)

		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(byModel) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Println(bold("Estimated cost (USD)"))
		fmt.Printf("%-30s  %6s  %10s\n", "Model", "Calls", "Cost")
		fmt.Println(strings.Repeat("─", 50))
		var (
			total    float64
			unpriced []string
		)
		for _, u := range byModel {
			cost := llm.LookupCost(u.Model)
			if cost == nil {
				unpriced = append(unpriced, u.Model)
				fmt.Printf("%-30s  %6d  %10s\n", truncate(u.Model, 30), u.Calls, "?")
				continue
			}
			c := cost.Cost(u.InputTokens, u.OutputTokens)
			total += c
			fmt.Printf("%-30s  %6d  %10s\n", truncate(u.Model, 30), u.Calls, formatCost(c))
		}
		fmt.Println(strings.Repeat("─", 50))
		fmt.Printf("%-30s  %6s  %10s\n", "total", "", formatCost(total))
		if len(unpriced) > 0 {
			fmt.Println(dim("no pricing for: " + strings.Join(unpriced, ", ")))
		}
		return nil
	},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show one purpose (e.g. "+llm.PurposeNarrative+")")
	llmListCmd.Flags().Duration("since", 0, "Only show calls newer than this (e.g. 24h)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
