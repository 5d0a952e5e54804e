package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lifewheel/internal/account"
	"github.com/abhisek/lifewheel/internal/history"
	"github.com/abhisek/lifewheel/internal/store"
	"github.com/abhisek/lifewheel/internal/wheel"
)

var historyCmd = &cobra.Command{
	Use:   "history <mobile>",
	Short: "Show a user's assessments and trend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		window, _ := cmd.Flags().GetInt("window")
		showNarrative, _ := cmd.Flags().GetBool("narrative")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		u, err := s.UserRepo().GetByContact(ctx, account.NormalizeMobile(args[0]))
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no user registered with mobile %s", args[0])
		}
		if err != nil {
			return err
		}

		entries, err := s.HistoryRepo().ListByUser(ctx, u.ID)
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}

		fmt.Printf("%s  %s\n\n", bold(u.Name), dim(u.Contact))
		if len(entries) == 0 {
			fmt.Println("No assessments yet.")
			return nil
		}

		set := wheel.DefaultCategories()
		fmt.Printf("%-16s  %7s  %7s  %s\n", "Date", "Average", "Spread", "Label")
		fmt.Println(strings.Repeat("─", 56))
		for _, e := range history.Newest(entries) {
			res, err := wheel.Classify(set, e.Scores)
			if err != nil {
				fmt.Printf("%-16s  %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"), dim("incomplete entry"))
				continue
			}
			fmt.Printf("%-16s  %7.1f  %7.2f  %s\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04"), res.Mean, res.StdDev, labelColor(res.Label))
			if showNarrative && e.Narrative != "" {
				fmt.Println(dim("  " + strings.ReplaceAll(e.Narrative, "\n", "\n  ")))
			}
		}

		points := history.Trend(entries, set, window)
		fmt.Println()
		fmt.Println(bold("Trend"))
		for _, p := range points {
			fmt.Printf("%-8s  %s  %.1f\n", p.Label, scoreBar(p.Average, 20), p.Average)
		}
		if len(points) > 1 {
			d := history.Delta(points)
			switch {
			case d > 0:
				fmt.Println(green(fmt.Sprintf("▲ +%.1f over the last %d check-ins", d, len(points))))
			case d < 0:
				fmt.Println(red(fmt.Sprintf("▼ %.1f over the last %d check-ins", d, len(points))))
			default:
				fmt.Println(dim("● steady"))
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("window", "w", history.DefaultWindow, "Number of entries in the trend")
	historyCmd.Flags().Bool("narrative", false, "Print the stored analysis under each entry")
}
