package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/lifewheel/internal/history"
	"github.com/abhisek/lifewheel/internal/store"
	"github.com/abhisek/lifewheel/internal/wheel"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	dim   = color.New(color.FgHiBlack).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	amber = color.New(color.FgYellow).SprintFunc()
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cross-user category averages",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		var (
			users   []store.User
			entries []wheel.Entry
		)
		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			var err error
			users, err = s.UserRepo().List(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			entries, err = s.HistoryRepo().ListAll(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return fmt.Errorf("load stats: %w", err)
		}

		set := wheel.DefaultCategories()
		sum := history.Summarize(entries, set)

		fmt.Println(bold("Overview"))
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("%-20s  %d\n", "Registered users", len(users))
		fmt.Printf("%-20s  %d\n", "Users with entries", sum.Users)
		fmt.Printf("%-20s  %d\n", "Entries", sum.Entries)
		if sum.Entries == 0 {
			fmt.Println()
			fmt.Println(dim("No assessments recorded yet."))
			return nil
		}
		fmt.Printf("%-20s  %.1f\n", "Overall average", sum.Average)
		if c, ok := set.Lookup(sum.Weakest); ok {
			fmt.Printf("%-20s  %s\n", "Weakest area", red(c.Name))
		}
		if c, ok := set.Lookup(sum.Strongest); ok {
			fmt.Printf("%-20s  %s\n", "Strongest area", green(c.Name))
		}

		fmt.Println()
		fmt.Println(bold("Category averages"))
		fmt.Println(strings.Repeat("─", 48))
		for _, a := range history.CrossUserCategoryAverages(entries, set) {
			fmt.Printf("%-16s  %-20s  %4.1f  %s\n",
				a.Category.Name, scoreBar(a.Average, 20), a.Average, dim(fmt.Sprintf("(%d)", a.Count)))
		}
		return nil
	},
}

// scoreBar renders v on the 1-10 scale as a bar of width cells.
func scoreBar(v float64, width int) string {
	filled := int(v / float64(wheel.MaxScore) * float64(width))
	filled = max(0, min(width, filled))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case v >= 7:
		return green(bar)
	case v < wheel.LowMean:
		return red(bar)
	default:
		return amber(bar)
	}
}

// labelColor prints a classification in its traffic-light color.
func labelColor(label wheel.Classification) string {
	switch label {
	case wheel.BalancedOrHigh:
		return green(string(label))
	case wheel.Low:
		return red(string(label))
	default:
		return amber(string(label))
	}
}
