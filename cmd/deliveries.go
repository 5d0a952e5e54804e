package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lifewheel/internal/store"
)

var deliveriesCmd = &cobra.Command{
	Use:   "deliveries",
	Short: "List recorded report and broadcast requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		limit, _ := cmd.Flags().GetInt("limit")
		switch kind {
		case "", store.DeliveryReport, store.DeliveryBroadcast:
		default:
			return fmt.Errorf("unknown kind %q (want %s or %s)", kind, store.DeliveryReport, store.DeliveryBroadcast)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		list, err := s.DeliveryRepo().List(cmd.Context(), kind, limit)
		if err != nil {
			return fmt.Errorf("list deliveries: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No deliveries recorded.")
			return nil
		}

		fmt.Printf("%-16s  %-9s  %-8s  %-28s  %s\n", "Time", "Kind", "Channel", "To", "Message")
		fmt.Println(strings.Repeat("─", 96))
		for _, d := range list {
			to := d.Recipient
			if d.Kind == store.DeliveryBroadcast {
				to = fmt.Sprintf("%d recipients", d.Recipients)
			}
			msg := strings.ReplaceAll(d.Message, "\n", " ")
			fmt.Printf("%-16s  %-9s  %-8s  %-28s  %s\n",
				d.CreatedAt.Local().Format("2006-01-02 15:04"), d.Kind, d.Channel, truncate(to, 28), truncate(msg, 40))
		}
		return nil
	},
}

func init() {
	deliveriesCmd.Flags().StringP("kind", "k", "", "Filter by kind (report, broadcast)")
	deliveriesCmd.Flags().IntP("limit", "n", 20, "Number of records to show")
}
