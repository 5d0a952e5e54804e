package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lifewheel/internal/advice"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or edit the intro and advice templates",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		cur, err := s.SettingsRepo().Get(cmd.Context())
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		def := advice.DefaultSettings()
		for _, slot := range advice.Slots {
			tag := ""
			if cur.Get(slot) == def.Get(slot) {
				tag = dim(" (default)")
			}
			fmt.Printf("%s%s\n  %s\n\n", bold(string(slot)), tag, cur.Get(slot))
		}
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <slot> <text>",
	Short: "Replace one template (slots: intro, low, high, unbalanced)",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := advice.ParseSlot(args[0])
		if err != nil {
			return err
		}
		text := strings.TrimSpace(strings.Join(args[1:], " "))

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		cur, err := s.SettingsRepo().Get(ctx)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		next := cur.With(slot, text)
		if err := next.Validate(); err != nil {
			return err
		}
		if err := s.SettingsRepo().Put(ctx, next); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		fmt.Printf("Saved %s.\n", slot)
		return nil
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the built-in templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.SettingsRepo().Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset settings: %w", err)
		}
		fmt.Println("Settings restored to defaults.")
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}
