package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lifewheel/internal/account"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered users",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		users, err := s.UserRepo().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		if len(users) == 0 {
			fmt.Println("No users registered.")
			return nil
		}

		fmt.Printf("%-20s  %-15s  %4s  %-28s  %-6s  %s\n",
			"Name", "Mobile", "Age", "Email", "Role", "Joined")
		fmt.Println(strings.Repeat("─", 96))
		for _, u := range users {
			role := fmt.Sprintf("%-6s", u.Role)
			if account.Role(u.Role) == account.RoleAdmin {
				role = bold(role)
			}
			email := u.Email
			if email == "" {
				email = "-"
			}
			fmt.Printf("%-20s  %-15s  %4d  %-28s  %s  %s\n",
				truncate(u.Name, 20), u.Contact, u.Age, truncate(email, 28), role,
				u.CreatedAt.Local().Format("2006-01-02"))
		}
		return nil
	},
}
