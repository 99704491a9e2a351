package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Inspect registered accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered users",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		users, err := s.UserRepo().List(context.Background())
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(users) == 0 {
			fmt.Fprintln(out, "No users found.")
			return nil
		}

		// Header.
		fmt.Fprintf(out, "%-5s  %-24s  %-32s  %s\n", "ID", "Username", "Email", "Created")
		fmt.Fprintln(out, strings.Repeat("─", 84))

		for _, u := range users {
			name := u.Username
			if len(name) > 24 {
				name = name[:21] + "..."
			}
			email := u.Email
			if len(email) > 32 {
				email = email[:29] + "..."
			}
			fmt.Fprintf(out, "%-5d  %-24s  %-32s  %s\n",
				u.ID, name, email, u.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		}

		fmt.Fprintf(out, "\n%d users\n", len(users))
		return nil
	},
}

func init() {
	usersCmd.AddCommand(usersListCmd)
}
