package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all users and auth events",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("refusing to delete data without --yes")
		}

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		users, err := s.UserRepo().DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("delete users: %w", err)
		}
		events, err := s.EventRepo().DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("delete events: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d users and %d events.\n", users, events)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
