package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/passgate/internal/store"
)

var eventKinds = []store.AuthEventKind{
	store.EventRegister,
	store.EventLogin,
	store.EventLoginFailed,
	store.EventLogout,
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect the auth audit trail",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent auth events, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		kind, _ := cmd.Flags().GetString("kind")

		if kind != "" && !validKind(kind) {
			names := make([]string, len(eventKinds))
			for i, k := range eventKinds {
				names[i] = string(k)
			}
			return fmt.Errorf("invalid kind %q: must be one of %s", kind, strings.Join(names, ", "))
		}

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryAuthEvents(context.Background(), store.QueryOpts{
			Limit: limit,
			Kind:  store.AuthEventKind(kind),
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No auth events found.")
			return nil
		}

		// Header.
		fmt.Fprintf(out, "%-6s  %-19s  %-12s  %-6s  %s\n", "Seq", "Timestamp", "Kind", "User", "Email")
		fmt.Fprintln(out, strings.Repeat("─", 80))

		for _, e := range events {
			user := "-"
			if e.UserID != 0 {
				user = fmt.Sprint(e.UserID)
			}
			fmt.Fprintf(out, "%-6d  %-19s  %-12s  %-6s  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Kind,
				user,
				e.Email,
			)
		}
		return nil
	},
}

func validKind(kind string) bool {
	for _, k := range eventKinds {
		if string(k) == kind {
			return true
		}
	}
	return false
}

func init() {
	eventsListCmd.Flags().Int("limit", 20, "Maximum number of events to show (0 = all)")
	eventsListCmd.Flags().String("kind", "", "Only show events of this kind (register, login, login_failed, logout)")

	eventsCmd.AddCommand(eventsListCmd)
}
