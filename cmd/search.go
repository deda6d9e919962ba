package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/itsderek23/subtle/internal/search"
	"github.com/itsderek23/subtle/internal/session"
)

func newSearchCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search recorded sessions",
		Long:  "Search across all sessions, or within one session's messages with --session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]

			if sessionID != "" {
				lf, err := session.Resolve(projectsDir(), sessionID)
				if err != nil {
					return err
				}
				indices, err := search.MessageIndices(lf.Path, query)
				if err != nil {
					return fmt.Errorf("search failed: %w", err)
				}
				if len(indices) == 0 {
					fmt.Printf("No messages matching %q in session %s\n", query, sessionID)
					return nil
				}
				fmt.Printf("Messages matching %q in session %s:\n", query, sessionID)
				for _, idx := range indices {
					fmt.Printf("  #%d\n", idx)
				}
				return nil
			}

			ids := search.Sessions(cmd.Context(), session.All(projectsDir()), query)
			if len(ids) == 0 {
				fmt.Printf("No sessions matching %q\n", query)
				return nil
			}
			fmt.Printf("Sessions matching %q:\n", query)
			for _, id := range ids {
				fmt.Printf("  %s\n", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "Search within a single session's messages")

	return cmd
}
