package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/itsderek23/subtle/internal/formatters"
	"github.com/itsderek23/subtle/internal/session"
)

func newInfoCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "info <session>",
		Short: "Show a session's statistics and message breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lf, err := session.Resolve(projectsDir(), args[0])
			if err != nil {
				return err
			}
			messages, err := lf.Messages()
			if err != nil {
				return fmt.Errorf("failed to parse session: %w", err)
			}
			stats := session.ComputeStats(messages)
			breakdown := session.ComputeBreakdown(messages)

			if jsonOutput {
				data, err := json.MarshalIndent(map[string]any{
					"session_id":   lf.SessionID(),
					"project_path": lf.ProjectPath(),
					"stats":        stats,
					"breakdown":    breakdown,
				}, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal session info: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			fmt.Printf("Session %s — %s\n", lf.SessionID(), lf.ProjectPath())
			fmt.Printf("Duration %s · agent %s · tools %s\n",
				formatters.Duration(stats.DurationSeconds),
				formatters.Duration(stats.AgentTimeSeconds),
				formatters.Duration(stats.ToolTimeSeconds))
			fmt.Printf("Tokens %s in / %s out · %d commits · %d errors\n",
				formatters.Tokens(stats.InputTokens), formatters.Tokens(stats.OutputTokens),
				stats.CommitCount, stats.ErrorCount)
			fmt.Printf("Tool edits %s", formatters.LOC(stats.ToolLOC))
			if stats.GitLOC != nil {
				fmt.Printf(" · git %s", formatters.LOC(*stats.GitLOC))
			}
			fmt.Println()

			if breakdown.Total > 0 {
				fmt.Printf("\nMessages (%d):\n", breakdown.Total)
				for _, entry := range breakdown.Breakdown {
					fmt.Printf("  %-24s %d\n", entry.Category, entry.Count)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
