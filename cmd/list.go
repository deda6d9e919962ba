package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/itsderek23/subtle/config"
	"github.com/itsderek23/subtle/internal/display"
	"github.com/itsderek23/subtle/internal/session"
)

func newListCmd() *cobra.Command {
	var jsonOutput bool
	var projectFilter string

	cmd := &cobra.Command{
		Use:   "list [flags]",
		Short: "List recorded sessions",
		Long:  "List recorded sessions, optionally filtered by project name",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions := session.All(projectsDir())
			if len(sessions) == 0 {
				fmt.Println("No sessions found.")
				return nil
			}

			if projectFilter != "" {
				var filtered []session.LogFile
				for _, s := range sessions {
					if strings.Contains(strings.ToLower(s.ProjectName()), strings.ToLower(projectFilter)) {
						filtered = append(filtered, s)
					}
				}
				sessions = filtered
				if len(sessions) == 0 {
					fmt.Printf("No sessions found for project matching '%s'\n", projectFilter)
					return nil
				}
			}

			rows := make([]display.SessionRow, 0, len(sessions))
			for _, lf := range sessions {
				messages, err := lf.Messages()
				if err != nil {
					continue
				}
				rows = append(rows, display.SessionRow{
					LogFile: lf,
					Stats:   session.ComputeStats(messages),
				})
			}

			if jsonOutput {
				data, err := json.MarshalIndent(rows, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal sessions to JSON: %w", err)
				}
				fmt.Println(string(data))
			} else {
				display.PrintSessionsTable(rows, os.Stdout)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().StringVarP(&projectFilter, "project", "p", "", "Filter sessions by project name (case-insensitive substring match)")

	return cmd
}

// projectsDir resolves the session log location from config, falling back to
// the standard path.
func projectsDir() string {
	if dir := config.Load().ProjectsDir; dir != "" {
		return dir
	}
	return session.DefaultProjectsDir()
}
