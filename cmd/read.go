package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/itsderek23/subtle/config"
	"github.com/itsderek23/subtle/internal/display"
	"github.com/itsderek23/subtle/internal/filter"
	"github.com/itsderek23/subtle/internal/search"
	"github.com/itsderek23/subtle/internal/session"
	"github.com/itsderek23/subtle/internal/timeline"
	"github.com/itsderek23/subtle/internal/transcript"
)

func newReadCmd() *cobra.Command {
	var jsonOutput bool
	var stripWidth int
	var filterQuery string

	cmd := &cobra.Command{
		Use:   "read <session>",
		Short: "Reconstruct and display a session's conversation",
		Long:  "Reconstruct a recorded session into turns and render the conversation with its activity strip; --filter narrows the output to turns matching a query",
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

			cfg := config.Load()
			turns := transcript.NewAssembler().Assemble(messages)
			if filterQuery != "" {
				turns = filter.Apply(turns, filterMatches(lf.Path, filterQuery, cfg))
			}

			if jsonOutput {
				data, err := json.MarshalIndent(turns, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal turns: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			stats := session.ComputeStats(messages)
			summary := transcript.Summarize(messages, stats.Totals())

			fmt.Printf("Session %s — %s\n", lf.SessionID(), lf.ProjectPath())
			fmt.Printf("Duration %.0fs · agent %.0fs · tools %.0fs · %d commits · +%d/-%d LOC · %d errors\n\n",
				summary.DurationSeconds, summary.AgentTimeSeconds, summary.ToolTimeSeconds,
				summary.Commits, summary.ToolLOC.Added, summary.ToolLOC.Removed, summary.ErrorCount)

			events := timeline.Merge(timeline.Extract(messages))
			boxes := timeline.Layout(events, float64(stripWidth), cfg.Timeline.MinEventPx)
			display.RenderStrip(os.Stdout, boxes, stripWidth)
			fmt.Println()

			display.RenderTurns(os.Stdout, turns)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output turns as JSON")
	cmd.Flags().IntVar(&stripWidth, "width", 80, "Width of the activity strip in columns")
	cmd.Flags().StringVar(&filterQuery, "filter", "", "Only show turns matching this query")

	return cmd
}

// filterMatches issues the query through the debounced index so the one-shot
// CLI path and an interactive caller share the same issuance behavior.
func filterMatches(logPath, query string, cfg config.Config) filter.MatchSet {
	searcher := func(ctx context.Context, q string) ([]int, error) {
		return search.MessageIndices(logPath, q)
	}

	ix := filter.NewIndex(searcher, time.Duration(cfg.Search.DebounceMs)*time.Millisecond)
	done := make(chan struct{})
	ix.OnUpdate = func() { close(done) }

	ix.SetQuery(query)
	<-done
	return ix.Matches()
}
