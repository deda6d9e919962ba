package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/itsderek23/subtle/internal/display"
	"github.com/itsderek23/subtle/internal/session"
	"github.com/itsderek23/subtle/internal/transcript"
)

func newTailCmd() *cobra.Command {
	var lastN int
	var follow bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "tail <session>",
		Short: "Show the end of a session, optionally following new activity",
		Long:  "Render the last messages of a session as turns; with --follow, keep polling the log and render turns as they are appended",
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

			start := 0
			if len(messages) > lastN {
				start = len(messages) - lastN
			}
			turns := transcript.NewAssembler().Assemble(messages[start:])
			display.RenderTurns(os.Stdout, turns)

			if !follow {
				return nil
			}

			follower := transcript.NewFollower(lf.Path, interval)
			// Skip what was already rendered.
			if _, err := follower.Poll(); err != nil {
				return fmt.Errorf("failed to read session log: %w", err)
			}
			err = follower.Follow(cmd.Context(), func(batch []transcript.Message) {
				display.RenderTurns(os.Stdout, transcript.NewAssembler().Assemble(batch))
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&lastN, "lines", "n", 10, "Number of trailing messages to render")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep polling the log for new messages")
	cmd.Flags().DurationVar(&interval, "interval", transcript.DefaultPollInterval, "Poll interval when following")

	return cmd
}
