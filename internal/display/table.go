package display

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/itsderek23/subtle/internal/formatters"
	"github.com/itsderek23/subtle/internal/session"
)

// SessionRow pairs a discovered log with its computed stats for listing.
type SessionRow struct {
	LogFile session.LogFile
	Stats   session.Stats
}

// PrintSessionsTable prints discovered sessions in a formatted table.
func PrintSessionsTable(rows []SessionRow, writer io.Writer) {
	w := tabwriter.NewWriter(writer, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SESSION ID\tPROJECT\tSTARTED\tDURATION\tTOKENS IN/OUT\tCOMMITS\tERRORS")
	for _, row := range rows {
		started := ""
		if !row.Stats.StartTime.IsZero() {
			started = row.Stats.StartTime.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s/%s\t%d\t%d\n",
			row.LogFile.SessionID(),
			row.LogFile.ProjectName(),
			started,
			formatters.Duration(row.Stats.DurationSeconds),
			formatters.Tokens(row.Stats.InputTokens),
			formatters.Tokens(row.Stats.OutputTokens),
			row.Stats.CommitCount,
			row.Stats.ErrorCount,
		)
	}
	w.Flush()
}
