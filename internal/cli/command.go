package cli

import (
	"context"
	"errors"
	"io"
)

// ErrUsage reports command-line arguments that match no command.
var ErrUsage = errors.New("usage")

// Usage is printed for ErrUsage.
const Usage = `usage:
  budget                 add expenses interactively
  budget report YYYY-MM  print monthly totals for the configured user
`

// Execute runs the command selected by args: no arguments starts the prompt,
// "report YYYY-MM" prints that month's totals.
func Execute(ctx context.Context, args []string, in io.Reader, out io.Writer, rec Recorder, reports TotalsReader, userID string) error {
	switch {
	case len(args) == 0:
		return NewPrompt(in, out, rec, userID).Run(ctx)
	case len(args) == 2 && args[0] == "report":
		return PrintMonthlyTotals(ctx, out, reports, userID, args[1])
	default:
		return ErrUsage
	}
}
