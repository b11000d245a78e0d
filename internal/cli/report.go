package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"budget/internal/core"
)

// TotalsReader is what the report command needs from report.Service.
type TotalsReader interface {
	MonthlyTotals(ctx context.Context, userID string, year, month int) (core.MonthlyTotals, error)
}

// PrintMonthlyTotals writes the totals of a "YYYY-MM" month for userID.
func PrintMonthlyTotals(ctx context.Context, w io.Writer, reader TotalsReader, userID, month string) error {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return fmt.Errorf("month must be in format YYYY-MM: %q", month)
	}

	totals, err := reader.MonthlyTotals(ctx, userID, t.Year(), int(t.Month()))
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Month: %s\n", core.MonthLabel(t.Year(), int(t.Month())))
	fmt.Fprintf(w, "Income: $%s\n", core.FormatAmount(totals.Income))
	fmt.Fprintf(w, "Expense: $%s\n", core.FormatAmount(totals.Expense))
	fmt.Fprintf(w, "Net: $%s\n", core.FormatAmount(totals.Net))
	return nil
}
