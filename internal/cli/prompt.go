package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"budget/internal/core"
	"budget/internal/log"
	"budget/internal/services"
)

// Recorder is what the prompt needs from services.ExpenseRecorder.
type Recorder interface {
	AddExpense(ctx context.Context, in services.AddExpenseInput) (services.AddExpenseResult, error)
}

// errInputClosed ends the loop when stdin is exhausted.
var errInputClosed = errors.New("input closed")

// Prompt is the interactive add-expense loop. It only collects strings and
// prints results; all rules live in the recorder.
type Prompt struct {
	in     io.Reader
	out    io.Writer
	rec    Recorder
	userID string

	lines <-chan string
}

func NewPrompt(in io.Reader, out io.Writer, rec Recorder, userID string) *Prompt {
	return &Prompt{
		in:     in,
		out:    out,
		rec:    rec,
		userID: userID,
	}
}

// Run loops until the user declines another expense, input ends or ctx is
// cancelled. A cancelled ctx abandons the expense being typed without saving
// it. Validation errors are printed and the loop continues; any other error
// is returned.
func (p *Prompt) Run(ctx context.Context) error {
	logger := log.FromContext(ctx)

	stop := make(chan struct{})
	defer close(stop)
	p.lines = readLines(p.in, stop)

	fmt.Fprint(p.out, "\n=== Personal Budget App ===\n")
	fmt.Fprint(p.out, "Feature: Add Expense\n\n")

	for {
		in, err := p.readExpense(ctx)
		if err != nil || ctx.Err() != nil {
			break
		}

		res, err := p.rec.AddExpense(ctx, in)
		switch {
		case core.IsValidationError(err):
			fmt.Fprintf(p.out, "\nInput error: %s\n\n", err)
		case err != nil:
			logger.ErrorContext(ctx, "Failed to record expense", log.FieldError, err)
			return err
		default:
			fmt.Fprint(p.out, "\nSaved\n")
			fmt.Fprintf(p.out, "Transaction ID: %s\n", res.ID)
			fmt.Fprintf(p.out, "Month: %s\n", res.Month)
			fmt.Fprintf(p.out, "Totals -> Income: $%s  Expense: $%s  Net: $%s\n\n", res.Income, res.Expense, res.Net)
		}

		again, err := p.ask(ctx, "Add another expense? (y/n): ")
		if err != nil || strings.ToLower(again) != "y" {
			break
		}
	}

	if ctx.Err() != nil {
		logger.InfoContext(ctx, "Prompt interrupted", log.FieldOperation, log.OpShutdown)
	}
	fmt.Fprint(p.out, "\nDone.\n")
	return nil
}

func (p *Prompt) readExpense(ctx context.Context) (services.AddExpenseInput, error) {
	in := services.AddExpenseInput{UserID: p.userID}
	fields := []struct {
		label string
		dst   *string
	}{
		{"Amount (e.g., 45.90): ", &in.Amount},
		{"Category (e.g., Groceries): ", &in.Category},
		{"Date (YYYY-MM-DD): ", &in.Date},
		{"Note (optional): ", &in.Note},
	}
	for _, f := range fields {
		v, err := p.ask(ctx, f.label)
		if err != nil {
			return in, err
		}
		*f.dst = v
	}
	return in, nil
}

// ask prints label and waits for the next line. It returns ctx.Err() once
// ctx is done, even if a line is already pending.
func (p *Prompt) ask(ctx context.Context, label string) (string, error) {
	fmt.Fprint(p.out, label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !ok {
			return "", errInputClosed
		}
		return strings.TrimSpace(line), nil
	}
}

// readLines scans r on its own goroutine so a blocked read never holds up
// cancellation. The channel is closed at end of input; the goroutine exits
// once stop is closed or the reader returns.
func readLines(r io.Reader, stop <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
	}()
	return lines
}
