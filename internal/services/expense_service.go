package services

import (
	"context"
	"fmt"
	"time"

	"budget/internal/core"
	"budget/internal/log"
)

type (
	// Appender is the write side of a transaction store.
	Appender interface {
		Append(ctx context.Context, tx core.Transaction) error
	}

	// TotalsReader computes monthly totals after an append.
	TotalsReader interface {
		MonthlyTotals(ctx context.Context, userID string, year, month int) (core.MonthlyTotals, error)
	}

	// EventPublisher announces stored expenses to other systems.
	EventPublisher interface {
		PublishExpenseRecorded(ctx context.Context, tx core.Transaction) error
	}

	// AddExpenseInput carries the raw, untrusted fields of a new expense. ID
	// is optional; an empty ID is generated.
	AddExpenseInput struct {
		UserID   string
		Amount   string
		Category string
		Date     string
		Note     string
		ID       string
	}

	// AddExpenseResult reports the stored id and the refreshed totals of the
	// expense's month. Totals are exact decimal strings.
	AddExpenseResult struct {
		ID      string
		Month   string
		Income  string
		Expense string
		Net     string
	}

	Option func(*ExpenseRecorder)
)

// ExpenseRecorder validates raw expense input, appends the resulting EXPENSE
// transaction and returns the month's totals.
type ExpenseRecorder struct {
	store     Appender
	totals    TotalsReader
	publisher EventPublisher
	ids       IDGenerator
	now       func() time.Time
	logger    *log.Logger
}

// WithClock sets the clock used for "today" and for clock-based ids.
func WithClock(now func() time.Time) Option {
	return func(r *ExpenseRecorder) { r.now = now }
}

func WithIDGenerator(ids IDGenerator) Option {
	return func(r *ExpenseRecorder) { r.ids = ids }
}

// WithPublisher enables ExpenseRecorded events after each successful append.
func WithPublisher(p EventPublisher) Option {
	return func(r *ExpenseRecorder) { r.publisher = p }
}

func WithLogger(l *log.Logger) Option {
	return func(r *ExpenseRecorder) { r.logger = l.WithComponent(log.ComponentExpense) }
}

func NewExpenseRecorder(store Appender, totals TotalsReader, opts ...Option) *ExpenseRecorder {
	r := &ExpenseRecorder{
		store:  store,
		totals: totals,
		now:    time.Now,
		logger: log.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.ids == nil {
		r.ids = ClockIDs{Now: r.now}
	}
	return r
}

// AddExpense validates amount, category and date in that order and stops at
// the first failure with a *core.ValidationError. Nothing is written unless
// all three pass.
func (r *ExpenseRecorder) AddExpense(ctx context.Context, in AddExpenseInput) (AddExpenseResult, error) {
	tx, err := r.buildExpense(in)
	if err != nil {
		r.logger.WarnContext(ctx, "Expense rejected",
			log.NewFields().
				WithOperation(log.OpValidate).
				WithErrorType(log.ErrorTypeValidation).
				WithError(err).
				ToSlice()...)
		return AddExpenseResult{}, err
	}

	if err := r.store.Append(ctx, tx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to append expense",
			log.FieldOperation, log.OpAppend,
			log.FieldErrorType, log.ErrorTypePersistence,
			log.FieldError, err)
		return AddExpenseResult{}, fmt.Errorf("save expense: %w", err)
	}

	r.logger.InfoContext(ctx, "Expense recorded",
		log.NewFields().
			WithOperation(log.OpAppend).
			WithTransaction(tx.ID, tx.UserID, core.FormatAmount(tx.Amount), tx.Category, tx.OccurredOn.String()).
			ToSlice()...)

	r.publish(ctx, tx)

	totals, err := r.totals.MonthlyTotals(ctx, tx.UserID, tx.OccurredOn.Year(), tx.OccurredOn.Month())
	if err != nil {
		return AddExpenseResult{}, fmt.Errorf("monthly totals: %w", err)
	}

	return AddExpenseResult{
		ID:      tx.ID,
		Month:   tx.OccurredOn.MonthLabel(),
		Income:  core.FormatAmount(totals.Income),
		Expense: core.FormatAmount(totals.Expense),
		Net:     core.FormatAmount(totals.Net),
	}, nil
}

func (r *ExpenseRecorder) buildExpense(in AddExpenseInput) (core.Transaction, error) {
	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	category, err := core.ParseCategory(in.Category)
	if err != nil {
		return core.Transaction{}, err
	}
	occurredOn, err := core.ParseDate(in.Date, core.DateOf(r.now()))
	if err != nil {
		return core.Transaction{}, err
	}

	id := in.ID
	if id == "" {
		id = r.ids.NewID()
	}

	return core.Transaction{
		ID:         id,
		UserID:     in.UserID,
		Amount:     amount,
		Category:   category,
		OccurredOn: occurredOn,
		Note:       core.NormalizeNote(in.Note),
		Type:       core.Expense,
	}, nil
}

// publish never fails the call: the expense is already stored.
func (r *ExpenseRecorder) publish(ctx context.Context, tx core.Transaction) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.PublishExpenseRecorded(ctx, tx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to publish expense recorded event",
			log.FieldOperation, log.OpPublish,
			log.FieldErrorType, log.ErrorTypeNetwork,
			log.FieldTxID, tx.ID,
			log.FieldError, err)
	}
}
