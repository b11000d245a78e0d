// Package report derives monthly totals from the stored transactions.
package report

import (
	"context"
	"fmt"

	"budget/internal/core"
)

// Loader is the read side of a transaction store.
type Loader interface {
	LoadAll(ctx context.Context) ([]core.Transaction, error)
}

// Service computes monthly totals from whatever the store holds at call time.
// Nothing is cached.
type Service struct {
	store Loader
}

func NewService(store Loader) *Service {
	return &Service{store: store}
}

// MonthlyTotals loads every transaction and sums the ones owned by userID
// that occurred in the given year and month.
func (s *Service) MonthlyTotals(ctx context.Context, userID string, year, month int) (core.MonthlyTotals, error) {
	txs, err := s.store.LoadAll(ctx)
	if err != nil {
		return core.MonthlyTotals{}, fmt.Errorf("load transactions: %w", err)
	}
	return Summarize(txs, userID, year, month), nil
}

// Summarize is the pure part of MonthlyTotals. It returns zeros when nothing
// matches.
func Summarize(txs []core.Transaction, userID string, year, month int) core.MonthlyTotals {
	totals := core.ZeroTotals()
	for _, tx := range txs {
		if tx.UserID != userID || !tx.OccurredOn.InMonth(year, month) {
			continue
		}
		totals = totals.Add(tx)
	}
	return totals
}
