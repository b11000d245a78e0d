package report

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget/internal/core"
	"budget/internal/storage"
)

type stubLoader struct {
	txs   []core.Transaction
	err   error
	calls int
}

func (s *stubLoader) LoadAll(context.Context) ([]core.Transaction, error) {
	s.calls++
	return s.txs, s.err
}

func tx(user, amount string, typ core.TxType, y, m, d int) core.Transaction {
	return core.Transaction{
		ID:         "TX-" + amount,
		UserID:     user,
		Amount:     decimal.RequireFromString(amount),
		Category:   "Misc",
		OccurredOn: core.NewDate(y, m, d),
		Type:       typ,
	}
}

func TestSummarize(t *testing.T) {
	txs := []core.Transaction{
		tx("jason", "10.00", core.Expense, 2020, 2, 10),
		tx("jason", "0.10", core.Expense, 2020, 2, 29),
		tx("jason", "0.20", core.Expense, 2020, 2, 1),
		tx("jason", "1500.00", core.Income, 2020, 2, 1),
		tx("jason", "99.99", "income", 2020, 2, 15), // lower-case label
		tx("jason", "7.00", core.Expense, 2020, 3, 1), // other month
		tx("jason", "8.00", core.Expense, 2019, 2, 1), // other year
		tx("ana", "50.00", core.Expense, 2020, 2, 10), // other user
	}

	got := Summarize(txs, "jason", 2020, 2)

	assert.Equal(t, "1599.99", core.FormatAmount(got.Income))
	assert.Equal(t, "10.30", core.FormatAmount(got.Expense))
	assert.Equal(t, "1589.69", core.FormatAmount(got.Net))
	assert.True(t, got.Net.Equal(got.Income.Sub(got.Expense)))
}

func TestSummarize_NoMatches(t *testing.T) {
	got := Summarize(nil, "jason", 2020, 2)

	assert.True(t, got.Income.IsZero())
	assert.True(t, got.Expense.IsZero())
	assert.True(t, got.Net.IsZero())
	assert.Equal(t, "0", core.FormatAmount(got.Net))
}

func TestService_MonthlyTotals(t *testing.T) {
	loader := &stubLoader{txs: []core.Transaction{
		tx("jason", "10.00", core.Expense, 2020, 2, 10),
	}}
	svc := NewService(loader)

	got, err := svc.MonthlyTotals(context.Background(), "jason", 2020, 2)
	require.NoError(t, err)
	assert.Equal(t, "0", core.FormatAmount(got.Income))
	assert.Equal(t, "10.00", core.FormatAmount(got.Expense))
	assert.Equal(t, "-10.00", core.FormatAmount(got.Net))
	assert.Equal(t, 1, loader.calls)

	// Fresh load on every query.
	_, err = svc.MonthlyTotals(context.Background(), "jason", 2020, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, loader.calls)
}

func TestService_MonthlyTotalsPropagatesPersistenceError(t *testing.T) {
	loader := &stubLoader{err: errors.Join(core.ErrPersistence, errors.New("boom"))}

	_, err := NewService(loader).MonthlyTotals(context.Background(), "jason", 2020, 2)
	assert.ErrorIs(t, err, core.ErrPersistence)
}

func TestService_MonthlyTotalsFromFileStore(t *testing.T) {
	ctx := context.Background()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, store.Append(ctx, tx("jason", "12.50", core.Expense, 2021, 6, 3)))
	require.NoError(t, store.Append(ctx, tx("jason", "100.00", core.Income, 2021, 6, 4)))

	got, err := NewService(store).MonthlyTotals(ctx, "jason", 2021, 6)
	require.NoError(t, err)
	assert.Equal(t, "100.00", core.FormatAmount(got.Income))
	assert.Equal(t, "12.50", core.FormatAmount(got.Expense))
	assert.Equal(t, "87.50", core.FormatAmount(got.Net))
}
