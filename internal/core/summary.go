package core

// Add folds one transaction into the totals. INCOME counts as income and any
// other type label as expense; Net is recomputed every time.
func (m MonthlyTotals) Add(tx Transaction) MonthlyTotals {
	if tx.Type.IsIncome() {
		m.Income = m.Income.Add(tx.Amount)
	} else {
		m.Expense = m.Expense.Add(tx.Amount)
	}
	m.Net = m.Income.Sub(m.Expense)
	return m
}
