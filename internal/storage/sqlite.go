package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"budget/internal/core"
	"budget/internal/log"

	_ "modernc.org/sqlite"
)

const (
	selectAllTransactions = `SELECT transaction_id, user_id, amount, category, occurred_on, note, tx_type
FROM transactions ORDER BY seq`
	deleteAllTransactions = `DELETE FROM transactions`
	insertTransaction     = `INSERT INTO transactions
(transaction_id, user_id, amount, category, occurred_on, note, tx_type)
VALUES (?, ?, ?, ?, ?, ?, ?)`
)

// SQLiteStore keeps transactions in an embedded SQLite table. Amounts and
// dates are stored as the same strings the file store writes, and insertion
// order is the autoincrement sequence.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadAll implements TransactionStore
func (s *SQLiteStore) LoadAll(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, selectAllTransactions)
	if err != nil {
		return nil, fmt.Errorf("%w: query transactions: %w", core.ErrPersistence, err)
	}
	defer rows.Close()

	txs := []core.Transaction{}
	for i := 0; rows.Next(); i++ {
		var id, user, amount, category, occurredOn, note, txType string
		if err := rows.Scan(&id, &user, &amount, &category, &occurredOn, &note, &txType); err != nil {
			return nil, fmt.Errorf("%w: scan row %d: %w", core.ErrPersistence, i, err)
		}
		tx, err := fromRecord(record{
			TransactionID: &id,
			UserID:        &user,
			Amount:        &amount,
			Category:      &category,
			OccurredOn:    &occurredOn,
			Note:          &note,
			TxType:        &txType,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", core.ErrPersistence, i, err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate transactions: %w", core.ErrPersistence, err)
	}
	return txs, nil
}

// SaveAll implements TransactionStore. The table is replaced in a single SQL
// transaction.
func (s *SQLiteStore) SaveAll(ctx context.Context, txs []core.Transaction) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if _, err := sqlTx.ExecContext(ctx, deleteAllTransactions); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := sqlTx.PrepareContext(ctx, insertTransaction)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		_, err := stmt.ExecContext(ctx,
			tx.ID,
			tx.UserID,
			core.FormatAmount(tx.Amount),
			tx.Category,
			tx.OccurredOn.String(),
			tx.Note,
			string(tx.Type))
		if err != nil {
			return fmt.Errorf("insert transaction %s: %w", tx.ID, err)
		}
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	loggerFrom(ctx).DebugContext(ctx, "Transactions saved to SQLite", "path", s.path, "count", len(txs))
	return nil
}

// Append implements TransactionStore
func (s *SQLiteStore) Append(ctx context.Context, tx core.Transaction) error {
	txs, err := s.LoadAll(ctx)
	if err != nil {
		return err
	}
	if err := s.SaveAll(ctx, append(txs, tx)); err != nil {
		return err
	}

	loggerFrom(ctx).InfoContext(ctx, "Transaction saved to SQLite",
		log.FieldOperation, log.OpAppend,
		log.FieldTxID, tx.ID,
		log.FieldUserID, tx.UserID,
		log.FieldAmount, core.FormatAmount(tx.Amount),
		log.FieldCategory, tx.Category,
		log.FieldOccurredOn, tx.OccurredOn.String())
	return nil
}
