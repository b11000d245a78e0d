package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"budget/internal/core"
	"budget/internal/log"
)

// DefaultDataFile is used when no path is configured.
const DefaultDataFile = "data.json"

// FileStore keeps every transaction in one JSON document that is rewritten
// in full on each save.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultDataFile
	}
	return &FileStore{path: path}
}

// Path returns the backing record location.
func (s *FileStore) Path() string {
	return s.path
}

// LoadAll implements TransactionStore
func (s *FileStore) LoadAll(_ context.Context) ([]core.Transaction, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []core.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", core.ErrPersistence, s.path, err)
	}

	txs, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}
	return txs, nil
}

// SaveAll implements TransactionStore
func (s *FileStore) SaveAll(ctx context.Context, txs []core.Transaction) error {
	data, err := encodeDocument(txs)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}

	loggerFrom(ctx).DebugContext(ctx, "Transactions saved to file", "path", s.path, "count", len(txs))
	return nil
}

// Append implements TransactionStore
func (s *FileStore) Append(ctx context.Context, tx core.Transaction) error {
	txs, err := s.LoadAll(ctx)
	if err != nil {
		return err
	}
	txs = append(txs, tx)
	if err := s.SaveAll(ctx, txs); err != nil {
		return err
	}

	loggerFrom(ctx).InfoContext(ctx, "Transaction appended",
		log.FieldOperation, log.OpAppend,
		log.FieldTxID, tx.ID,
		log.FieldUserID, tx.UserID,
		log.FieldAmount, core.FormatAmount(tx.Amount),
		log.FieldCategory, tx.Category,
		log.FieldOccurredOn, tx.OccurredOn.String())
	return nil
}
