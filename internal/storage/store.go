// Package storage holds the durable transaction stores.
//
// Every store exposes the same read-modify-write contract: LoadAll returns
// everything ever appended in insertion order, SaveAll replaces the whole
// record, and Append is LoadAll followed by SaveAll. Append takes no lock;
// concurrent writers against one backing record can lose updates.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"budget/internal/core"
	"budget/internal/log"
)

// TransactionStore is the persistence port used by the report and the
// recorder.
type TransactionStore interface {
	LoadAll(ctx context.Context) ([]core.Transaction, error)
	SaveAll(ctx context.Context, txs []core.Transaction) error
	Append(ctx context.Context, tx core.Transaction) error
}

// record is the serialized form of a transaction. Field names and the
// amount/date string formats are the stable part of the layout.
type record struct {
	TransactionID *string `json:"transaction_id"`
	UserID        *string `json:"user_id"`
	Amount        *string `json:"amount"`
	Category      *string `json:"category"`
	OccurredOn    *string `json:"occurred_on"`
	Note          *string `json:"note"`
	TxType        *string `json:"tx_type"`
}

type document struct {
	Transactions []record `json:"transactions"`
}

func toRecord(tx core.Transaction) record {
	amount := core.FormatAmount(tx.Amount)
	date := tx.OccurredOn.String()
	txType := string(tx.Type)
	return record{
		TransactionID: &tx.ID,
		UserID:        &tx.UserID,
		Amount:        &amount,
		Category:      &tx.Category,
		OccurredOn:    &date,
		Note:          &tx.Note,
		TxType:        &txType,
	}
}

// fromRecord rebuilds a transaction. A missing note reads as empty and a
// missing type as EXPENSE; every other field is required.
func fromRecord(r record) (core.Transaction, error) {
	switch {
	case r.TransactionID == nil:
		return core.Transaction{}, fmt.Errorf("missing transaction_id")
	case r.UserID == nil:
		return core.Transaction{}, fmt.Errorf("missing user_id")
	case r.Amount == nil:
		return core.Transaction{}, fmt.Errorf("missing amount")
	case r.Category == nil:
		return core.Transaction{}, fmt.Errorf("missing category")
	case r.OccurredOn == nil:
		return core.Transaction{}, fmt.Errorf("missing occurred_on")
	}

	amount, err := core.ParseStoredAmount(*r.Amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount %q: %w", *r.Amount, err)
	}
	date, err := core.ParseISODate(*r.OccurredOn)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse occurred_on %q: %w", *r.OccurredOn, err)
	}

	tx := core.Transaction{
		ID:         *r.TransactionID,
		UserID:     *r.UserID,
		Amount:     amount,
		Category:   *r.Category,
		OccurredOn: date,
		Type:       core.Expense,
	}
	if r.Note != nil {
		tx.Note = *r.Note
	}
	if r.TxType != nil {
		// Stored labels are kept verbatim; aggregation matches them
		// case-insensitively.
		tx.Type = core.TxType(*r.TxType)
	}
	return tx, nil
}

// encodeDocument renders the transactions as an indented JSON document with a
// single "transactions" key. Output is deterministic for a given slice.
func encodeDocument(txs []core.Transaction) ([]byte, error) {
	doc := document{Transactions: make([]record, 0, len(txs))}
	for _, tx := range txs {
		doc.Transactions = append(doc.Transactions, toRecord(tx))
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode transactions: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeDocument parses a document produced by encodeDocument. A missing
// "transactions" key reads as an empty sequence.
func decodeDocument(data []byte) ([]core.Transaction, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode document: %w", core.ErrPersistence, err)
	}

	txs := make([]core.Transaction, 0, len(doc.Transactions))
	for i, r := range doc.Transactions {
		tx, err := fromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", core.ErrPersistence, i, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// loggerFrom returns the request logger from ctx tagged as storage.
func loggerFrom(ctx context.Context) *log.Logger {
	return log.FromContext(ctx).WithComponent(log.ComponentStorage)
}

var (
	_ TransactionStore = (*FileStore)(nil)
	_ TransactionStore = (*SQLiteStore)(nil)
)
