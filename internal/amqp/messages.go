package amqp

import (
	"encoding/json"
	"time"

	"budget/internal/core"
)

// ExpenseRecordedMessage announces a transaction that has just been stored.
// Amount and date use the same string forms as the backing record.
type ExpenseRecordedMessage struct {
	ID         string    `json:"transaction_id"`
	UserID     string    `json:"user_id"`
	Amount     string    `json:"amount"`
	Category   string    `json:"category"`
	OccurredOn string    `json:"occurred_on"`
	TxType     string    `json:"tx_type"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewExpenseRecordedMessage builds the message for tx stamped with now.
func NewExpenseRecordedMessage(tx core.Transaction, now time.Time) *ExpenseRecordedMessage {
	return &ExpenseRecordedMessage{
		ID:         tx.ID,
		UserID:     tx.UserID,
		Amount:     core.FormatAmount(tx.Amount),
		Category:   tx.Category,
		OccurredOn: tx.OccurredOn.String(),
		TxType:     string(tx.Type),
		Timestamp:  now,
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseRecordedMessageFromJSON creates a message from JSON bytes
func ExpenseRecordedMessageFromJSON(data []byte) (*ExpenseRecordedMessage, error) {
	var msg ExpenseRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
