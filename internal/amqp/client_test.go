package amqp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"

	"budget/internal/core"
)

type fakePublisher struct {
	exchange string
	key      string
	msg      amqp091.Publishing
	calls    int
	err      error
}

func (f *fakePublisher) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	f.calls++
	f.exchange = exchange
	f.key = key
	f.msg = msg
	return f.err
}

var fixedNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func sampleTx() core.Transaction {
	return core.Transaction{
		ID:         "TX-120000",
		UserID:     "jason",
		Amount:     decimal.RequireFromString("10.00"),
		Category:   "Groceries",
		OccurredOn: core.NewDate(2020, 2, 10),
		Type:       core.Expense,
	}
}

func TestClient_PublishExpenseRecorded(t *testing.T) {
	fake := &fakePublisher{}
	client := &Client{
		pub:          fake,
		exchangeName: "budget",
		queueName:    "expense_recorded",
		now:          func() time.Time { return fixedNow },
	}

	if err := client.PublishExpenseRecorded(context.Background(), sampleTx()); err != nil {
		t.Fatalf("PublishExpenseRecorded() error = %v", err)
	}

	if fake.calls != 1 {
		t.Fatalf("expected one publish, got %d", fake.calls)
	}
	if fake.exchange != "budget" || fake.key != "expense_recorded" {
		t.Errorf("published to %s/%s", fake.exchange, fake.key)
	}
	if fake.msg.DeliveryMode != amqp091.Persistent {
		t.Errorf("message should be persistent")
	}
	if fake.msg.ContentType != "application/json" || fake.msg.MessageId != "TX-120000" {
		t.Errorf("unexpected publishing headers: %+v", fake.msg)
	}

	msg, err := ExpenseRecordedMessageFromJSON(fake.msg.Body)
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if msg.Amount != "10.00" || msg.OccurredOn != "2020-02-10" || msg.TxType != "EXPENSE" {
		t.Errorf("unexpected body: %+v", msg)
	}
	if !msg.Timestamp.Equal(fixedNow) {
		t.Errorf("Timestamp = %v, want %v", msg.Timestamp, fixedNow)
	}
}

func TestClient_PublishExpenseRecorded_Errors(t *testing.T) {
	t.Run("publish failure is wrapped", func(t *testing.T) {
		boom := errors.New("channel closed")
		client := &Client{pub: &fakePublisher{err: boom}, now: time.Now}

		err := client.PublishExpenseRecorded(context.Background(), sampleTx())
		if !errors.Is(err, boom) {
			t.Errorf("expected wrapped publish error, got %v", err)
		}
	})

	t.Run("cancelled context skips publish", func(t *testing.T) {
		fake := &fakePublisher{}
		client := &Client{pub: fake, now: time.Now}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := client.PublishExpenseRecorded(ctx, sampleTx())
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if fake.calls != 0 {
			t.Errorf("publish should not be attempted")
		}
	})
}

func TestExpenseRecordedMessage_JSON(t *testing.T) {
	msg := NewExpenseRecordedMessage(sampleTx(), fixedNow)

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := ExpenseRecordedMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("ExpenseRecordedMessageFromJSON() error = %v", err)
	}
	if parsed.ID != msg.ID || parsed.UserID != msg.UserID || parsed.Category != msg.Category {
		t.Errorf("Parsed = %+v, want %+v", parsed, msg)
	}
}

func TestExpenseRecordedMessage_InvalidJSON(t *testing.T) {
	if _, err := ExpenseRecordedMessageFromJSON([]byte(`{"transaction_id": 12`)); err == nil {
		t.Error("ExpenseRecordedMessageFromJSON() should fail with invalid JSON")
	}
}

func TestClient_CloseWithoutConnection(t *testing.T) {
	if err := (&Client{}).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}
