package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const (
	// LedgerEventsChannel is the redis pub/sub channel dashboards and
	// notification workers subscribe to.
	LedgerEventsChannel = "ledger_events"
)

// LedgerEventPublisher fans ledger mutations out over redis pub/sub.
// Kafka carries the durable stream; this channel is the low-latency
// fanout for connected UIs.
type LedgerEventPublisher struct {
	rdb *redis.Client
}

func NewLedgerEventPublisher(rdb *redis.Client) *LedgerEventPublisher {
	return &LedgerEventPublisher{rdb: rdb}
}

// LedgerEvent describes one committed mutation of an investor ledger.
type LedgerEvent struct {
	EventType       string          `json:"event_type"` // transaction.added, transaction.edited, transaction.deleted, rate.changed, interest.posted
	InvestorID      string          `json:"investor_id"`
	CompanyID       string          `json:"company_id,omitempty"`
	TransactionID   string          `json:"transaction_id,omitempty"`
	TransactionType string          `json:"transaction_type,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	BalanceAfter    decimal.Decimal `json:"balance_after"`
	Recalculated    int             `json:"recalculated,omitempty"` // future interest rows repriced by the cascade
	Timestamp       time.Time       `json:"timestamp"`
}

// Publish pushes a ledger event onto the channel.
func (p *LedgerEventPublisher) Publish(ctx context.Context, event *LedgerEvent) error {
	if p == nil || p.rdb == nil {
		return nil
	}
	event.Timestamp = time.Now()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.rdb.Publish(ctx, LedgerEventsChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	log.WithFields(log.Fields{
		"event":       event.EventType,
		"investor_id": event.InvestorID,
	}).Debug("ledger event published")

	return nil
}
