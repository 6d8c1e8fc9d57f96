package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	OrdersSubject     = "procurement.orders"
	EventOrderCreated = "purchase_order.created"
	EventOrderUpdated = "purchase_order.updated"
	EventOrderDeleted = "purchase_order.deleted"
)

// OrderLineEvent carries the denormalized display names so consumers can
// render without joining the catalog tables.
type OrderLineEvent struct {
	ItemID   uint   `json:"item_id"`
	Item     string `json:"item"`
	Category string `json:"category,omitempty"`
	Model    string `json:"model,omitempty"`
	Brand    string `json:"brand,omitempty"`
	Quantity int    `json:"quantity"`
}

type OrderEvent struct {
	EventType   string           `json:"event_type"`
	OccurredAt  time.Time        `json:"occurred_at"`
	OrderID     uint             `json:"order_id"`
	Reference   string           `json:"reference"`
	Vendor      string           `json:"vendor,omitempty"`
	TotalAmount float64          `json:"total_amount"`
	Lines       []OrderLineEvent `json:"lines"`
}

type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &Publisher{conn: conn}, nil
}

// PublishOrderEvent is best-effort and nil-safe: with no publisher
// configured, or on a publish failure, the order workflow proceeds and the
// failure is only logged.
func (p *Publisher) PublishOrderEvent(evt OrderEvent) {
	if p == nil {
		return
	}
	evt.OccurredAt = time.Now()
	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("events: could not marshal order event: %v", err)
		return
	}
	if err := p.conn.Publish(OrdersSubject, data); err != nil {
		log.Printf("events: could not publish order event: %v", err)
	}
}

func (p *Publisher) Close() {
	if p != nil && p.conn != nil {
		p.conn.Close()
	}
}
