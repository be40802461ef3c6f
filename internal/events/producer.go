package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hebertsb/pizzeria-nova-backend/internal/domain"
	"github.com/segmentio/kafka-go"
)

// StatusEvent mirrors every successful status write onto the event
// stream for downstream consumers (admin panel, analytics).
type StatusEvent struct {
	EventID        string         `json:"event_id"`
	OrderID        string         `json:"order_id"`
	Status         domain.Status  `json:"status"`
	DriverLocation *domain.LatLng `json:"driver_location,omitempty"`
	At             time.Time      `json:"at"`
}

type Producer struct {
	w *kafka.Writer
}

func NewProducer(brokersSTR, topic string) *Producer {
	brokers := strings.Split(brokersSTR, ",")

	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

func (p *Producer) Close() error {
	return p.w.Close()
}

// PublishStatus keys events by order id so one order's lifecycle stays
// on one partition, in order.
func (p *Producer) PublishStatus(ctx context.Context, orderID string, st domain.Status, loc *domain.LatLng) error {
	ev := StatusEvent{
		EventID:        uuid.NewString(),
		OrderID:        orderID,
		Status:         st,
		DriverLocation: loc,
		At:             time.Now().UTC(),
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(orderID),
		Value: b,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	})
}
