package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const orderCreatedTopic = "orders.created"

// --------------------------------------------------
// Kafka event publisher
// --------------------------------------------------

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  orderCreatedTopic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

type orderCreatedEvent struct {
	Reference    string      `json:"reference"`
	CustomerName string      `json:"customer_name"`
	Status       string      `json:"status"`
	Subtotal     float64     `json:"subtotal"`
	Total        float64     `json:"total"`
	Items        []eventItem `json:"items"`
	CreatedAt    time.Time   `json:"created_at"`
}

type eventItem struct {
	MenuItemID int64  `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
}

func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, o *Order) error {
	event := orderCreatedEvent{
		Reference:    o.Reference,
		CustomerName: o.CustomerName,
		Status:       o.Status,
		Subtotal:     o.Subtotal,
		Total:        o.Total,
		CreatedAt:    o.CreatedAt,
	}
	for _, item := range o.Items {
		event.Items = append(event.Items, eventItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
		})
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(o.Reference),
		Value: data,
	})
	if err != nil {
		return err
	}

	logger.Info().Msgf("Published order event %s", o.Reference)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
