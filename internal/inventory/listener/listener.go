package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-inventory-service/internal/auth"
	"github.com/fekuna/omnipos-inventory-service/internal/inventory"
	"github.com/fekuna/omnipos-inventory-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-inventory-service/internal/model"
	"github.com/fekuna/omnipos-inventory-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	EventOrderCreated   = "OrderCreated"
	EventOrderCancelled = "OrderCancelled"
	EventOrderShipped   = "OrderShipped"
)

// MessageReader is satisfied by broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type InventoryListener struct {
	consumer   MessageReader
	uc         inventory.UseCase
	logger     logger.ZapLogger
	retryDelay time.Duration
}

func NewInventoryListener(consumer MessageReader, uc inventory.UseCase, logger logger.ZapLogger) *InventoryListener {
	return &InventoryListener{
		consumer:   consumer,
		uc:         uc,
		logger:     logger,
		retryDelay: time.Second,
	}
}

func (l *InventoryListener) Start(ctx context.Context) {
	l.logger.Info("Starting order event listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping order event listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.retryDelay):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type OrderEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID    string             `json:"id"`
	Items []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (l *InventoryListener) processMessage(ctx context.Context, value []byte) {
	var event OrderEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	var apply func(context.Context, *dto.StockOperationInput) (*model.Inventory, error)
	switch event.EventType {
	case EventOrderCreated:
		apply = l.uc.Reserve
	case EventOrderCancelled:
		apply = l.uc.Release
	case EventOrderShipped:
		apply = l.uc.ConfirmDeduction
	default:
		return
	}

	l.logger.Info("Processing order event",
		zap.String("event_type", event.EventType),
		zap.String("order_id", event.Payload.ID),
		zap.Int("items", len(event.Payload.Items)),
	)

	ctx = auth.WithPerformer(ctx, auth.SystemPerformer)
	for _, item := range event.Payload.Items {
		input := &dto.StockOperationInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			OrderRef:  event.Payload.ID,
		}
		if _, err := apply(ctx, input); err != nil {
			l.logger.Error("Failed to apply order event to inventory",
				zap.String("event_type", event.EventType),
				zap.String("order_id", event.Payload.ID),
				zap.Int64("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
		}
	}
}
