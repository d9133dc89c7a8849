// Package events provides NATS event publishing for warehouse-service.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/sirupsen/logrus"

	"warehouse-service/internal/models"
)

const (
	StreamWarehouse = "WAREHOUSE"

	SubjectImportCompleted = "warehouse.import.completed"
	SubjectLowStock        = "warehouse.inventory.low_stock"
)

// ImportCompletedEvent is published after an import call finishes.
type ImportCompletedEvent struct {
	EventType   string             `json:"eventType"`
	Timestamp   time.Time          `json:"timestamp"`
	Marketplace models.Marketplace `json:"marketplace"`
	ImportType  models.ImportType  `json:"importType"`
	Total       int                `json:"total"`
	Processed   int                `json:"processed"`
	Skipped     int                `json:"skipped"`
	ErrorCount  int                `json:"errorCount"`
	NewSkus     []string           `json:"newSkus"`
}

// LowStockEvent is published when an adjustment drops a product below its
// threshold.
type LowStockEvent struct {
	EventType    string             `json:"eventType"`
	Timestamp    time.Time          `json:"timestamp"`
	ProductID    string             `json:"productId"`
	ProductName  string             `json:"productName"`
	MSKU         string             `json:"msku"`
	SKU          string             `json:"sku"`
	Marketplace  models.Marketplace `json:"marketplace"`
	CurrentStock int                `json:"currentStock"`
	Threshold    int                `json:"threshold"`
}

// Publisher publishes warehouse events to NATS JetStream. A nil Publisher
// is safe to call: every publish becomes a no-op, so the service runs
// without NATS configured.
type Publisher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	logger *logrus.Entry
}

// NewPublisher connects to NATS and ensures the warehouse stream exists
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	if natsURL == "" {
		return nil, fmt.Errorf("NATS URL is required")
	}

	log := logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	nc, err := nats.Connect(natsURL,
		nats.Name("warehouse-service"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.WithError(err).Warn("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.WithField("url", nc.ConnectedUrl()).Info("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamWarehouse,
		Subjects: []string{"warehouse.>"},
	})
	if err != nil {
		log.WithError(err).Warn("Failed to ensure warehouse stream exists")
	}

	return &Publisher{
		nc:     nc,
		js:     js,
		logger: log.WithField("component", "warehouse-events"),
	}, nil
}

// Close closes the NATS connection
func (p *Publisher) Close() {
	if p != nil && p.nc != nil {
		p.nc.Close()
	}
}

// PublishImportCompleted publishes a warehouse.import.completed event
func (p *Publisher) PublishImportCompleted(ctx context.Context, marketplace models.Marketplace, importType models.ImportType, result *models.ImportResult) {
	if p == nil {
		return
	}
	p.publish(ctx, SubjectImportCompleted, ImportCompletedEvent{
		EventType:   SubjectImportCompleted,
		Timestamp:   time.Now(),
		Marketplace: marketplace,
		ImportType:  importType,
		Total:       result.Total,
		Processed:   result.Processed,
		Skipped:     result.Skipped,
		ErrorCount:  len(result.Errors),
		NewSkus:     result.NewSkus,
	})
}

// PublishLowStock publishes a warehouse.inventory.low_stock event
func (p *Publisher) PublishLowStock(ctx context.Context, product *models.Product, record *models.Inventory) {
	if p == nil {
		return
	}
	p.publish(ctx, SubjectLowStock, LowStockEvent{
		EventType:    SubjectLowStock,
		Timestamp:    time.Now(),
		ProductID:    product.ID.String(),
		ProductName:  product.Name,
		MSKU:         record.MSKU,
		SKU:          record.SKU,
		Marketplace:  record.Marketplace,
		CurrentStock: record.Quantity,
		Threshold:    product.Threshold(),
	})
}

// publish marshals and sends one event. Publish failures are logged, never
// propagated: events are advisory and must not fail the triggering request.
func (p *Publisher) publish(ctx context.Context, subject string, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).WithField("subject", subject).Error("Failed to marshal event")
		return
	}

	if _, err := p.js.Publish(ctx, subject, payload); err != nil {
		p.logger.WithError(err).WithField("subject", subject).Error("Failed to publish event")
		return
	}

	p.logger.WithField("subject", subject).Debug("Published event")
}
