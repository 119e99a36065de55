package inventory

import (
	"context"
	"fmt"
	"time"
)

// MessagePublisher sends a payload to a broker topic.
// *mqtt.Client satisfies it.
type MessagePublisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// CountWriter records per-kind entity counts.
// *influxdb.Client satisfies it.
type CountWriter interface {
	WriteEntityInventory(kind string, count int)
}

// PublisherOptions configures a Publisher. MQTT and Counts are each optional.
type PublisherOptions struct {
	Source           Source
	MQTT             MessagePublisher
	Counts           CountWriter
	Topic            string
	QoS              byte
	Interval         time.Duration // 0 publishes once at startup only
	MaxDocumentBytes int
	Logger           Logger
	Metrics          *Metrics
}

// Publisher pushes the components document to MQTT (retained) and kind
// counts to a time-series store.
type Publisher struct {
	source   Source
	mqtt     MessagePublisher
	counts   CountWriter
	topic    string
	qos      byte
	interval time.Duration
	maxBytes int
	logger   Logger
	metrics  *Metrics
}

// NewPublisher creates a Publisher.
func NewPublisher(opts PublisherOptions) (*Publisher, error) {
	if opts.Source == nil {
		return nil, ErrSourceRequired
	}
	if opts.MQTT != nil && opts.Topic == "" {
		return nil, fmt.Errorf("inventory: publish topic is required")
	}
	return &Publisher{
		source:   opts.Source,
		mqtt:     opts.MQTT,
		counts:   opts.Counts,
		topic:    opts.Topic,
		qos:      opts.QoS,
		interval: opts.Interval,
		maxBytes: opts.MaxDocumentBytes,
		logger:   orNoop(opts.Logger),
		metrics:  opts.Metrics,
	}, nil
}

// PublishOnce renders the document and sends it to every configured sink.
func (p *Publisher) PublishOnce(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	snap, err := Render(p.source, p.maxBytes)
	if err != nil {
		return fmt.Errorf("rendering components: %w", err)
	}
	p.metrics.observeCounts(snap.Counts)

	if p.mqtt != nil {
		if err := p.mqtt.Publish(p.topic, snap.Body, p.qos, true); err != nil {
			return fmt.Errorf("publishing components to %s: %w", p.topic, err)
		}
	}

	if p.counts != nil {
		for kind, n := range snap.Counts {
			p.counts.WriteEntityInventory(kind, n)
		}
	}

	p.logger.Debug("published components", "entities", snap.Total, "topic", p.topic)
	return nil
}

// Run publishes once, then every Interval until ctx is cancelled.
// Publish failures are logged and do not stop the loop.
func (p *Publisher) Run(ctx context.Context) error {
	if err := p.PublishOnce(ctx); err != nil && ctx.Err() == nil {
		p.logger.Warn("initial components publish failed", "error", err)
	}

	if p.interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := p.PublishOnce(ctx); err != nil && ctx.Err() == nil {
				p.logger.Warn("components publish failed", "error", err)
			}
		}
	}
}
