package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/nerrad567/gray-logic-components/internal/entity"
)

type publishedMessage struct {
	topic    string
	payload  string
	qos      byte
	retained bool
}

type fakeMQTT struct {
	mu       sync.Mutex
	messages []publishedMessage
	err      error
}

func (f *fakeMQTT) Publish(topic string, payload []byte, qos byte, retained bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, publishedMessage{topic, string(payload), qos, retained})
	return nil
}

func (f *fakeMQTT) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

type fakeCounts struct {
	mu     sync.Mutex
	counts map[string]int
}

func (f *fakeCounts) WriteEntityInventory(kind string, count int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts == nil {
		f.counts = make(map[string]int)
	}
	f.counts[kind] = count
}

func TestNewPublisher_Validation(t *testing.T) {
	if _, err := NewPublisher(PublisherOptions{}); !errors.Is(err, ErrSourceRequired) {
		t.Errorf("NewPublisher() error = %v, want ErrSourceRequired", err)
	}
	if _, err := NewPublisher(PublisherOptions{Source: entity.NewRegistry(), MQTT: &fakeMQTT{}}); err == nil {
		t.Error("NewPublisher() with MQTT and no topic should fail")
	}
}

func TestPublisher_PublishOnce(t *testing.T) {
	reg := newRegistry(t,
		seed{entity.KindSensor, "temp1", "Temp 1"},
		seed{entity.KindSwitch, "relay", "Relay"},
	)
	mq := &fakeMQTT{}
	counts := &fakeCounts{}
	p, err := NewPublisher(PublisherOptions{
		Source: reg,
		MQTT:   mq,
		Counts: counts,
		Topic:  "graylogic/core/components",
		QoS:    1,
	})
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}

	if err := p.PublishOnce(context.Background()); err != nil {
		t.Fatalf("PublishOnce() error = %v", err)
	}

	want := []publishedMessage{{
		topic:    "graylogic/core/components",
		payload:  `{"components":[{"type":"sensor","object_id":"temp1","name":"Temp 1"},{"type":"switch","object_id":"relay","name":"Relay"}]}`,
		qos:      1,
		retained: true,
	}}
	if diff := cmp.Diff(want, mq.messages, cmp.AllowUnexported(publishedMessage{})); diff != "" {
		t.Errorf("published mismatch (-want +got):\n%s", diff)
	}
	if counts.counts["sensor"] != 1 || counts.counts["switch"] != 1 || counts.counts["binary_sensor"] != 0 {
		t.Errorf("counts = %v", counts.counts)
	}
	if len(counts.counts) != len(entity.SupportedKinds()) {
		t.Errorf("wrote %d kinds, want %d", len(counts.counts), len(entity.SupportedKinds()))
	}
}

func TestPublisher_PublishOnceErrors(t *testing.T) {
	mq := &fakeMQTT{err: errors.New("broker down")}
	p, err := NewPublisher(PublisherOptions{Source: entity.NewRegistry(), MQTT: mq, Topic: "t"})
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}
	if err := p.PublishOnce(context.Background()); err == nil {
		t.Error("PublishOnce() should surface the broker error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.PublishOnce(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("PublishOnce(cancelled) error = %v, want context.Canceled", err)
	}
}

func TestPublisher_Run(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	mq := &fakeMQTT{}
	p, err := NewPublisher(PublisherOptions{
		Source:   entity.NewRegistry(),
		MQTT:     mq,
		Topic:    "t",
		Interval: 5 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for mq.count() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d publishes before deadline", mq.count())
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestPublisher_RunOnceWithoutInterval(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	mq := &fakeMQTT{}
	p, err := NewPublisher(PublisherOptions{Source: entity.NewRegistry(), MQTT: mq, Topic: "t"})
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := p.Run(ctx); err != nil {
		t.Errorf("Run() error = %v", err)
	}
	if mq.count() != 1 {
		t.Errorf("publishes = %d, want 1", mq.count())
	}
}
