package queue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shanture-next/internal/config"
)

func TestDisabledClientSkipsPublish(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("disabled client should report disabled")
	}
	if err := client.PublishOrderCreated(context.Background(), OrderCreatedPayload{OrderID: "o1"}); err != nil {
		t.Fatalf("publish on disabled client should be noop: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close disabled client failed: %v", err)
	}
}

func TestNewOrderCreatedTask(t *testing.T) {
	task, err := NewOrderCreatedTask(OrderCreatedPayload{OrderID: "o1", CustomerID: "c1", Total: "12.50", ItemCount: 2})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != TaskOrderCreated {
		t.Fatalf("task type want %s got %s", TaskOrderCreated, task.Type())
	}
	var payload OrderCreatedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}
	if payload.OrderID != "o1" || payload.Total != "12.50" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestBuildServerConfig(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: " redis ", Port: 6380, DB: 2, Concurrency: 3})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 3 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
}
