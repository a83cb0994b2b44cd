package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shanture-next/internal/logger"
	"github.com/shanture-next/internal/provider"
	"github.com/shanture-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderCreated, c.handleOrderCreated)
	mux.HandleFunc(queue.TaskOrderDeleted, c.handleOrderDeleted)
}

// handleOrderCreated 记录订单回执并使商品缓存失效（库存已变化）
func (c *Consumer) handleOrderCreated(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_created_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderCreatedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_created_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.OrderID) == "" {
		logger.Debugw("worker_order_created_skip_invalid_payload")
		return nil
	}
	log := logger.FromContext(logger.WithRequestID(ctx, payload.RequestID))

	if c.OrderService != nil {
		order, err := c.OrderService.GetOrder(ctx, payload.CustomerID, payload.OrderID)
		switch {
		case err == nil:
			lines := make([]string, 0, len(order.Items))
			for _, item := range order.Items {
				lines = append(lines, fmt.Sprintf("%s x%d", item.ProductName, item.Quantity))
			}
			log.Infow("order_receipt",
				"order_id", order.ID,
				"customer_id", order.CustomerID,
				"order_date", order.FormattedDate,
				"total", order.Total.String(),
				"items", lines,
			)
		default:
			// 订单可能已被删除，仅记录载荷
			log.Infow("order_receipt",
				"order_id", payload.OrderID,
				"customer_id", payload.CustomerID,
				"total", payload.Total,
				"item_count", payload.ItemCount,
				"lookup_error", err.Error(),
			)
		}
	}

	return c.invalidateCatalog(ctx, payload.OrderID)
}

func (c *Consumer) handleOrderDeleted(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_deleted_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderDeletedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_deleted_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.OrderID) == "" {
		logger.Debugw("worker_order_deleted_skip_invalid_payload")
		return nil
	}
	logger.FromContext(logger.WithRequestID(ctx, payload.RequestID)).Infow("order_deleted_processed",
		"order_id", payload.OrderID,
		"customer_id", payload.CustomerID,
	)
	return c.invalidateCatalog(ctx, payload.OrderID)
}

func (c *Consumer) invalidateCatalog(ctx context.Context, orderID string) error {
	if c.ProductService == nil {
		return nil
	}
	if err := c.ProductService.InvalidateCache(ctx); err != nil {
		logger.Warnw("worker_catalog_invalidate_failed", "order_id", orderID, "error", err)
		return err
	}
	return nil
}
