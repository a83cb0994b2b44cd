package queue

import (
	"encoding/json"

	"github.com/shanture-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderCreated 订单创建后续处理任务
	TaskOrderCreated = constants.TaskOrderCreated
	// TaskOrderDeleted 订单删除后续处理任务
	TaskOrderDeleted = constants.TaskOrderDeleted
)

// OrderCreatedPayload 订单创建任务载荷
type OrderCreatedPayload struct {
	OrderID    string   `json:"order_id"`
	CustomerID string   `json:"customer_id"`
	Total      string   `json:"total"`
	ItemCount  int      `json:"item_count"`
	ProductIDs []string `json:"product_ids"`
	RequestID  string   `json:"request_id,omitempty"`
}

// OrderDeletedPayload 订单删除任务载荷
type OrderDeletedPayload struct {
	OrderID    string `json:"order_id"`
	CustomerID string `json:"customer_id"`
	RequestID  string `json:"request_id,omitempty"`
}

// NewOrderCreatedTask 创建订单创建任务
func NewOrderCreatedTask(payload OrderCreatedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderCreated, body), nil
}

// NewOrderDeletedTask 创建订单删除任务
func NewOrderDeletedTask(payload OrderDeletedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderDeleted, body), nil
}
