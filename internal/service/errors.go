package service

import (
	"errors"
	"fmt"
	"strings"
)

// 业务错误
var (
	ErrInvalidQuantity      = errors.New("quantity must be a positive integer")
	ErrProductNotFound      = errors.New("product not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrOrderEmpty           = errors.New("no items in the order")
	ErrInvalidOrderItems    = errors.New("invalid order items")
	ErrOrderProductNotFound = errors.New("product in order not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrUsernameExists       = errors.New("username already exists")
	ErrEmailExists          = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrNoProfileFields      = errors.New("no valid fields to update")
	ErrWeakPassword         = errors.New("password does not meet policy")
	ErrInvalidCustomerInput = errors.New("invalid customer input")
	ErrInvalidToken         = errors.New("invalid token")
)

// StockError 库存不足，携带当前可售数量
type StockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *StockError) Error() string {
	if e.ProductName != "" {
		return fmt.Sprintf("insufficient stock for %s: only %d available", e.ProductName, e.Available)
	}
	return fmt.Sprintf("insufficient stock: only %d available", e.Available)
}

// Is 匹配 ErrInsufficientStock
func (e *StockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// InvalidOrderItem 不合法的订单项
type InvalidOrderItem struct {
	Index     int    `json:"index"`
	ProductID string `json:"product_id,omitempty"`
	Reason    string `json:"reason"`
}

// orderItemRequiredFields 订单项必填字段
var orderItemRequiredFields = []string{"product_id", "quantity", "price"}

// InvalidItemsError 订单项校验失败
type InvalidItemsError struct {
	Items          []InvalidOrderItem
	RequiredFields []string
}

func (e *InvalidItemsError) Error() string {
	reasons := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		reasons = append(reasons, fmt.Sprintf("item %d: %s", item.Index, item.Reason))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidOrderItems.Error(), strings.Join(reasons, "; "))
}

// Is 匹配 ErrInvalidOrderItems
func (e *InvalidItemsError) Is(target error) bool {
	return target == ErrInvalidOrderItems
}

// Details 返回给客户端的明细
func (e *InvalidItemsError) Details() map[string]interface{} {
	return map[string]interface{}{
		"invalid_items":   e.Items,
		"required_fields": e.RequiredFields,
	}
}
