package service

import (
	"context"
	"time"

	"github.com/shanture-next/internal/models"
	"github.com/shanture-next/internal/repository"
)

// orderDateLayout 订单时间展示格式
const orderDateLayout = "January 2, 2006 at 03:04 PM"

// OrderItemView 订单项展示
type OrderItemView struct {
	ID           string       `json:"id"`
	OrderID      string       `json:"order_id"`
	ProductID    string       `json:"product_id"`
	ProductName  string       `json:"product_name"`
	ProductImage string       `json:"product_image"`
	Quantity     int          `json:"quantity"`
	Price        models.Money `json:"price"`
	ItemTotal    models.Money `json:"item_total"`
}

// OrderView 订单展示
type OrderView struct {
	ID              string          `json:"id"`
	CustomerID      string          `json:"customer_id"`
	OrderDate       time.Time       `json:"order_date"`
	FormattedDate   string          `json:"formatted_date"`
	Status          string          `json:"status"`
	Total           models.Money    `json:"total"`
	ShippingAddress models.JSONText `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Items           []OrderItemView `json:"items"`
}

// ListOrders 顾客订单列表，按下单时间倒序
func (s *OrderService) ListOrders(ctx context.Context, customerID string) ([]OrderView, error) {
	orders, err := s.orderRepo.ListByCustomer(ctx, repository.OrderListFilter{CustomerID: customerID})
	if err != nil {
		return nil, err
	}
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, buildOrderView(order))
	}
	return views, nil
}

// GetOrder 获取顾客自己的订单
func (s *OrderService) GetOrder(ctx context.Context, customerID, orderID string) (*OrderView, error) {
	order, err := s.orderRepo.GetByIDAndCustomer(ctx, orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	view := buildOrderView(*order)
	return &view, nil
}

func buildOrderView(order models.Order) OrderView {
	view := OrderView{
		ID:              order.ID,
		CustomerID:      order.CustomerID,
		OrderDate:       order.OrderDate,
		FormattedDate:   formatOrderDate(order.OrderDate),
		Status:          order.Status,
		Total:           order.Total,
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Items:           make([]OrderItemView, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		view.Items = append(view.Items, OrderItemView{
			ID:           item.ID,
			OrderID:      item.OrderID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Quantity:     item.Quantity,
			Price:        item.Price,
			ItemTotal:    item.LineTotal(),
		})
	}
	return view
}

func formatOrderDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(orderDateLayout)
}
