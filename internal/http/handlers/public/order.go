package public

import (
	"encoding/json"
	"strings"

	handlershared "github.com/shanture-next/internal/http/handlers/shared"
	"github.com/shanture-next/internal/http/response"
	"github.com/shanture-next/internal/models"
	"github.com/shanture-next/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderItemRequest 订单项请求
// product_id 缺省时兼容 id 字段；quantity 与 price 延后解析，以便逐项报告错误
type OrderItemRequest struct {
	ProductID string          `json:"product_id"`
	ID        string          `json:"id"`
	Quantity  json.RawMessage `json:"quantity"`
	Price     json.RawMessage `json:"price"`
	Name      string          `json:"name"`
}

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress json.RawMessage    `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
}

// CreateOrder 创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", nil)
		return
	}

	items := make([]service.CreateOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID := strings.TrimSpace(item.ProductID)
		if productID == "" {
			productID = strings.TrimSpace(item.ID)
		}
		// 无法解析的数量按 0 处理，由服务层统一报告为非法项
		quantity, _ := handlershared.ParsePositiveInt(item.Quantity)
		price, priceOK := parseOrderPrice(item.Price)
		items = append(items, service.CreateOrderItem{
			ProductID:      productID,
			Quantity:       quantity,
			Price:          price,
			PriceMalformed: !priceOK,
			Name:           item.Name,
		})
	}

	order, err := h.OrderService.CreateOrder(c.Request.Context(), service.CreateOrderInput{
		CustomerID:      customerID,
		Items:           items,
		ShippingAddress: normalizeShippingAddress(req.ShippingAddress),
		PaymentMethod:   req.PaymentMethod,
		RequestID:       handlershared.GetRequestID(c),
	})
	if err != nil {
		respondOrderCreateError(c, err)
		return
	}
	response.Created(c, "Order created successfully", gin.H{"order": order})
}

// ListOrders 获取订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	orders, err := h.OrderService.ListOrders(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch orders", err)
		return
	}
	response.Success(c, gin.H{"orders": orders})
}

// GetOrder 获取订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrder(c.Request.Context(), customerID, c.Param("orderId"))
	if err != nil {
		respondOrderOwnedError(c, err, "Failed to fetch order")
		return
	}
	response.Success(c, gin.H{"order": order})
}

// DeleteOrder 删除订单
func (h *Handler) DeleteOrder(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	orderID := strings.TrimSpace(c.Param("orderId"))
	if err := h.OrderService.DeleteOrder(c.Request.Context(), customerID, orderID); err != nil {
		respondOrderOwnedError(c, err, "Failed to delete order")
		return
	}
	response.SuccessWithMsg(c, "Order deleted successfully", gin.H{"order_id": orderID})
}

// parseOrderPrice 解析数字或数字字符串价格；缺省返回 nil, true，无法解析返回 nil, false
func parseOrderPrice(raw json.RawMessage) (*models.Money, bool) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return nil, true
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, false
		}
		text = strings.TrimSpace(s)
	}
	price, err := models.ParseMoney(text)
	if err != nil {
		return nil, false
	}
	return &price, true
}

// normalizeShippingAddress 对象原样保存；字符串内容为 JSON 时按 JSON 保存，否则保存为字符串
func normalizeShippingAddress(raw json.RawMessage) models.JSONText {
	raw = json.RawMessage(strings.TrimSpace(string(raw)))
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if inner := strings.TrimSpace(s); json.Valid([]byte(inner)) {
			raw = json.RawMessage(inner)
		}
	}
	address, err := models.NewJSONText(raw)
	if err != nil {
		return nil
	}
	return address
}
