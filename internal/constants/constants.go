package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// 下单价格来源
const (
	PriceSourceClient  = "client"
	PriceSourceCatalog = "catalog"
)

// 队列与任务常量
const (
	QueueDefault = "default"

	TaskOrderCreated = "order:created"
	TaskOrderDeleted = "order:deleted"
)

// 上下文键
const (
	ContextKeyCustomerID = "customer_id"
	ContextKeyUsername   = "username"
	ContextKeyRequestID  = "request_id"
)

// 运行模式
const (
	ServerModeDebug   = "debug"
	ServerModeRelease = "release"
)
