package repository

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page     int
	PageSize int
	Category string
	Search   string
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page       int
	PageSize   int
	CustomerID string
}
