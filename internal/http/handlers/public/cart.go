package public

import (
	"encoding/json"
	"strings"

	handlershared "github.com/shanture-next/internal/http/handlers/shared"
	"github.com/shanture-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CartQuantityRequest 购物车数量请求，quantity 可为数字或数字字符串
type CartQuantityRequest struct {
	Quantity json.RawMessage `json:"quantity"`
}

// bindCartQuantity 解析数量，缺省时使用 fallback（fallback <= 0 表示必填）
func bindCartQuantity(c *gin.Context, fallback int) (int, bool) {
	var req CartQuantityRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "Invalid request body", nil)
			return 0, false
		}
	}
	if len(req.Quantity) == 0 && fallback > 0 {
		return fallback, true
	}
	quantity, ok := handlershared.ParsePositiveInt(req.Quantity)
	if !ok {
		respondError(c, response.CodeBadRequest, "Quantity must be a positive number", nil)
		return 0, false
	}
	return quantity, true
}

// AddToCart 加入购物车
func (h *Handler) AddToCart(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	productID := strings.TrimSpace(c.Param("productId"))
	if productID == "" {
		respondError(c, response.CodeBadRequest, "Product ID is required", nil)
		return
	}
	quantity, ok := bindCartQuantity(c, 1)
	if !ok {
		return
	}

	cart, err := h.CartService.Add(c.Request.Context(), customerID, productID, quantity)
	if err != nil {
		respondCartAddError(c, err)
		return
	}
	response.SuccessWithMsg(c, "Item added to cart successfully", gin.H{"cart": cart})
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.Get(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch cart", err)
		return
	}
	response.Success(c, gin.H{
		"items":     cart.Items,
		"total":     cart.Total,
		"itemCount": cart.ItemCount,
	})
}

// UpdateCartItem 修改购物车项数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	quantity, ok := bindCartQuantity(c, 0)
	if !ok {
		return
	}
	line, err := h.CartService.Update(c.Request.Context(), customerID, c.Param("id"), quantity)
	if err != nil {
		respondCartItemError(c, err, "Failed to update cart item")
		return
	}
	response.SuccessWithMsg(c, "Cart item updated", gin.H{"cartItem": line})
}

// RemoveCartItem 删除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	if err := h.CartService.Remove(c.Request.Context(), customerID, c.Param("id")); err != nil {
		respondCartItemError(c, err, "Failed to remove item from cart")
		return
	}
	response.SuccessWithMsg(c, "Item removed from cart", nil)
}
