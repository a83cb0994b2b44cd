package public

import (
	"strconv"
	"strings"

	handlershared "github.com/shanture-next/internal/http/handlers/shared"
	"github.com/shanture-next/internal/http/response"
	"github.com/shanture-next/internal/repository"
	"github.com/shanture-next/internal/service"

	"github.com/gin-gonic/gin"
)

var productErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, message: "Product not found"},
}

// GetProducts 商品列表
// 仅在传入 page 时分页
func (h *Handler) GetProducts(c *gin.Context) {
	filter := repository.ProductListFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("search")),
	}
	if rawPage := strings.TrimSpace(c.Query("page")); rawPage != "" {
		page, _ := strconv.Atoi(rawPage)
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
		filter.Page, filter.PageSize = handlershared.NormalizePagination(page, pageSize)
	}

	products, err := h.ProductService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, response.CodeInternal, "Server error while processing your request", err)
		return
	}
	response.Success(c, gin.H{"products": products})
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "Server error while processing your request")
		return
	}
	response.Success(c, gin.H{"product": product})
}
