package public

import (
	"errors"

	"github.com/shanture-next/internal/http/response"
	"github.com/shanture-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target  error
	code    int
	message string
}

// detailedError 可向客户端暴露明细的错误
type detailedError interface {
	Details() map[string]interface{}
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMessage string) {
	for _, rule := range rules {
		if !errors.Is(err, rule.target) {
			continue
		}
		var detailed detailedError
		if errors.As(err, &detailed) {
			response.ErrorWithDetails(c, rule.code, rule.message, detailed.Details())
			return
		}
		var stockErr *service.StockError
		if errors.As(err, &stockErr) {
			response.ErrorWithDetails(c, rule.code, rule.message, gin.H{
				"message":    stockErr.Error(),
				"product_id": stockErr.ProductID,
				"available":  stockErr.Available,
			})
			return
		}
		respondError(c, rule.code, rule.message, nil)
		return
	}
	respondError(c, fallbackCode, fallbackMessage, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var cartCommonErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, message: "Quantity must be a positive number"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, message: "Insufficient stock"},
}

var cartAddErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, message: "Product not found"},
}

var cartItemErrorRules = []mappedHandlerError{
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, message: "Cart item not found or you do not have permission to modify it"},
}

var orderCreateErrorRules = []mappedHandlerError{
	{target: service.ErrOrderEmpty, code: response.CodeBadRequest, message: "No items in the order"},
	{target: service.ErrInvalidOrderItems, code: response.CodeBadRequest, message: "Invalid cart items data"},
	{target: service.ErrOrderProductNotFound, code: response.CodeBadRequest, message: "Product in order not found"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, message: "Insufficient stock"},
}

var orderOwnedErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, message: "Order not found or does not belong to user"},
}

var customerRegisterErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCustomerInput, code: response.CodeBadRequest, message: "Please provide all required fields (username, email, password, full_name)"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, message: "Password does not meet the password policy"},
	{target: service.ErrUsernameExists, code: response.CodeBadRequest, message: "Username already exists"},
	{target: service.ErrEmailExists, code: response.CodeBadRequest, message: "Email already registered"},
}

var customerLoginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCustomerInput, code: response.CodeBadRequest, message: "Please provide both username and password"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, message: "Invalid credentials"},
}

var customerProfileErrorRules = []mappedHandlerError{
	{target: service.ErrCustomerNotFound, code: response.CodeNotFound, message: "Customer not found"},
	{target: service.ErrNoProfileFields, code: response.CodeBadRequest, message: "No valid fields to update"},
	{target: service.ErrInvalidCustomerInput, code: response.CodeBadRequest, message: "Invalid profile fields"},
	{target: service.ErrUsernameExists, code: response.CodeBadRequest, message: "Username already exists"},
	{target: service.ErrEmailExists, code: response.CodeBadRequest, message: "Email already registered"},
}

func respondCartAddError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(cartCommonErrorRules, cartAddErrorRules), response.CodeInternal, "Failed to add item to cart")
}

func respondCartItemError(c *gin.Context, err error, fallback string) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(cartCommonErrorRules, cartItemErrorRules), response.CodeInternal, fallback)
}

func respondOrderCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "Failed to create order")
}

func respondOrderOwnedError(c *gin.Context, err error, fallback string) {
	respondWithMappedError(c, err, orderOwnedErrorRules, response.CodeInternal, fallback)
}
