package public

import (
	"errors"

	"github.com/shanture-next/internal/http/response"
	"github.com/shanture-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Image    string `json:"image"`
	Region   string `json:"region"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileRequest 资料更新请求，未出现的字段不修改
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Image    *string `json:"image"`
	Region   *string `json:"region"`
}

// Register 顾客注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", nil)
		return
	}
	customer, err := h.CustomerService.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
		Image:    req.Image,
		Region:   req.Region,
	})
	if err != nil {
		respondRegisterError(c, err)
		return
	}
	response.Created(c, "Customer registered successfully", gin.H{
		"data": gin.H{"user": customer},
	})
}

// Login 顾客登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", nil)
		return
	}
	customer, token, expiresAt, err := h.CustomerService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondWithMappedError(c, err, customerLoginErrorRules, response.CodeInternal, "Server error during login")
		return
	}
	response.SuccessWithMsg(c, "Login successful", gin.H{
		"data": gin.H{
			"user":       customer,
			"token":      token,
			"expires_at": expiresAt,
		},
	})
}

// GetProfile 获取当前顾客资料
func (h *Handler) GetProfile(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	customer, err := h.CustomerService.GetProfile(c.Request.Context(), customerID)
	if err != nil {
		respondWithMappedError(c, err, customerProfileErrorRules, response.CodeInternal, "Server error")
		return
	}
	response.Success(c, gin.H{"customer": customer})
}

// UpdateProfile 更新顾客资料（只能修改自己）
func (h *Handler) UpdateProfile(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", nil)
		return
	}
	customer, token, err := h.CustomerService.UpdateProfile(c.Request.Context(), customerID, c.Param("id"), service.UpdateProfileInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
		Image:    req.Image,
		Region:   req.Region,
	})
	if err != nil {
		respondWithMappedError(c, err, customerProfileErrorRules, response.CodeInternal, "Error updating profile")
		return
	}
	fields := gin.H{"customer": customer}
	if token != "" {
		fields["token"] = token
	}
	response.SuccessWithMsg(c, "Profile updated successfully", fields)
}

func respondRegisterError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrWeakPassword) {
		respondError(c, response.CodeBadRequest, err.Error(), nil)
		return
	}
	respondWithMappedError(c, err, customerRegisterErrorRules, response.CodeInternal, "Server error during registration")
}
