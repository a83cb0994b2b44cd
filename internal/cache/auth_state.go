package cache

import (
	"context"
	"time"

	"github.com/shanture-next/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// CustomerAuthState 顾客鉴权快照
// 仅缓存存在的顾客，资料变更或删除时需要清理
type CustomerAuthState struct {
	CustomerID string `json:"customer_id"`
	Username   string `json:"username"`
	UpdatedAt  int64  `json:"updated_at"`
}

func customerAuthStateKey(customerID string) string {
	return "auth:customer:" + customerID
}

// BuildCustomerAuthState 从顾客模型构建鉴权快照
func BuildCustomerAuthState(customer *models.Customer) *CustomerAuthState {
	if customer == nil {
		return nil
	}
	return &CustomerAuthState{
		CustomerID: customer.ID,
		Username:   customer.Username,
		UpdatedAt:  time.Now().Unix(),
	}
}

// GetCustomerAuthState 获取顾客鉴权快照
func GetCustomerAuthState(ctx context.Context, customerID string) (*CustomerAuthState, bool, error) {
	if customerID == "" {
		return nil, false, nil
	}
	var state CustomerAuthState
	hit, err := GetJSON(ctx, customerAuthStateKey(customerID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetCustomerAuthState 写入顾客鉴权快照
func SetCustomerAuthState(ctx context.Context, state *CustomerAuthState) error {
	if state == nil || state.CustomerID == "" {
		return nil
	}
	return SetJSON(ctx, customerAuthStateKey(state.CustomerID), state, authStateCacheTTL)
}

// DelCustomerAuthState 删除顾客鉴权快照
func DelCustomerAuthState(ctx context.Context, customerID string) error {
	if customerID == "" {
		return nil
	}
	return Del(ctx, customerAuthStateKey(customerID))
}
