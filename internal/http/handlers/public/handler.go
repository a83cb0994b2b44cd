package public

import "github.com/shanture-next/internal/provider"

// Handler 前台/公开接口处理器入口
// 说明：顾客侧与公开商品 API 共用该处理器。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
