package public

import "github.com/tribute-next/internal/provider"

// Handler 公开接口处理器入口
// 说明：站点没有登录态，所有接口都是公开的。
type Handler struct {
	*provider.Container
}

// New 创建公开处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
