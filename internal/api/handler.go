package api

import (
	"github.com/gin-gonic/gin"

	"github.com/m-wu/order-reports/internal/config"
	"github.com/m-wu/order-reports/internal/store"
)

// Handler API 处理器
type Handler struct {
	cfg   *config.AppConfig
	store *store.Store
}

// NewHandler 创建 API 处理器
func NewHandler(cfg *config.AppConfig, store *store.Store) *Handler {
	return &Handler{
		cfg:   cfg,
		store: store,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 上传订单导出并跑批
	router.POST("/process", h.Process)

	// 归档查询
	router.GET("/runs", h.ListRuns)
	router.GET("/runs/:id/orders", h.GetRunOrders)
}
