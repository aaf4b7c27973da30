package server

import (
	"github.com/gin-gonic/gin"

	"github.com/m-wu/order-reports/internal/api"
	"github.com/m-wu/order-reports/internal/config"
	"github.com/m-wu/order-reports/internal/store"
)

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
}

// NewServer 创建服务器
// st 可以为 nil（归档关闭时），归档接口返回空结果
func NewServer(cfg *config.AppConfig, st *store.Store) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router: gin.Default(),
		store:  st,
	}

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	handler := api.NewHandler(cfg, st)
	group := s.router.Group("/api")
	{
		handler.RegisterRoutes(group)
	}

	return s
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router 返回路由（用于测试）
func (s *Server) Router() *gin.Engine {
	return s.router
}
