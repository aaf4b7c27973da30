package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/m-wu/order-reports/internal/pipeline"
	"github.com/m-wu/order-reports/internal/refdata"
)

// GetStatus 系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"branches": h.cfg.Business.Branches,
	})
}

// Process 上传订单导出并执行一次跑批
// POST /api/process (multipart: file, weekday)
func (h *Handler) Process(c *gin.Context) {
	uploadedFile, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	weekday := c.DefaultPostForm("weekday", time.Now().Weekday().String())
	if !validWeekday(weekday) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("无效的星期: %s", weekday)})
		return
	}

	// 保存到临时目录，跑批以文件为单位
	tempFilePath := filepath.Join(os.TempDir(),
		fmt.Sprintf("order_reports_%d_%s", time.Now().Unix(), filepath.Base(uploadedFile.Filename)))
	if err := c.SaveUploadedFile(uploadedFile, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
		return
	}
	defer os.Remove(tempFilePath)

	p := pipeline.New(h.cfg, h.store)
	summary, err := p.Run(pipeline.RunOptions{
		FilePath: tempFilePath,
		Weekday:  weekday,
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ListRuns 归档跑批列表
// GET /api/runs
func (h *Handler) ListRuns(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, gin.H{"runs": []any{}})
		return
	}
	runs, err := h.store.ListRuns(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// GetRunOrders 某次跑批的订单汇总
// GET /api/runs/:id/orders
func (h *Handler) GetRunOrders(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "归档未启用"})
		return
	}
	runOrders, err := h.store.GetRunOrders(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": runOrders})
}

func validWeekday(weekday string) bool {
	for _, day := range refdata.Weekdays {
		if day == weekday {
			return true
		}
	}
	return false
}
