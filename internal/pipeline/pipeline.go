package pipeline

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-wu/order-reports/internal/config"
	"github.com/m-wu/order-reports/internal/export"
	"github.com/m-wu/order-reports/internal/model"
	"github.com/m-wu/order-reports/internal/orders"
	"github.com/m-wu/order-reports/internal/refdata"
	"github.com/m-wu/order-reports/internal/report"
	"github.com/m-wu/order-reports/internal/store"
)

// Pipeline 把一份订单导出跑成全套分店报表
// 每次 Run 的聚合状态各自独立，多个文件可并行处理
type Pipeline struct {
	cfg   *config.AppConfig
	store *store.Store // 为 nil 时不归档
}

// New 创建处理管线
func New(cfg *config.AppConfig, st *store.Store) *Pipeline {
	return &Pipeline{cfg: cfg, store: st}
}

// RunOptions 单次跑批参数
type RunOptions struct {
	FilePath string // 订单导出 csv 路径
	Weekday  string // 生效排班的星期几
}

// RunSummary 单次跑批结果摘要
type RunSummary struct {
	RunID      string         `json:"run_id,omitempty"`
	SourceFile string         `json:"source_file"`
	Weekday    string         `json:"weekday"`
	OutputDir  string         `json:"output_dir"`
	OrderCount int            `json:"order_count"`
	RowCount   int            `json:"row_count"`
	Warnings   []string       `json:"warnings"`
	Orders     []*model.Order `json:"orders"`
	Duration   time.Duration  `json:"duration"`
}

// Run 执行一次完整跑批：聚合、派生视图、结果表、工作簿、归档
func (p *Pipeline) Run(opts RunOptions) (*RunSummary, error) {
	start := time.Now()

	schedule, err := refdata.LoadSchedule(p.cfg.Data.SchedulePath, opts.Weekday, p.cfg.Business.Branches)
	if err != nil {
		return nil, err
	}
	pickups, err := refdata.LoadPickupTable(p.cfg.Data.PickupPath)
	if err != nil {
		return nil, err
	}

	exportName := strings.TrimSuffix(filepath.Base(opts.FilePath), filepath.Ext(opts.FilePath))
	log.Printf("处理订单导出: %s", opts.FilePath)

	f, err := os.Open(opts.FilePath)
	if err != nil {
		return nil, fmt.Errorf("打开订单导出失败: %w", err)
	}
	defer f.Close()

	aggregator := orders.NewAggregator(schedule, pickups, p.cfg.Business.Branches, orders.ReservedItems{
		TipItemName:         p.cfg.Business.TipItemName,
		DeliveryFeeItemName: p.cfg.Business.DeliveryFeeItemName,
	})
	result, err := aggregator.Process(f)
	if err != nil {
		return nil, err
	}

	summaries := orders.SummarizeItems(result)
	locations := orders.DeliveryLocations(result)
	ordersByBranch := orders.GroupOrdersByBranch(result)

	runDir, err := config.EnsureOutputDir(p.cfg, exportName)
	if err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}

	writer := export.NewWriter(runDir, exportName, opts.Weekday)
	if err := writer.CopyInput(opts.FilePath); err != nil {
		return nil, err
	}
	if err := writer.WriteAll(result, summaries, locations); err != nil {
		return nil, err
	}

	reportsDir := filepath.Join(runDir, "reports")
	if err := report.RenderItemsWorkbook(reportsDir, result.Branches, summaries); err != nil {
		return nil, err
	}
	if err := report.RenderOrdersWorkbook(reportsDir, result.Branches, ordersByBranch); err != nil {
		return nil, err
	}

	summary := &RunSummary{
		SourceFile: filepath.Base(opts.FilePath),
		Weekday:    opts.Weekday,
		OutputDir:  runDir,
		OrderCount: len(result.Orders),
		RowCount:   result.RowCount,
		Warnings:   branchWarnings(result, opts.Weekday),
		Duration:   time.Since(start),
	}
	for _, orderNumber := range result.SortedOrderNumbers() {
		summary.Orders = append(summary.Orders, result.Orders[orderNumber])
	}

	if p.store != nil {
		runID, err := p.store.SaveRun(summary.SourceFile, opts.Weekday, result)
		if err != nil {
			return nil, fmt.Errorf("归档失败: %w", err)
		}
		summary.RunID = runID
	}

	log.Printf("输出已保存到 %s", runDir)
	return summary, nil
}

// branchWarnings 收集需要人工复核的哨兵分店提示
func branchWarnings(result *orders.Result, weekday string) []string {
	warnings := []string{}
	if n := len(result.LineItemsByBranch[model.BranchUnknownCity]); n > 0 {
		warnings = append(warnings, fmt.Sprintf("%d 条商品行的收货城市不在排班表中", n))
	}
	if n := len(result.LineItemsByBranch[model.BranchNotScheduled]); n > 0 {
		warnings = append(warnings, fmt.Sprintf("%d 条商品行不在 %s 的配送范围内", n, weekday))
	}
	return warnings
}
