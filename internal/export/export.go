package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/m-wu/order-reports/internal/model"
	"github.com/m-wu/order-reports/internal/orders"
)

const csvExt = ".csv"

// Writer 把一次聚合的结果写成输出目录下的各张 csv 表
type Writer struct {
	runDir     string // 本次导出的输出目录
	exportName string // 订单导出文件名（不含扩展名），用作输出文件前缀
	weekday    string
}

// NewWriter 创建结果表写出器
func NewWriter(runDir, exportName, weekday string) *Writer {
	return &Writer{
		runDir:     runDir,
		exportName: exportName,
		weekday:    weekday,
	}
}

// CopyInput 把原始订单导出复制进输出目录留档
func (w *Writer) CopyInput(inputPath string) error {
	src, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("打开订单导出失败: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(w.runDir, filepath.Base(inputPath)))
	if err != nil {
		return fmt.Errorf("留档订单导出失败: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("留档订单导出失败: %w", err)
	}
	return nil
}

// WriteAll 写出全部结果表
func (w *Writer) WriteAll(result *orders.Result, summaries map[string][]*model.ItemSummary, locations []*model.DeliveryLocation) error {
	if err := w.WriteOrderSummary(result); err != nil {
		return err
	}
	if err := w.WriteDeliveryLocations(locations); err != nil {
		return err
	}
	if err := w.WriteLineItemsByBranch(result); err != nil {
		return err
	}
	if err := w.WriteAllLineItems(result); err != nil {
		return err
	}
	if err := w.WriteItemSummaries(summaries); err != nil {
		return err
	}
	return nil
}

// WriteOrderSummary 订单总表，按订单号升序
func (w *Writer) WriteOrderSummary(result *orders.Result) error {
	path := filepath.Join(w.runDir, w.exportName+"_order_summary"+csvExt)

	rows := [][]string{{
		"order_number", "fulfillment_status", "shipping_street", "shipping_city",
		"shipping_name", "shipping_phone", "branch", "shipping_method",
		"item_count", "food_item_count",
	}}
	for _, orderNumber := range result.SortedOrderNumbers() {
		order := result.Orders[orderNumber]
		rows = append(rows, []string{
			order.OrderNumber, order.FulfillmentStatus, order.ShippingStreet, order.ShippingCity,
			order.ShippingName, order.ShippingPhone, order.Branch, order.ShippingMethod,
			strconv.Itoa(order.ItemCount), strconv.Itoa(order.FoodItemCount),
		})
	}

	return writeCSV(path, rows)
}

// WriteDeliveryLocations 配送点表，按 location_id 升序
func (w *Writer) WriteDeliveryLocations(locations []*model.DeliveryLocation) error {
	path := filepath.Join(w.runDir, w.exportName+"_delivery_locations"+csvExt)

	sorted := make([]*model.DeliveryLocation, len(locations))
	copy(sorted, locations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LocationID < sorted[j].LocationID
	})

	rows := [][]string{{
		"location_id", "branch", "shipping_street", "shipping_city",
		"order_count", "order_numbers",
	}}
	for _, loc := range sorted {
		rows = append(rows, []string{
			loc.LocationID, loc.Branch, loc.ShippingStreet, loc.ShippingCity,
			strconv.Itoa(loc.OrderCount), strings.Join(loc.OrderNumbers, " "),
		})
	}

	return writeCSV(path, rows)
}

// WriteLineItemsByBranch 每个分店一张商品行表，保留原始列并前置 Branch 列
// 两个哨兵分店的表写出时提醒人工复核；桶为空时清掉上一轮留下的旧表
func (w *Writer) WriteLineItemsByBranch(result *orders.Result) error {
	for _, branch := range result.Branches {
		items := result.LineItemsByBranch[branch]
		path := filepath.Join(w.runDir, fmt.Sprintf("%s_line_items_%s%s", w.exportName, branch, csvExt))

		if len(items) == 0 {
			if err := removeStale(path); err != nil {
				return err
			}
			continue
		}

		switch branch {
		case model.BranchUnknownCity:
			log.Printf("警告: %s 中的订单收货城市不在排班表中，请人工复核", path)
		case model.BranchNotScheduled:
			log.Printf("警告: %s 中的订单不在 %s 的配送范围内，请人工复核", path, w.weekday)
		}

		if err := writeCSV(path, lineItemRows(result.Fieldnames, items)); err != nil {
			return err
		}
	}
	return nil
}

// WriteAllLineItems 全部分店商品行合并成一张表，分店按固定顺序
func (w *Writer) WriteAllLineItems(result *orders.Result) error {
	path := filepath.Join(w.runDir, w.exportName+"_line_items_all_branches"+csvExt)

	var items []*model.LineItem
	for _, branch := range result.Branches {
		items = append(items, result.LineItemsByBranch[branch]...)
	}

	return writeCSV(path, lineItemRows(result.Fieldnames, items))
}

// WriteItemSummaries 每个分店一张商品汇总表（已按数量降序），空表清理旧文件
func (w *Writer) WriteItemSummaries(summaries map[string][]*model.ItemSummary) error {
	branches := make([]string, 0, len(summaries))
	for branch := range summaries {
		branches = append(branches, branch)
	}
	sort.Strings(branches)

	for _, branch := range branches {
		branchSummaries := summaries[branch]
		path := filepath.Join(w.runDir, fmt.Sprintf("%s_item_summaries_%s%s", w.exportName, branch, csvExt))

		if len(branchSummaries) == 0 {
			if err := removeStale(path); err != nil {
				return err
			}
			continue
		}

		rows := [][]string{{"count", "short_name"}}
		for _, summary := range branchSummaries {
			rows = append(rows, []string{strconv.Itoa(summary.Count), summary.ShortName})
		}
		if err := writeCSV(path, rows); err != nil {
			return err
		}
	}
	return nil
}

func lineItemRows(fieldnames []string, items []*model.LineItem) [][]string {
	rows := [][]string{fieldnames}
	for _, item := range items {
		row := make([]string, len(fieldnames))
		for i, col := range fieldnames {
			row[i] = item.Raw[col]
		}
		rows = append(rows, row)
	}
	return rows
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建输出文件 %s 失败: %w", path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("写出 %s 失败: %w", path, err)
	}
	return nil
}

func removeStale(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	log.Printf("清理旧文件: %s", path)
	return os.Remove(path)
}
