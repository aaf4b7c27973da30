package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/m-wu/order-reports/internal/model"
)

// 给门店打印用的两份工作簿文件名
const (
	ItemsWorkbookName  = "items.xlsx"
	OrdersWorkbookName = "orders.xlsx"
)

// RenderItemsWorkbook 生成备货工作簿：每个有货的分店一个 sheet
// sheet 内商品行保持传入顺序（已按数量降序），带备注的商品在其下逐条列出备注
func RenderItemsWorkbook(reportsDir string, branches []string, summaries map[string][]*model.ItemSummary) error {
	path := filepath.Join(reportsDir, ItemsWorkbookName)

	f := excelize.NewFile()
	defer f.Close()

	wrote := false
	for _, branch := range branches {
		branchSummaries := summaries[branch]
		if len(branchSummaries) == 0 {
			continue
		}

		if err := addSheet(f, branch, !wrote); err != nil {
			return err
		}
		wrote = true

		headerStyle, err := boldStyle(f)
		if err != nil {
			return err
		}

		setCell(f, branch, "A1", "数量")
		setCell(f, branch, "B1", "商品")
		_ = f.SetCellStyle(branch, "A1", "B1", headerStyle)
		_ = f.SetColWidth(branch, "B", "B", 40)

		row := 2
		for _, summary := range branchSummaries {
			setCell(f, branch, cell("A", row), summary.Count)
			setCell(f, branch, cell("B", row), summary.ShortName)
			row++
			for _, note := range summary.Notes {
				setCell(f, branch, cell("B", row),
					fmt.Sprintf("%s ×%d %s", note.OrderNumber, note.Quantity, note.Note))
				row++
			}
		}
	}

	if !wrote {
		return removeStale(path)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("保存备货工作簿失败: %w", err)
	}
	return nil
}

// RenderOrdersWorkbook 生成分店订单工作簿：每个有单的分店一个 sheet
// 每个订单一段：订单头一行，商品行随后，段间留空行
func RenderOrdersWorkbook(reportsDir string, branches []string, ordersByBranch map[string][]*model.Order) error {
	path := filepath.Join(reportsDir, OrdersWorkbookName)

	f := excelize.NewFile()
	defer f.Close()

	wrote := false
	for _, branch := range branches {
		branchOrders := ordersByBranch[branch]
		if len(branchOrders) == 0 {
			continue
		}

		if err := addSheet(f, branch, !wrote); err != nil {
			return err
		}
		wrote = true

		headerStyle, err := boldStyle(f)
		if err != nil {
			return err
		}
		_ = f.SetColWidth(branch, "A", "A", 12)
		_ = f.SetColWidth(branch, "B", "C", 28)

		row := 1
		for _, order := range branchOrders {
			setCell(f, branch, cell("A", row), order.OrderNumber)
			setCell(f, branch, cell("B", row), order.ShippingName)
			setCell(f, branch, cell("C", row), order.ShippingPhone)
			setCell(f, branch, cell("D", row), order.ShippingStreet)
			setCell(f, branch, cell("E", row), order.ShippingCity)
			_ = f.SetCellStyle(branch, cell("A", row), cell("E", row), headerStyle)
			row++

			if order.Notes != "" {
				setCell(f, branch, cell("B", row), "备注: "+order.Notes)
				row++
			}

			for _, item := range order.LineItems {
				setCell(f, branch, cell("A", row), item.Quantity)
				setCell(f, branch, cell("B", row), item.Name)
				setCell(f, branch, cell("C", row), item.Total)
				row++
			}

			setCell(f, branch, cell("A", row), "共 "+strconv.Itoa(order.ItemCount)+" 件")
			setCell(f, branch, cell("C", row), order.FoodItemSubtotal)
			row += 2
		}
	}

	if !wrote {
		return removeStale(path)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("保存订单工作簿失败: %w", err)
	}
	return nil
}

// addSheet 新建分店 sheet；首个 sheet 直接复用默认 Sheet1 改名
func addSheet(f *excelize.File, name string, first bool) error {
	if first {
		if err := f.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("创建 %s sheet 失败: %w", name, err)
		}
		return nil
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("创建 %s sheet 失败: %w", name, err)
	}
	return nil
}

func boldStyle(f *excelize.File) (int, error) {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, fmt.Errorf("创建样式失败: %w", err)
	}
	return style, nil
}

func setCell(f *excelize.File, sheet, ref string, value interface{}) {
	_ = f.SetCellValue(sheet, ref, value)
}

func cell(col string, row int) string {
	return col + strconv.Itoa(row)
}

func removeStale(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return os.Remove(path)
}
