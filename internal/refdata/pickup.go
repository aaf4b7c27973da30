package refdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/m-wu/order-reports/internal/model"
)

// PickupTable 自提点表，保持文件行序
// 匹配时按行序对 shipping method 做子串扫描，先命中者生效
type PickupTable struct {
	locations []model.PickupLocation
}

// NewPickupTable 用给定自提点构造表，顺序即匹配优先级
func NewPickupTable(locations []model.PickupLocation) *PickupTable {
	return &PickupTable{locations: locations}
}

// ParsePickupTable 解析自提点表 (csv)
func ParsePickupTable(r io.Reader) (*PickupTable, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("读取自提点表表头失败: %w", err)
	}

	idx := map[string]int{}
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}
	for _, col := range []string{"pickup_shipping_method", "branch", "street_address", "city"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("自提点表缺少 %s 列", col)
		}
	}

	table := &PickupTable{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("读取自提点表失败: %w", err)
		}
		table.locations = append(table.locations, model.PickupLocation{
			Method:        strings.TrimSpace(record[idx["pickup_shipping_method"]]),
			Branch:        strings.TrimSpace(record[idx["branch"]]),
			StreetAddress: strings.TrimSpace(record[idx["street_address"]]),
			City:          strings.TrimSpace(record[idx["city"]]),
		})
	}

	return table, nil
}

// LoadPickupTable 从文件加载自提点表
func LoadPickupTable(path string) (*PickupTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开自提点表失败: %w", err)
	}
	defer f.Close()
	return ParsePickupTable(f)
}

// Match 按行序扫描，返回 shipping method 包含其自提方式子串的第一个自提点
func (t *PickupTable) Match(shippingMethod string) (model.PickupLocation, bool) {
	for _, loc := range t.locations {
		if loc.Method != "" && strings.Contains(shippingMethod, loc.Method) {
			return loc, true
		}
	}
	return model.PickupLocation{}, false
}

// Locations 返回全部自提点（文件行序）
func (t *PickupTable) Locations() []model.PickupLocation {
	return t.locations
}
