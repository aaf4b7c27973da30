package orders

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/m-wu/order-reports/internal/model"
	"github.com/m-wu/order-reports/internal/refdata"
)

// BranchColumn 导出时加在原始列前面的分店列名
const BranchColumn = "Branch"

// 订单导出必须包含的列，缺列在流开始时即报错
var requiredColumns = []string{
	"Name",
	"Fulfillment Status",
	"Shipping Name",
	"Shipping Phone",
	"Notes",
	"Taxes",
	"Shipping",
	"Total",
	"Lineitem name",
	"Lineitem price",
	"Lineitem quantity",
	"Shipping Method",
	"Shipping Street",
	"Shipping City",
}

// ReservedItems 两个非食品保留商品名
type ReservedItems struct {
	TipItemName         string
	DeliveryFeeItemName string
}

// IsFood 判断商品是否食品（保留名之外都算食品）
func (r ReservedItems) IsFood(itemName string) bool {
	return itemName != r.TipItemName && itemName != r.DeliveryFeeItemName
}

// Aggregator 订单聚合器：一次扫描把逐行商品流归并成订单和各分店视图
type Aggregator struct {
	schedule refdata.Schedule
	pickups  *refdata.PickupTable
	branches []string
	reserved ReservedItems
}

// NewAggregator 创建聚合器
// branches 为配置分店列表，两个哨兵分店自动追加在其后
func NewAggregator(schedule refdata.Schedule, pickups *refdata.PickupTable, branches []string, reserved ReservedItems) *Aggregator {
	all := make([]string, 0, len(branches)+2)
	all = append(all, branches...)
	all = append(all, model.BranchUnknownCity, model.BranchNotScheduled)
	return &Aggregator{
		schedule: schedule,
		pickups:  pickups,
		branches: all,
		reserved: reserved,
	}
}

// branchItemGroups 某分店按商品名分组的商品行，商品名保持首次出现顺序
type branchItemGroups struct {
	names []string
	items map[string][]*model.LineItem
}

func (g *branchItemGroups) add(item *model.LineItem) {
	if _, ok := g.items[item.Name]; !ok {
		g.names = append(g.names, item.Name)
	}
	g.items[item.Name] = append(g.items[item.Name], item)
}

// Result 单次聚合的全部输出，聚合完成后只读
type Result struct {
	Orders            map[string]*model.Order
	OrderNumbers      []string // 首次出现顺序
	Branches          []string // 配置分店 + 哨兵，固定顺序
	LineItemsByBranch map[string][]*model.LineItem
	Fieldnames        []string // Branch + 原始列
	RowCount          int

	itemGroups map[string]*branchItemGroups
	reserved   ReservedItems
}

// ensureBranch 为分店准备空桶；自提点表可能引入配置之外的分店名
func (r *Result) ensureBranch(branch string) {
	if _, ok := r.itemGroups[branch]; ok {
		return
	}
	r.Branches = append(r.Branches, branch)
	r.LineItemsByBranch[branch] = []*model.LineItem{}
	r.itemGroups[branch] = &branchItemGroups{items: map[string][]*model.LineItem{}}
}

// SortedOrderNumbers 订单号升序，作为所有可见遍历的规范顺序
func (r *Result) SortedOrderNumbers() []string {
	numbers := make([]string, len(r.OrderNumbers))
	copy(numbers, r.OrderNumbers)
	sort.Strings(numbers)
	return numbers
}

// Process 扫描订单导出流并完成聚合与后处理
func (a *Aggregator) Process(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("读取订单导出表头失败: %w", err)
	}

	idx := map[string]int{}
	fieldnames := make([]string, len(header))
	for i, col := range header {
		col = strings.TrimSpace(col)
		fieldnames[i] = col
		idx[col] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("订单导出缺少 %s 列", col)
		}
	}

	result := &Result{
		Orders:            map[string]*model.Order{},
		LineItemsByBranch: map[string][]*model.LineItem{},
		Fieldnames:        append([]string{BranchColumn}, fieldnames...),
		itemGroups:        map[string]*branchItemGroups{},
		reserved:          a.reserved,
	}
	for _, branch := range a.branches {
		result.ensureBranch(branch)
	}

	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("读取订单导出第 %d 行失败: %w", rowNum+1, err)
		}
		rowNum++

		get := func(col string) string {
			return strings.TrimSpace(record[idx[col]])
		}

		orderNumber := get("Name")
		order, ok := result.Orders[orderNumber]
		if !ok {
			order, err = a.newOrder(orderNumber, get, rowNum)
			if err != nil {
				return nil, err
			}
			result.Orders[orderNumber] = order
			result.OrderNumbers = append(result.OrderNumbers, orderNumber)
		}

		item, err := a.newLineItem(order, fieldnames, record, get, rowNum)
		if err != nil {
			return nil, err
		}

		order.LineItems = append(order.LineItems, item)
		result.ensureBranch(order.Branch)
		result.LineItemsByBranch[order.Branch] = append(result.LineItemsByBranch[order.Branch], item)
		result.itemGroups[order.Branch].add(item)
		result.RowCount++
	}

	postProcess(result)

	return result, nil
}

// newOrder 用订单首行构造订单，订单级字段此后不再变化
func (a *Aggregator) newOrder(orderNumber string, get func(string) string, rowNum int) (*model.Order, error) {
	taxes, err := parseAmount("Taxes", get("Taxes"), rowNum)
	if err != nil {
		return nil, err
	}
	shipping, err := parseAmount("Shipping", get("Shipping"), rowNum)
	if err != nil {
		return nil, err
	}
	total, err := parseAmount("Total", get("Total"), rowNum)
	if err != nil {
		return nil, err
	}

	assignment := ResolveBranch(get("Shipping Method"), get("Shipping Street"), get("Shipping City"), a.schedule, a.pickups)

	return &model.Order{
		OrderNumber:       orderNumber,
		FulfillmentStatus: get("Fulfillment Status"),
		ShippingName:      get("Shipping Name"),
		ShippingPhone:     FormatPhoneNumber(get("Shipping Phone")),
		Notes:             get("Notes"),
		Taxes:             taxes,
		Shipping:          shipping,
		Total:             total,
		Branch:            assignment.Branch,
		ShippingStreet:    assignment.ShippingStreet,
		ShippingCity:      assignment.ShippingCity,
		ShippingMethod:    assignment.ShippingMethod,
		PickupPoint:       assignment.PickupPoint,
	}, nil
}

// newLineItem 把一行原始记录变成商品行并挂到所属订单的分店
func (a *Aggregator) newLineItem(order *model.Order, fieldnames []string, record []string, get func(string) string, rowNum int) (*model.LineItem, error) {
	name := get("Lineitem name")

	price, err := parseAmount("Lineitem price", get("Lineitem price"), rowNum)
	if err != nil {
		return nil, err
	}
	quantity, err := parseCount("Lineitem quantity", get("Lineitem quantity"), rowNum)
	if err != nil {
		return nil, err
	}
	lineTaxes, err := parseOptionalAmount("Taxes", get("Taxes"), rowNum)
	if err != nil {
		return nil, err
	}
	lineTotal, err := parseOptionalAmount("Total", get("Total"), rowNum)
	if err != nil {
		return nil, err
	}

	raw := make(map[string]string, len(fieldnames)+1)
	for i, col := range fieldnames {
		raw[col] = strings.TrimSpace(record[i])
	}
	raw[BranchColumn] = order.Branch

	return &model.LineItem{
		Name:        name,
		ShortName:   shortName(name),
		Price:       price,
		Quantity:    quantity,
		Total:       price * float64(quantity),
		IsFood:      a.reserved.IsFood(name),
		OrderNumber: order.OrderNumber,
		Branch:      order.Branch,
		TaxesAmount: lineTaxes,
		TotalAmount: lineTotal,
		Raw:         raw,
	}, nil
}

// shortName 商品简称：全名的首个空白分隔词
func shortName(itemName string) string {
	fields := strings.Fields(itemName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func parseAmount(field, value string, rowNum int) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("第 %d 行 %s 字段无法解析为数值: %q", rowNum, field, value)
	}
	return v, nil
}

func parseOptionalAmount(field, value string, rowNum int) (float64, error) {
	if value == "" {
		return 0, nil
	}
	return parseAmount(field, value, rowNum)
}

func parseCount(field, value string, rowNum int) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("第 %d 行 %s 字段无法解析为整数: %q", rowNum, field, value)
	}
	return v, nil
}
