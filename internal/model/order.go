package model

// 分店分配失败时使用的两个哨兵值。
// unknown_city 表示排班表中完全没有该城市；not_scheduled 表示该城市当天不配送。
const (
	BranchUnknownCity  = "unknown_city"
	BranchNotScheduled = "not_scheduled"
)

// LineItem 订单中的单个商品行
type LineItem struct {
	Name      string  `json:"name"`       // 商品全名
	ShortName string  `json:"short_name"` // 商品简称（全名首个空白分隔词）
	Price     float64 `json:"price"`      // 单价
	Quantity  int     `json:"quantity"`   // 数量
	Total     float64 `json:"total"`      // 行小计 = 单价 × 数量
	IsFood    bool    `json:"is_food"`    // 是否食品（小费、运费为非食品）

	// 所属订单透传字段
	OrderNumber string `json:"order_number"`
	Branch      string `json:"branch"`

	// 行上透传的 Taxes / Total 列（仅订单首行非空），空值记 0
	TaxesAmount float64 `json:"taxes_amount"`
	TotalAmount float64 `json:"total_amount"`

	// 原始 csv 字段透传，用于按分店导出保持原始列
	Raw map[string]string `json:"-"`
}

// Order 归一化后的订单；订单级字段以首次出现的行为准
type Order struct {
	OrderNumber       string  `json:"order_number"`
	FulfillmentStatus string  `json:"fulfillment_status"`
	ShippingName      string  `json:"shipping_name"`
	ShippingPhone     string  `json:"shipping_phone"`
	Notes             string  `json:"notes"`
	Taxes             float64 `json:"taxes"`
	Shipping          float64 `json:"shipping"`
	Total             float64 `json:"total"`

	// 分店分配结果
	Branch         string `json:"branch"`
	ShippingStreet string `json:"shipping_street"`
	ShippingCity   string `json:"shipping_city"`
	ShippingMethod string `json:"shipping_method"`
	PickupPoint    string `json:"pickup_point,omitempty"` // 命中自提点时为该自提方式，否则为空

	LineItems []*LineItem `json:"line_items"`

	// 后处理阶段补齐的汇总字段
	ItemCount        int     `json:"item_count"`
	FoodItemCount    int     `json:"food_item_count"`
	FoodItemSubtotal float64 `json:"food_item_subtotal"`
	TipTotal         float64 `json:"tip_total"`
	ShippingTotal    float64 `json:"shipping_total"`
	TaxTotal         float64 `json:"tax_total"`
	GrandTotal       float64 `json:"grand_total"`
}

// ItemNote 商品汇总中一条带备注的订单记录
type ItemNote struct {
	Note        string `json:"note"`
	Quantity    int    `json:"quantity"`
	OrderNumber string `json:"order_number"`
}

// ItemSummary 某分店单个商品的汇总
type ItemSummary struct {
	ItemName  string     `json:"item_name"`
	ShortName string     `json:"short_name"`
	Count     int        `json:"count"` // 数量合计
	Notes     []ItemNote `json:"notes"`
}

// DeliveryLocation 配送点：收货地址完全相同的订单聚为一个点
type DeliveryLocation struct {
	LocationID   string   `json:"location_id"` // 首单自提点，无自提点时为首单订单号
	OrderCount   int      `json:"order_count"`
	OrderNumbers []string `json:"order_numbers"`

	// 代表订单（该地址下的首单）的元信息
	Branch         string `json:"branch"`
	ShippingStreet string `json:"shipping_street"`
	ShippingCity   string `json:"shipping_city"`
	ShippingName   string `json:"shipping_name"`
	ShippingPhone  string `json:"shipping_phone"`
}

// PickupLocation 自提点：按 shipping method 子串匹配覆盖城市分配
type PickupLocation struct {
	Method        string `json:"method"` // 匹配用的自提方式子串
	Branch        string `json:"branch"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
}
