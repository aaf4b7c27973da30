package orders

import (
	"strings"

	"github.com/m-wu/order-reports/internal/model"
	"github.com/m-wu/order-reports/internal/refdata"
)

// BranchAssignment 单个订单的分店分配结果
type BranchAssignment struct {
	Branch         string
	ShippingStreet string
	ShippingCity   string
	ShippingMethod string
	PickupPoint    string // 命中自提点时为自提方式，否则为空
}

// ResolveBranch 决定订单的配送分店
// 先按行序扫描自提点表做子串匹配，命中的自提点直接给出分店和取货地址；
// 否则按收货城市（大写）查当天排班：
// 城市不在表中记 unknown_city，在表中但当天为空记 not_scheduled。
// 两个哨兵值来自不同的判定路径，下游分开提示，这里不合并。
func ResolveBranch(shippingMethod, shippingStreet, shippingCity string, schedule refdata.Schedule, pickups *refdata.PickupTable) BranchAssignment {
	if loc, ok := pickups.Match(shippingMethod); ok {
		return BranchAssignment{
			Branch:         loc.Branch,
			ShippingStreet: loc.StreetAddress,
			ShippingCity:   loc.City,
			ShippingMethod: shippingMethod,
			PickupPoint:    loc.Method,
		}
	}

	branch, ok := schedule[strings.ToUpper(shippingCity)]
	if !ok {
		branch = model.BranchUnknownCity
	} else if branch == "" {
		branch = model.BranchNotScheduled
	}

	return BranchAssignment{
		Branch:         branch,
		ShippingStreet: shippingStreet,
		ShippingCity:   shippingCity,
		ShippingMethod: shippingMethod,
	}
}
