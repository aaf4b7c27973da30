package orders

import (
	"github.com/m-wu/order-reports/internal/model"
)

// DeliveryLocations 把收货地址完全相同的订单聚成配送点
// 没有食品的订单（纯小费/运费单）不参与配送；
// 订单按订单号升序遍历，配送点按地址首次出现顺序给出，保证输出可复现；
// location_id 取该地址首单的自提点，无自提点时取首单订单号
func DeliveryLocations(result *Result) []*model.DeliveryLocation {
	var addresses []string
	ordersByAddress := map[string][]*model.Order{}

	for _, orderNumber := range result.SortedOrderNumbers() {
		order := result.Orders[orderNumber]
		if order.FoodItemCount == 0 {
			continue
		}
		address := order.ShippingStreet + "," + order.ShippingCity
		if _, ok := ordersByAddress[address]; !ok {
			addresses = append(addresses, address)
		}
		ordersByAddress[address] = append(ordersByAddress[address], order)
	}

	locations := make([]*model.DeliveryLocation, 0, len(addresses))
	for _, address := range addresses {
		orders := ordersByAddress[address]
		first := orders[0]

		locationID := first.PickupPoint
		if locationID == "" {
			locationID = first.OrderNumber
		}

		location := &model.DeliveryLocation{
			LocationID:     locationID,
			OrderCount:     len(orders),
			Branch:         first.Branch,
			ShippingStreet: first.ShippingStreet,
			ShippingCity:   first.ShippingCity,
			ShippingName:   first.ShippingName,
			ShippingPhone:  first.ShippingPhone,
		}
		for _, order := range orders {
			location.OrderNumbers = append(location.OrderNumbers, order.OrderNumber)
		}
		locations = append(locations, location)
	}

	return locations
}

// GroupOrdersByBranch 订单按分店分桶，桶内按订单号升序
// 没有订单的分店对应空桶，属正常状态
func GroupOrdersByBranch(result *Result) map[string][]*model.Order {
	ordersByBranch := map[string][]*model.Order{}
	for _, branch := range result.Branches {
		ordersByBranch[branch] = []*model.Order{}
	}
	for _, orderNumber := range result.SortedOrderNumbers() {
		order := result.Orders[orderNumber]
		ordersByBranch[order.Branch] = append(ordersByBranch[order.Branch], order)
	}
	return ordersByBranch
}
