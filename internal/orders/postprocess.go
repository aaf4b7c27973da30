package orders

import (
	"math"

	"github.com/m-wu/order-reports/internal/model"
)

// postProcess 聚合完成后为每个订单补齐汇总字段
// 按订单号升序逐单计算，单与单之间互不影响
func postProcess(result *Result) {
	for _, orderNumber := range result.SortedOrderNumbers() {
		finalizeOrder(result.Orders[orderNumber], result.reserved)
	}
}

// finalizeOrder 计算单个订单的数量与金额汇总
// food_item_subtotal 四舍五入（远离零）保留两位小数
func finalizeOrder(order *model.Order, reserved ReservedItems) {
	var foodSubtotal, tipTotal, feeTotal, taxTotal, grandTotal float64
	foodCount := 0

	for _, item := range order.LineItems {
		switch item.Name {
		case reserved.TipItemName:
			tipTotal += item.Total
		case reserved.DeliveryFeeItemName:
			feeTotal += item.Total
		default:
			foodSubtotal += item.Total
			foodCount++
		}
		taxTotal += item.TaxesAmount
		grandTotal += item.TotalAmount
	}

	order.ItemCount = len(order.LineItems)
	order.FoodItemCount = foodCount
	order.FoodItemSubtotal = roundCents(foodSubtotal)
	order.TipTotal = tipTotal
	order.ShippingTotal = order.Shipping + feeTotal
	order.TaxTotal = taxTotal
	order.GrandTotal = grandTotal
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
