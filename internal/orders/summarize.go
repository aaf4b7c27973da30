package orders

import (
	"sort"

	"github.com/m-wu/order-reports/internal/model"
)

// SummarizeItems 按分店汇总食品商品
// 每个分店内商品按数量合计降序排列，数量相同按首次出现顺序（稳定排序）；
// 两个保留非食品名不进入汇总
func SummarizeItems(result *Result) map[string][]*model.ItemSummary {
	summaries := map[string][]*model.ItemSummary{}

	for _, branch := range result.Branches {
		groups := result.itemGroups[branch]
		branchSummaries := []*model.ItemSummary{}

		for _, itemName := range groups.names {
			if !result.reserved.IsFood(itemName) {
				continue
			}
			items := groups.items[itemName]

			summary := &model.ItemSummary{
				ItemName:  itemName,
				ShortName: items[0].ShortName,
				Notes:     []model.ItemNote{},
			}
			for _, item := range items {
				summary.Count += item.Quantity
				if note := result.Orders[item.OrderNumber].Notes; note != "" {
					summary.Notes = append(summary.Notes, model.ItemNote{
						Note:        note,
						Quantity:    item.Quantity,
						OrderNumber: item.OrderNumber,
					})
				}
			}
			branchSummaries = append(branchSummaries, summary)
		}

		sort.SliceStable(branchSummaries, func(i, j int) bool {
			return branchSummaries[i].Count > branchSummaries[j].Count
		})
		summaries[branch] = branchSummaries
	}

	return summaries
}
