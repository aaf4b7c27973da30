package orders

import (
	"testing"

	"github.com/m-wu/order-reports/internal/model"
	"github.com/m-wu/order-reports/internal/refdata"
)

func testPickups() *refdata.PickupTable {
	return refdata.NewPickupTable([]model.PickupLocation{
		{Method: "Local Pickup - Edmonds", Branch: "Edmonds", StreetAddress: "123 Main St", City: "Edmonds"},
		{Method: "Local Pickup - Redmond", Branch: "Redmond", StreetAddress: "456 Bear Creek Pkwy", City: "Redmond"},
	})
}

func testSchedule() refdata.Schedule {
	return refdata.Schedule{
		"SEATTLE":  "Edmonds",
		"BELLEVUE": "Redmond",
		"KENMORE":  "", // 排班表中存在但当天不配送
	}
}

func TestResolveBranch_PickupOverride(t *testing.T) {
	t.Parallel()

	// 自提点命中时收货城市不参与判定
	got := ResolveBranch("Local Pickup - Edmonds (Saturday)", "1 Nowhere Ave", "Kirkland", testSchedule(), testPickups())
	if got.Branch != "Edmonds" {
		t.Fatalf("branch want=Edmonds got=%s", got.Branch)
	}
	if got.PickupPoint != "Local Pickup - Edmonds" {
		t.Fatalf("pickup point want set, got %q", got.PickupPoint)
	}
	if got.ShippingStreet != "123 Main St" || got.ShippingCity != "Edmonds" {
		t.Fatalf("pickup address not applied: %s / %s", got.ShippingStreet, got.ShippingCity)
	}
}

func TestResolveBranch_FirstPickupMatchWins(t *testing.T) {
	t.Parallel()

	pickups := refdata.NewPickupTable([]model.PickupLocation{
		{Method: "Pickup", Branch: "Edmonds", StreetAddress: "a", City: "b"},
		{Method: "Pickup - Redmond", Branch: "Redmond", StreetAddress: "c", City: "d"},
	})
	got := ResolveBranch("Pickup - Redmond", "", "", testSchedule(), pickups)
	if got.Branch != "Edmonds" {
		t.Fatalf("table order should break ties, got %s", got.Branch)
	}
}

func TestResolveBranch_ScheduledCity(t *testing.T) {
	t.Parallel()

	got := ResolveBranch("Standard", "500 Pine St", "Seattle", testSchedule(), testPickups())
	if got.Branch != "Edmonds" {
		t.Fatalf("branch want=Edmonds got=%s", got.Branch)
	}
	if got.PickupPoint != "" {
		t.Fatalf("pickup point should be empty, got %q", got.PickupPoint)
	}
	if got.ShippingStreet != "500 Pine St" || got.ShippingCity != "Seattle" {
		t.Fatalf("row address should be kept: %s / %s", got.ShippingStreet, got.ShippingCity)
	}
}

func TestResolveBranch_UnknownCity(t *testing.T) {
	t.Parallel()

	got := ResolveBranch("Standard", "1 Somewhere", "Kirkland", testSchedule(), testPickups())
	if got.Branch != model.BranchUnknownCity {
		t.Fatalf("branch want=%s got=%s", model.BranchUnknownCity, got.Branch)
	}
}

func TestResolveBranch_NotScheduled(t *testing.T) {
	t.Parallel()

	// 城市在排班表中但当天映射为空，与完全未知的城市是两种不同结果
	got := ResolveBranch("Standard", "1 Somewhere", "Kenmore", testSchedule(), testPickups())
	if got.Branch != model.BranchNotScheduled {
		t.Fatalf("branch want=%s got=%s", model.BranchNotScheduled, got.Branch)
	}
}
