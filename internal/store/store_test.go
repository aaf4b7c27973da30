package store

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-wu/order-reports/internal/orders"
	"github.com/m-wu/order-reports/internal/refdata"
)

const testExport = "Name,Fulfillment Status,Shipping Name,Shipping Phone,Notes,Taxes,Shipping,Total,Lineitem name,Lineitem price,Lineitem quantity,Shipping Method,Shipping Street,Shipping City\n" +
	"#1001,fulfilled,张三,4251234567,不要辣,1.00,2.00,13.00,酸辣粉 Hot and Sour Noodles,5.00,2,Standard,500 Pine St,Seattle\n" +
	"#1001,fulfilled,张三,4251234567,,,,,小费 Tip,3.00,1,Standard,500 Pine St,Seattle\n"

func testStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(filepath.Join(t.TempDir(), "order_reports.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func testResult(t *testing.T) *orders.Result {
	t.Helper()
	aggregator := orders.NewAggregator(
		refdata.Schedule{"SEATTLE": "Edmonds"},
		refdata.NewPickupTable(nil),
		[]string{"Edmonds", "Redmond"},
		orders.ReservedItems{TipItemName: "小费 Tip", DeliveryFeeItemName: "运费补拍"},
	)
	result, err := aggregator.Process(strings.NewReader(testExport))
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	return result
}

func TestSaveRun_RoundTrip(t *testing.T) {
	t.Parallel()

	st := testStore(t)
	result := testResult(t)

	runID, err := st.SaveRun("orders_export_0418.csv", "Saturday", result)
	if err != nil {
		t.Fatalf("save run: %v", err)
	}
	if runID == "" {
		t.Fatalf("empty run id")
	}

	runs, err := st.ListRuns(10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs want 1 got %d", len(runs))
	}
	run := runs[0]
	if run.ID != runID || run.SourceFile != "orders_export_0418.csv" || run.Weekday != "Saturday" {
		t.Fatalf("unexpected run: %+v", run)
	}
	if run.OrderCount != 1 || run.ItemCount != 2 {
		t.Fatalf("counts want 1/2 got %d/%d", run.OrderCount, run.ItemCount)
	}

	archived, err := st.GetRunOrders(runID)
	if err != nil {
		t.Fatalf("get run orders: %v", err)
	}
	if len(archived) != 1 {
		t.Fatalf("orders want 1 got %d", len(archived))
	}
	order := archived[0]
	if order.OrderNumber != "#1001" || order.Branch != "Edmonds" {
		t.Fatalf("unexpected order: %+v", order)
	}
	if order.FoodItemSubtotal != 10.00 || order.TipTotal != 3.00 || order.ShippingTotal != 2.00 {
		t.Fatalf("totals not archived: %+v", order)
	}
}

func TestGetRunOrders_UnknownRun(t *testing.T) {
	t.Parallel()

	st := testStore(t)
	archived, err := st.GetRunOrders("no-such-run")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(archived) != 0 {
		t.Fatalf("want empty, got %d", len(archived))
	}
}
