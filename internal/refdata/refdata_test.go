package refdata

import (
	"strings"
	"testing"
)

const testScheduleTSV = "City\tMonday\tTuesday\tWednesday\tThursday\tFriday\tSaturday\tSunday\n" +
	"Seattle\t\t\tEdmonds\t\t\tEdmonds\t\n" +
	"Bellevue\tRedmond\t\t\t\t\tRedmond\t\n" +
	"Kenmore\t\t\t\t\t\t\t\n"

func TestParseSchedule_WeekdayColumn(t *testing.T) {
	t.Parallel()

	schedule, err := ParseSchedule(strings.NewReader(testScheduleTSV), "Saturday")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	// 城市键统一大写
	if schedule["SEATTLE"] != "Edmonds" {
		t.Fatalf("SEATTLE want Edmonds got %q", schedule["SEATTLE"])
	}
	if schedule["BELLEVUE"] != "Redmond" {
		t.Fatalf("BELLEVUE want Redmond got %q", schedule["BELLEVUE"])
	}
	// 表中存在但当天为空：键在，值为空串
	if value, ok := schedule["KENMORE"]; !ok || value != "" {
		t.Fatalf("KENMORE should map to empty value, got %q ok=%v", value, ok)
	}
	if _, ok := schedule["KIRKLAND"]; ok {
		t.Fatalf("absent city should stay absent")
	}
}

func TestParseSchedule_OtherWeekday(t *testing.T) {
	t.Parallel()

	schedule, err := ParseSchedule(strings.NewReader(testScheduleTSV), "Monday")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if schedule["SEATTLE"] != "" {
		t.Fatalf("SEATTLE not scheduled on Monday, got %q", schedule["SEATTLE"])
	}
	if schedule["BELLEVUE"] != "Redmond" {
		t.Fatalf("BELLEVUE want Redmond got %q", schedule["BELLEVUE"])
	}
}

func TestParseSchedule_MissingColumn(t *testing.T) {
	t.Parallel()

	if _, err := ParseSchedule(strings.NewReader("Town\tMonday\nSeattle\tEdmonds\n"), "Monday"); err == nil {
		t.Fatalf("expected error for missing City column")
	}
	if _, err := ParseSchedule(strings.NewReader("City\tMonday\nSeattle\tEdmonds\n"), "Saturday"); err == nil {
		t.Fatalf("expected error for missing weekday column")
	}
}

func TestParsePickupTable_OrderPreserved(t *testing.T) {
	t.Parallel()

	input := "pickup_shipping_method,branch,street_address,city\n" +
		"Local Pickup - Edmonds,Edmonds,123 Main St,Edmonds\n" +
		"Local Pickup - Redmond,Redmond,456 Bear Creek Pkwy,Redmond\n"
	table, err := ParsePickupTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	locations := table.Locations()
	if len(locations) != 2 {
		t.Fatalf("locations want 2 got %d", len(locations))
	}
	if locations[0].Method != "Local Pickup - Edmonds" || locations[1].Method != "Local Pickup - Redmond" {
		t.Fatalf("file order not preserved: %+v", locations)
	}

	loc, ok := table.Match("Local Pickup - Redmond (Saturday 11am)")
	if !ok || loc.Branch != "Redmond" {
		t.Fatalf("substring match failed: %+v ok=%v", loc, ok)
	}
	if _, ok := table.Match("Standard Shipping"); ok {
		t.Fatalf("unexpected match for standard shipping")
	}
}

func TestParsePickupTable_MissingColumn(t *testing.T) {
	t.Parallel()

	input := "pickup_shipping_method,branch,city\nLocal Pickup,Edmonds,Edmonds\n"
	if _, err := ParsePickupTable(strings.NewReader(input)); err == nil {
		t.Fatalf("expected error for missing street_address column")
	}
}
