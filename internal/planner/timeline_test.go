package planner

import (
	"testing"

	"github.com/mkral/budget-planner/internal/models"
)

func TestBuildTimelineGroupsAndOrders(t *testing.T) {
	transfers := []models.Transfer{
		{ID: 1, Name: "Savings", DayOfMonth: 5, Amount: dec("100"), DisplayOrder: 1, Active: true},
		{ID: 2, Name: "Mortgage", DayOfMonth: 5, Amount: dec("50"), DisplayOrder: 2, Active: true},
		{ID: 3, Name: "Buffer", DayOfMonth: 1, Amount: dec("30"), DisplayOrder: 1, Active: true},
	}

	tl := BuildTimeline(transfers)

	if len(tl.Days) != 2 {
		t.Fatalf("len(Days) = %d, want 2", len(tl.Days))
	}
	if tl.Days[0].Day != 1 || !tl.Days[0].Total.Equal(dec("30")) {
		t.Errorf("day[0] = {%d, %s}, want {1, 30}", tl.Days[0].Day, tl.Days[0].Total)
	}
	if tl.Days[1].Day != 5 || !tl.Days[1].Total.Equal(dec("150")) {
		t.Errorf("day[1] = {%d, %s}, want {5, 150}", tl.Days[1].Day, tl.Days[1].Total)
	}
	if !tl.TotalAmount.Equal(dec("180")) {
		t.Errorf("TotalAmount = %s, want 180", tl.TotalAmount)
	}
}

func TestBuildTimelineInDayDisplayOrder(t *testing.T) {
	transfers := []models.Transfer{
		{ID: 1, Name: "second", DayOfMonth: 10, Amount: dec("1"), DisplayOrder: 5, Active: true},
		{ID: 2, Name: "first", DayOfMonth: 10, Amount: dec("999"), DisplayOrder: 1, Active: true},
	}
	tl := BuildTimeline(transfers)
	if len(tl.Days) != 1 || len(tl.Days[0].Transfers) != 2 {
		t.Fatalf("unexpected shape: %+v", tl)
	}
	// Display order wins over amount.
	if tl.Days[0].Transfers[0].Name != "first" {
		t.Errorf("first transfer = %q, want %q", tl.Days[0].Transfers[0].Name, "first")
	}
}

func TestBuildTimelineSkipsInactive(t *testing.T) {
	transfers := []models.Transfer{
		{ID: 1, DayOfMonth: 3, Amount: dec("40"), Active: true},
		{ID: 2, DayOfMonth: 3, Amount: dec("60"), Active: false},
	}
	tl := BuildTimeline(transfers)
	if !tl.TotalAmount.Equal(dec("40")) {
		t.Errorf("TotalAmount = %s, want 40", tl.TotalAmount)
	}
	if len(tl.Days[0].Transfers) != 1 {
		t.Errorf("len(transfers on day 3) = %d, want 1", len(tl.Days[0].Transfers))
	}
}

func TestBuildTimelineEmpty(t *testing.T) {
	tl := BuildTimeline(nil)
	if len(tl.Days) != 0 {
		t.Errorf("len(Days) = %d, want 0", len(tl.Days))
	}
	if !tl.TotalAmount.IsZero() {
		t.Errorf("TotalAmount = %s, want 0", tl.TotalAmount)
	}
}
