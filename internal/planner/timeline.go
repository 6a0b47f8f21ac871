package planner

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mkral/budget-planner/internal/models"
)

// BuildTimeline groups the active scheduled transfers into day-of-month
// buckets, ascending. Days without transfers are omitted. Within a day,
// transfers keep display order. TotalAmount counts every active transfer
// exactly once.
func BuildTimeline(transfers []models.Transfer) models.Timeline {
	byDay := make(map[int][]models.Transfer)
	total := decimal.Zero
	for _, t := range transfers {
		if !t.Active {
			continue
		}
		day := t.DayOfMonth
		if day < 1 {
			day = 1
		}
		byDay[day] = append(byDay[day], t)
		total = total.Add(t.Amount)
	}

	days := make([]int, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Ints(days)

	timeline := models.Timeline{TotalAmount: total}
	for _, d := range days {
		group := byDay[d]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].DisplayOrder < group[j].DisplayOrder
		})
		dayTotal := decimal.Zero
		for _, t := range group {
			dayTotal = dayTotal.Add(t.Amount)
		}
		timeline.Days = append(timeline.Days, models.TimelineDay{
			Day:       d,
			Transfers: group,
			Total:     dayTotal,
		})
	}
	return timeline
}
