package calendar

import "time"

// DefaultVisibleCap is how many items a day cell shows before collapsing
// the rest into a "+N more" overflow badge.
const DefaultVisibleCap = 4

// gridWeeks fixes the grid at 6 rows so every month renders the same
// shape regardless of where its first day falls.
const gridWeeks = 6

// DayCell is one cell of the month grid. Visible is the truncated display
// list; Items always carries the full list for that date, so a day click
// can hand the caller everything regardless of truncation.
type DayCell struct {
	Date          time.Time `json:"date"`
	Key           string    `json:"key"`
	InMonth       bool      `json:"in_month"`
	Items         []Item    `json:"items"`
	Visible       []Item    `json:"visible"`
	OverflowCount int       `json:"overflow_count"`
}

// Grid is a month view: always Columns wide and a multiple of Columns
// cells long.
type Grid struct {
	Year    int        `json:"year"`
	Month   time.Month `json:"month"`
	Columns int        `json:"columns"`
	Cells   []DayCell  `json:"cells"`
}

// BuildGrid computes the 6x7 day grid for the given month. Cells run from
// the Sunday on or before the 1st; cells outside the active month are
// flagged InMonth=false but still carry their items. visibleCap <= 0
// falls back to DefaultVisibleCap.
func BuildGrid(year int, month time.Month, items []Item, loc *time.Location, now time.Time, visibleCap int) Grid {
	if loc == nil {
		loc = time.UTC
	}
	if visibleCap <= 0 {
		visibleCap = DefaultVisibleCap
	}

	buckets := Bucket(items, loc)

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	cells := make([]DayCell, 0, gridWeeks*7)
	for i := 0; i < gridWeeks*7; i++ {
		day := start.AddDate(0, 0, i)
		key := DateKey(day, loc)

		dayItems := buckets[key]
		for j := range dayItems {
			dayItems[j].Urgency = Classify(dayItems[j], now)
		}

		visible := dayItems
		overflow := 0
		if len(dayItems) > visibleCap {
			visible = dayItems[:visibleCap]
			overflow = len(dayItems) - visibleCap
		}

		cells = append(cells, DayCell{
			Date:          day,
			Key:           key,
			InMonth:       day.Month() == month && day.Year() == year,
			Items:         dayItems,
			Visible:       visible,
			OverflowCount: overflow,
		})
	}

	return Grid{Year: year, Month: month, Columns: 7, Cells: cells}
}
