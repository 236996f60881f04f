package photos

import (
	"time"

	"lg/body-progress-go-api/internal/dateutil"
)

// WeekGroup is the photos whose date falls in the week starting WeekStart
// (a Sunday).
type WeekGroup struct {
	WeekStart dateutil.DateOnly `json:"weekStart"`
	Photos    []ProgressPhoto   `json:"photos"`
}

// GroupByWeek buckets photos by the Sunday that opens their week in loc.
// Groups come out in order of first appearance and photos keep their order
// within a group.
func GroupByWeek(photos []ProgressPhoto, loc *time.Location) []WeekGroup {
	groups := []WeekGroup{}
	index := map[string]int{}
	for _, p := range photos {
		start := dateutil.WeekStart(p.Date, loc)
		key := start.String()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, WeekGroup{WeekStart: start})
		}
		groups[i].Photos = append(groups[i].Photos, p)
	}
	return groups
}
