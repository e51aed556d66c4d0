// Package constraint scores assignments against the fixed hard and soft rule
// set shared by both solving strategies.
package constraint

import (
	"strings"

	"github.com/samber/lo"

	"github.com/schedulify/engine/internal/catalog"
	"github.com/schedulify/engine/internal/schedule"
)

// Penalty weights. Hard violations are counted separately from soft ones and,
// where a single scalar is needed, dominate them through HardMultiplier so no
// combination of soft gains ever masks a hard violation.
const (
	WeightBoundary = 5  // day-boundary overflow, scaled to give the search gradient
	WeightLunch    = 10 // per occupied lunch slot
	WeightBase     = 1

	HardMultiplier = 1000
)

// Combined collapses a (hard, soft) score into the single-objective scalar.
func Combined(hard, soft int) int {
	return hard*HardMultiplier + soft
}

// Evaluator is a pure function of the static catalog and session list: Score
// keeps no state between calls and may be invoked repeatedly, in any order and
// from any number of goroutines.
type Evaluator struct {
	cat         *catalog.Catalog
	sessions    []catalog.Session
	teacherMode bool

	needed       []int
	timeOverride []bool
	roomPref     []string
	timePref     []string
}

func NewEvaluator(cat *catalog.Catalog, sessions []catalog.Session, teacherMode bool) *Evaluator {
	e := &Evaluator{
		cat:          cat,
		sessions:     sessions,
		teacherMode:  teacherMode,
		needed:       make([]int, len(sessions)),
		timeOverride: TimeOverrides(cat, sessions),
		roomPref:     make([]string, len(sessions)),
		timePref:     make([]string, len(sessions)),
	}
	for i, s := range sessions {
		e.needed[i] = cat.Needed(s)
		if uc, ok := cat.ConstraintFor(s.Course, cat.Groups[s.GroupID]); ok {
			e.roomPref[i] = catalog.Normalize(uc.PreferredRoom)
			e.timePref[i] = strings.ToLower(strings.TrimSpace(uc.PreferredTime))
		}
	}
	return e
}

// TimeOverrides reports, per session, whether a user constraint carries an
// explicit time preference. Such sessions are exempt from the lunch rule.
func TimeOverrides(cat *catalog.Catalog, sessions []catalog.Session) []bool {
	overrides := make([]bool, len(sessions))
	for i, s := range sessions {
		if uc, ok := cat.ConstraintFor(s.Course, cat.Groups[s.GroupID]); ok {
			overrides[i] = uc.PreferredTime != ""
		}
	}
	return overrides
}

type groupLoad struct {
	all     int
	batches map[string]int
}

// Score computes the hard and soft violation counts of an assignment set.
// Occupancy conflicts (group, room and teacher) are counted for every
// conflicting pair, not just adjacent ones.
func (e *Evaluator) Score(assignments []schedule.Assignment) (hard, soft int) {
	grid := e.cat.Grid
	total := grid.TotalSlots()

	type groupKey struct {
		group string
		abs   int
	}
	roomLoad := map[[2]int]int{}            // (abs slot, room) -> occupants
	teacherLoad := map[[2]int]int{}         // (abs slot, teacher) -> occupants
	groupLoads := map[groupKey]*groupLoad{} // (group, abs slot) -> buckets

	for i, a := range assignments {
		if i >= len(e.sessions) || a.Slot < 0 || a.Slot >= total {
			continue
		}
		s := e.sessions[i]
		day, start := grid.Split(a.Slot)

		// The block must fit within one day.
		if start+s.Duration > grid.SlotsPerDay {
			hard += WeightBoundary
		}

		for d := 0; d < s.Duration; d++ {
			slot := start + d
			if slot >= grid.SlotsPerDay {
				break
			}
			abs := day*grid.SlotsPerDay + slot

			// Lunch, unless a user time override applies.
			if slot == grid.LunchSlot && !e.timeOverride[i] {
				hard += WeightLunch
			}

			roomLoad[[2]int{abs, a.Room}]++

			key := groupKey{group: s.GroupID, abs: abs}
			load, ok := groupLoads[key]
			if !ok {
				load = &groupLoad{batches: map[string]int{}}
				groupLoads[key] = load
			}
			if s.SubBatch == catalog.AllBatch {
				load.all++
			} else {
				load.batches[s.SubBatch]++
			}

			if e.teacherMode && a.Teacher >= 0 {
				teacherLoad[[2]int{abs, a.Teacher}]++
			}
		}

		// Capacity, charged once per session.
		if a.Room >= 0 && a.Room < len(e.cat.Rooms) {
			room := e.cat.Rooms[a.Room]
			if room.Capacity < e.needed[i] {
				hard += WeightBase
			}

			// Department-room mismatch is soft.
			if room.Department != catalog.GeneralDepartment && room.Department != s.Department {
				soft += WeightBase
			}

			soft += e.preferenceCost(i, a, room, day, start, s.Duration)
		}

		// Forced-room lock.
		if s.ForcedRoom >= 0 && a.Room != s.ForcedRoom {
			hard += WeightBase
		}
	}

	// Room double-booking, every pair.
	for _, n := range roomLoad {
		hard += WeightBase * pairs(n)
	}

	// Teacher double-booking is hard only when teacher identity is part of
	// the encoding.
	for _, n := range teacherLoad {
		hard += WeightBase * pairs(n)
	}

	// Group and sub-batch double-booking. All-scope sessions exclude
	// each other and every sub-batch; distinct sub-batches may run
	// concurrently.
	for _, load := range groupLoads {
		hard += WeightBase * pairs(load.all)
		for _, n := range load.batches {
			hard += WeightBase * (pairs(n) + load.all*n)
		}
	}

	return hard, soft
}

// preferenceCost covers the soft rules tied to one assignment: user
// constraints and, in teacher mode, teacher preferences.
func (e *Evaluator) preferenceCost(i int, a schedule.Assignment, room catalog.Room, day, start, duration int) int {
	cost := 0

	if pref := e.roomPref[i]; pref != "" && room.Key != pref {
		cost += WeightBase
	}
	if pref := e.timePref[i]; pref != "" {
		dayName := strings.ToLower(e.cat.Grid.DayName(day))
		timeRange := e.cat.Grid.TimeRange(start, duration)
		if !strings.Contains(dayName, pref) && !strings.Contains(timeRange, pref) {
			cost += WeightBase
		}
	}

	if e.teacherMode && a.Teacher >= 0 && a.Teacher < len(e.cat.Teachers) {
		t := e.cat.Teachers[a.Teacher]
		if len(t.PreferredRooms) > 0 && !lo.Contains(t.PreferredRooms, room.Key) {
			cost += WeightBase
		}
		if len(t.PreferredSlots) > 0 && !lo.Contains(t.PreferredSlots, a.Slot) {
			cost += WeightBase
		}
	}

	return cost
}

func pairs(n int) int {
	return n * (n - 1) / 2
}
