package catalog

import "fmt"

// Grid is the fixed per-week time geometry. Timeslots are generated once from
// {working days} x {slots per day} and never mutated afterwards.
type Grid struct {
	Days        []string
	SlotsPerDay int
	StartMinute int // minutes from midnight of the first slot
	SlotMinutes int
	LunchSlot   int // slot index within a day excluded from scheduling, -1 disables
}

func DefaultGrid() Grid {
	return Grid{
		Days:        []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		SlotsPerDay: 9,
		StartMinute: 9 * 60,
		SlotMinutes: 60,
		LunchSlot:   4, // 13:00
	}
}

func (g Grid) Validate() error {
	if len(g.Days) == 0 {
		return &ValidationError{Record: "grid", Field: "days", Reason: "no working days"}
	}
	if g.SlotsPerDay <= 0 {
		return &ValidationError{Record: "grid", Field: "slots_per_day", Reason: "must be positive"}
	}
	if g.SlotMinutes <= 0 {
		return &ValidationError{Record: "grid", Field: "slot_minutes", Reason: "must be positive"}
	}
	if g.LunchSlot >= g.SlotsPerDay {
		return &ValidationError{Record: "grid", Field: "lunch_slot", Reason: "outside the day"}
	}
	return nil
}

func (g Grid) TotalSlots() int {
	return len(g.Days) * g.SlotsPerDay
}

// Split decomposes an absolute week slot into (day, slot-within-day).
func (g Grid) Split(abs int) (day int, slot int) {
	return abs / g.SlotsPerDay, abs % g.SlotsPerDay
}

func (g Grid) DayName(day int) string {
	if day < 0 || day >= len(g.Days) {
		return ""
	}
	return g.Days[day]
}

// TimeRange renders "HH:MM - HH:MM" for a block of duration slots starting at
// the given slot-within-day.
func (g Grid) TimeRange(slot int, duration int) string {
	start := g.StartMinute + slot*g.SlotMinutes
	end := start + duration*g.SlotMinutes
	return fmt.Sprintf("%02d:%02d - %02d:%02d", start/60, start%60, end/60, end%60)
}
