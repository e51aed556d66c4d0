package schedule

import "github.com/schedulify/engine/internal/catalog"

// VirtualTeacher is displayed when teacher allocation is deferred.
const VirtualTeacher = "Dept Faculty"

// Record is one human-readable scheduled session.
type Record struct {
	Day        string
	Time       string
	Course     string
	Group      string
	SubBatch   string
	Teacher    string
	Room       string
	Type       string
	Department string

	// Grid coordinates, kept for renderers that rebuild day x slot matrices.
	DayIndex  int
	StartSlot int
	Duration  int
}

// Decode maps assignments back into session records. It is a pure function:
// decoding the same assignment set twice yields identical records, in session
// order.
func Decode(cat *catalog.Catalog, sessions []catalog.Session, assignments []Assignment) []Record {
	records := make([]Record, 0, len(assignments))
	for i, a := range assignments {
		if i >= len(sessions) {
			break
		}
		s := sessions[i]
		day, slot := cat.Grid.Split(a.Slot)

		room := ""
		if a.Room >= 0 && a.Room < len(cat.Rooms) {
			room = cat.Rooms[a.Room].ID
		}
		teacher := VirtualTeacher
		if a.Teacher >= 0 && a.Teacher < len(cat.Teachers) {
			teacher = cat.Teachers[a.Teacher].Name
		}

		records = append(records, Record{
			Day:        cat.Grid.DayName(day),
			Time:       cat.Grid.TimeRange(slot, s.Duration),
			Course:     s.Course,
			Group:      s.GroupID,
			SubBatch:   s.SubBatch,
			Teacher:    teacher,
			Room:       room,
			Type:       string(s.Type),
			Department: s.Department,
			DayIndex:   day,
			StartSlot:  slot,
			Duration:   s.Duration,
		})
	}
	return records
}
