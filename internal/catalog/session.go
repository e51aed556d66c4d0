package catalog

import "fmt"

type SessionType string

const (
	Lecture   SessionType = "lecture"
	Practical SessionType = "practical"
)

// AllBatch marks a session attended by the whole group rather than a lab
// sub-batch.
const AllBatch = "All"

// PracticalMinutes is the contiguous lab block every practical course gets per
// sub-batch and week.
const PracticalMinutes = 120

// Session is the atomic schedulable unit: one lecture hour or one practical
// sub-batch block.
type Session struct {
	Type       SessionType
	Course     string
	GroupID    string
	SubBatch   string // AllBatch or "<label><index>"
	Department string
	Duration   int   // required consecutive slots
	ForcedRoom int   // immutable room lock, -1 when unset
	Teachers   []int // qualified teacher indexes; nil outside teacher mode
}

func (s Session) Describe() string {
	return fmt.Sprintf("%v %v/%v (%v)", s.Type, s.Course, s.GroupID, s.SubBatch)
}

// ExpandSessions flattens every course into its atomic sessions: one per
// lecture hour and, for practical courses, one block per lab sub-batch. With
// teacherMode on, each session carries the qualified teacher set; courses
// without one are excluded with a diagnostic.
func ExpandSessions(cat *Catalog, teacherMode bool) ([]Session, []Diagnostic) {
	var sessions []Session
	var diags []Diagnostic

	practicalSlots := ceilDiv(PracticalMinutes, cat.Grid.SlotMinutes)

	for _, course := range cat.Courses {
		group := cat.Groups[course.GroupID]

		var qualified []int
		if teacherMode {
			qualified = cat.QualifiedTeachers(course.Code)
			if len(qualified) == 0 {
				diags = append(diags, failure(&NoQualifiedTeacherError{Course: course.Code}))
				continue
			}
		}

		for hour := 0; hour < course.WeeklyHours; hour++ {
			sessions = append(sessions, Session{
				Type:       Lecture,
				Course:     course.Code,
				GroupID:    course.GroupID,
				SubBatch:   AllBatch,
				Department: course.Department,
				Duration:   1,
				ForcedRoom: -1,
				Teachers:   qualified,
			})
		}

		if course.Practical {
			for batch := 1; batch <= group.NumBatches; batch++ {
				sessions = append(sessions, Session{
					Type:       Practical,
					Course:     course.Code,
					GroupID:    course.GroupID,
					SubBatch:   fmt.Sprintf("%v%d", group.Label, batch),
					Department: course.Department,
					Duration:   practicalSlots,
					ForcedRoom: course.ForcedRoom,
					Teachers:   qualified,
				})
			}
		}
	}

	return sessions, diags
}
