package catalog

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type RoomKind string

const (
	RoomClassroom RoomKind = "classroom"
	RoomLab       RoomKind = "lab"
)

// GeneralDepartment is the wildcard room affinity matching any department.
const GeneralDepartment = "general"

type Course struct {
	Code        string
	Name        string
	Department  string
	Degree      string
	Semester    string
	GroupID     string
	GroupLabel  string
	Students    int
	WeeklyHours int
	Practical   bool
	ForcedRoom  int // index into Catalog.Rooms, -1 when unlocked
}

type Group struct {
	ID            string // normalized degree_semester_name
	Label         string // raw display name, e.g. "A"
	Degree        string
	Semester      string
	Department    string
	Strength      int
	NumBatches    int
	BatchStrength int
}

type Room struct {
	ID         string // original code, for display
	Key        string // normalized lookup key
	Capacity   int
	Department string
	Kind       RoomKind
}

type Teacher struct {
	Name           string
	Courses        []string // normalized course codes; empty means qualified for all
	PreferredRooms []string // normalized room keys (soft)
	PreferredSlots []int    // absolute week slots (soft)
}

// UserConstraint is an optional course-scoped preference. A violated
// preference is a soft cost, never hard; a non-empty PreferredTime also
// suppresses the lunch rule for the matching sessions.
type UserConstraint struct {
	Course        string
	Group         string // optional scope, matched against the group label or id
	PreferredRoom string
	PreferredTime string // free-text day or HH:MM substring
}

func (uc UserConstraint) AppliesTo(course string, g *Group) bool {
	if Normalize(uc.Course) != Normalize(course) {
		return false
	}
	if uc.Group == "" {
		return true
	}
	scope := Normalize(uc.Group)
	return scope == Normalize(g.Label) || scope == g.ID
}

// Catalog holds every entity of one scheduling run. It is built once from
// static input and immutable thereafter.
type Catalog struct {
	Grid        Grid
	BatchSize   int
	Courses     []Course
	Groups      map[string]*Group
	Rooms       []Room
	Teachers    []Teacher
	Constraints []UserConstraint

	roomByKey map[string]int
}

func (c *Catalog) RoomIndex(key string) (int, bool) {
	i, ok := c.roomByKey[Normalize(key)]
	return i, ok
}

// QualifiedTeachers returns the indexes of teachers qualified for a course. A
// teacher with no course mapping degrades to "qualified for all courses".
func (c *Catalog) QualifiedTeachers(course string) []int {
	code := Normalize(course)
	qualified := make([]int, 0, len(c.Teachers))
	for i, t := range c.Teachers {
		if len(t.Courses) == 0 || lo.Contains(t.Courses, code) {
			qualified = append(qualified, i)
		}
	}
	return qualified
}

// ConstraintFor finds the first user constraint scoped to the given course and
// group, if any.
func (c *Catalog) ConstraintFor(course string, g *Group) (UserConstraint, bool) {
	return lo.Find(c.Constraints, func(uc UserConstraint) bool {
		return uc.AppliesTo(course, g)
	})
}

// Normalize standardizes identity keys: trimmed and lowercased.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// GroupID derives the process-wide group identity from degree, semester and
// group name.
func GroupID(degree, semester, name string) string {
	return fmt.Sprintf("%v_%v_%v", Normalize(degree), Normalize(semester), Normalize(name))
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
