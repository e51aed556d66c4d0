package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedulify/engine/internal/catalog"
	"github.com/schedulify/engine/internal/schedule"
)

// Two lecture sessions of one group plus one practical sub-batch block give
// every rule something to trip over.
func testCatalog(t *testing.T) (*catalog.Catalog, []catalog.Session) {
	t.Helper()
	rec := catalog.Records{
		Courses: []catalog.CourseRecord{
			{Code: "CS101", Department: "cse", Degree: "BTech", Semester: "1", Group: "A", Students: 30, WeeklyHours: 2, Practical: true},
		},
		Groups: []catalog.GroupRecord{
			{Name: "A", Semester: "1", Degree: "BTech", Strength: 30},
		},
		Rooms: []catalog.RoomRecord{
			{Code: "R1", Capacity: 60},
			{Code: "R2", Capacity: 10},
			{Code: "L1", Capacity: 30, Kind: "lab", Department: "ece"},
		},
	}
	cat, diags, err := catalog.Build(rec, catalog.DefaultGrid(), catalog.DefaultBatchSize)
	require.NoError(t, err)
	require.Empty(t, diags)

	sessions, diags := catalog.ExpandSessions(cat, false)
	require.Empty(t, diags)
	require.Len(t, sessions, 3) // 2 lectures + 1 practical batch
	return cat, sessions
}

func cleanAssignments() []schedule.Assignment {
	// Lecture Monday 9:00 R1, lecture Tuesday 9:00 R1, practical Wednesday
	// 9:00-11:00 L1. No rule fires except the lab department mismatch.
	return []schedule.Assignment{
		{Slot: 0, Room: 0, Teacher: -1},
		{Slot: 9, Room: 0, Teacher: -1},
		{Slot: 18, Room: 2, Teacher: -1},
	}
}

func TestScore(t *testing.T) {
	t.Run("clean timetable has no hard violations", func(t *testing.T) {
		// Arrange
		cat, sessions := testCatalog(t)
		eval := NewEvaluator(cat, sessions, false)

		// Act
		hard, soft := eval.Score(cleanAssignments())

		// Assert
		assert.Equal(t, 0, hard)
		assert.Equal(t, 1, soft) // lab belongs to another department
	})

	t.Run("day boundary overflow", func(t *testing.T) {
		// Arrange
		cat, sessions := testCatalog(t)
		eval := NewEvaluator(cat, sessions, false)
		a := cleanAssignments()
		a[2].Slot = 18 + 8 // practical starting at the last slot of the day

		// Act
		hard, _ := eval.Score(a)

		// Assert
		assert.Equal(t, WeightBoundary, hard)
	})

	t.Run("lunch slot occupancy", func(t *testing.T) {
		// Arrange
		cat, sessions := testCatalog(t)
		eval := NewEvaluator(cat, sessions, false)
		a := cleanAssignments()
		a[0].Slot = 4 // Monday 13:00

		// Act
		hard, _ := eval.Score(a)

		// Assert
		assert.Equal(t, WeightLunch, hard)
	})

	t.Run("multi-slot block crossing lunch is charged per occupied slot", func(t *testing.T) {
		// Arrange
		cat, sessions := testCatalog(t)
		eval := NewEvaluator(cat, sessions, false)
		a := cleanAssignments()
		a[2].Slot = 18 + 3 // practical 12:00-14:00, covers the lunch slot once

		// Act
		hard, _ := eval.Score(a)

		// Assert
		assert.Equal(t, WeightLunch, hard)
	})

	t.Run("user time preference suppresses the lunch rule", func(t *testing.T) {
		// Arrange
		cat, sessions := testCatalog(t)
		cat.Constraints = []catalog.UserConstraint{
			{Course: "CS101", PreferredTime: "13:00"},
		}
		eval := NewEvaluator(cat, sessions, false)
		a := cleanAssignments()
		a[0].Slot = 4 // Monday 13:00, matching the preference

		// Act
		hard, soft := eval.Score(a)

		// Assert
		assert.Equal(t, 0, hard)
		// The two sessions away from 13:00 each miss the time preference,
		// plus the lab mismatch.
		assert.Equal(t, 3, soft)
	})

	t.Run("room double booking counts every conflicting pair", func(t *testing.T) {
		// Arrange
		cat, sessions := testCatalog(t)
		eval := NewEvaluator(cat, sessions, false)

		// Three sessions stacked into R1 at Monday 9:00. Group conflicts fire
		// too, so isolate the room contribution by comparison.
		stacked := []schedule.Assignment{
			{Slot: 0, Room: 0, Teacher: -1},
			{Slot: 0, Room: 0, Teacher: -1},
			{Slot: 0, Room: 0, Teacher: -1},
		}
		spread := []schedule.Assignment{
			{Slot: 0, Room: 0, Teacher: -1},
			{Slot: 0, Room: 1, Teacher: -1},
			{Slot: 0, Room: 2, Teacher: -1},
		}

		// Act
		stackedHard, _ := eval.Score(stacked)
		spreadHard, _ := eval.Score(spread)

		// Assert: C(3,2) room pairs on the shared slot, plus one more pair on
		// the practical's second slot is absent since all are duration-matched
		// differently; verify via the delta instead of absolute numbers.
		assert.Greater(t, stackedHard, spreadHard)
	})

	t.Run("distinct sub-batches may run concurrently", func(t *testing.T) {
		// Arrange: two practical sub-batches, no whole-group lectures.
		rec := catalog.Records{
			Courses: []catalog.CourseRecord{
				{Code: "CS101", Department: "cse", Degree: "BTech", Semester: "1", Group: "A", Students: 60, WeeklyHours: 1, Practical: true},
			},
			Groups: []catalog.GroupRecord{{Name: "A", Semester: "1", Degree: "BTech", Strength: 60}},
			Rooms: []catalog.RoomRecord{
				{Code: "L1", Capacity: 30, Kind: "lab", Department: "cse"},
				{Code: "L2", Capacity: 30, Kind: "lab", Department: "cse"},
				{Code: "R1", Capacity: 60},
			},
		}
		cat, _, err := catalog.Build(rec, catalog.DefaultGrid(), catalog.DefaultBatchSize)
		require.NoError(t, err)
		sessions, _ := catalog.ExpandSessions(cat, false)
		require.Len(t, sessions, 3) // 1 lecture + 2 sub-batches
		eval := NewEvaluator(cat, sessions, false)

		// Act: both sub-batches Monday 9:00 in different labs, lecture Tuesday.
		hard, _ := eval.Score([]schedule.Assignment{
			{Slot: 9, Room: 2, Teacher: -1},
			{Slot: 0, Room: 0, Teacher: -1},
			{Slot: 0, Room: 1, Teacher: -1},
		})

		// Assert
		assert.Equal(t, 0, hard)
	})

	t.Run("whole-group session conflicts with a concurrent sub-batch", func(t *testing.T) {
		// Arrange
		cat, sessions := testCatalog(t)
		eval := NewEvaluator(cat, sessions, false)
		a := cleanAssignments()
		a[2].Slot = 0 // practical overlaps the Monday 9:00 lecture

		// Act
		hard, _ := eval.Score(a)

		// Assert: one group conflict on the shared slot.
		assert.Equal(t, WeightBase, hard)
	})

	t.Run("capacity shortfall is charged once per session", func(t *testing.T) {
		// Arrange
		cat, sessions := testCatalog(t)
		eval := NewEvaluator(cat, sessions, false)
		a := cleanAssignments()
		a[2].Room = 1 // 10-seat classroom for a 30-seat practical

		// Act
		hard, _ := eval.Score(a)

		// Assert
		assert.Equal(t, WeightBase, hard)
	})

	t.Run("forced room lock violation", func(t *testing.T) {
		// Arrange
		rec := catalog.Records{
			Courses: []catalog.CourseRecord{
				{Code: "CS101", Department: "ece", Degree: "BTech", Semester: "1", Group: "A", Students: 30, WeeklyHours: 1, Practical: true, ForcedPracticalRoom: "L1"},
			},
			Groups: []catalog.GroupRecord{{Name: "A", Semester: "1", Degree: "BTech", Strength: 30}},
			Rooms: []catalog.RoomRecord{
				{Code: "R1", Capacity: 60},
				{Code: "L1", Capacity: 30, Kind: "lab", Department: "ece"},
			},
		}
		cat, _, err := catalog.Build(rec, catalog.DefaultGrid(), catalog.DefaultBatchSize)
		require.NoError(t, err)
		sessions, _ := catalog.ExpandSessions(cat, false)
		eval := NewEvaluator(cat, sessions, false)

		locked := []schedule.Assignment{{Slot: 9, Room: 0, Teacher: -1}, {Slot: 0, Room: 1, Teacher: -1}}
		broken := []schedule.Assignment{{Slot: 9, Room: 0, Teacher: -1}, {Slot: 0, Room: 0, Teacher: -1}}

		// Act
		lockedHard, _ := eval.Score(locked)
		brokenHard, _ := eval.Score(broken)

		// Assert
		assert.Equal(t, 0, lockedHard)
		// Off the lock the practical also sits in a classroom, so the lock
		// violation plus a capacity-free kind mismatch is not counted; only
		// the lock itself is hard here.
		assert.Equal(t, WeightBase, brokenHard)
	})

	t.Run("teacher double booking counts only in teacher mode", func(t *testing.T) {
		// Arrange
		cat, sessions := testCatalog(t)
		a := cleanAssignments()
		a[0].Teacher = 0
		a[1].Slot = 0 // same slot as a[0]
		a[1].Room = 1
		a[1].Teacher = 0

		// Act
		virtualHard, _ := NewEvaluator(cat, sessions, false).Score(a)
		teacherHard, _ := NewEvaluator(cat, sessions, true).Score(a)

		// Assert: the group conflict fires either way, the teacher pair only
		// in teacher mode.
		assert.Equal(t, virtualHard+WeightBase, teacherHard)
	})

	t.Run("user room preference is soft", func(t *testing.T) {
		// Arrange
		cat, sessions := testCatalog(t)
		cat.Constraints = []catalog.UserConstraint{
			{Course: "CS101", PreferredRoom: "R2"},
		}
		eval := NewEvaluator(cat, sessions, false)

		// Act
		hard, soft := eval.Score(cleanAssignments())

		// Assert: every CS101 session misses R2, plus the lab mismatch.
		assert.Equal(t, 0, hard)
		assert.Equal(t, 4, soft)
	})

	t.Run("scoring is pure", func(t *testing.T) {
		// Arrange
		cat, sessions := testCatalog(t)
		eval := NewEvaluator(cat, sessions, false)
		a := cleanAssignments()
		a[1].Slot = 0
		a[2].Slot = 4

		// Act
		h1, s1 := eval.Score(a)
		h2, s2 := eval.Score(a)

		// Assert
		assert.Equal(t, h1, h2)
		assert.Equal(t, s1, s2)
	})
}

func TestCombined(t *testing.T) {
	t.Run("hard violations dominate any soft total", func(t *testing.T) {
		assert.Less(t, Combined(0, 999), Combined(1, 0))
	})
}
