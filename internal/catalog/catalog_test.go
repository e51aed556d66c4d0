package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() Records {
	return Records{
		Courses: []CourseRecord{
			{Code: "CS101", Name: "Programming", Department: "cse", Degree: "BTech", Semester: "1", Group: "A", Students: 50, WeeklyHours: 3, Practical: true},
			{Code: "MA101", Name: "Calculus", Department: "maths", Degree: "BTech", Semester: "1", Group: "A", Students: 50, WeeklyHours: 2},
		},
		Groups: []GroupRecord{
			{Name: "A", Semester: "1", Degree: "BTech", Strength: 50},
		},
		Rooms: []RoomRecord{
			{Code: "R1", Capacity: 60},
			{Code: "L1", Capacity: 30, Kind: "lab", Department: "cse"},
		},
		Teachers: []TeacherRecord{
			{Name: "Rao", Courses: []string{"CS101"}},
			{Name: "Iyer", Courses: []string{"MA101"}},
		},
	}
}

func TestBuild(t *testing.T) {
	t.Run("assembles catalog from valid records", func(t *testing.T) {
		// Act
		cat, diags, err := Build(testRecords(), DefaultGrid(), DefaultBatchSize)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, diags)
		assert.Len(t, cat.Courses, 2)
		assert.Len(t, cat.Rooms, 2)
		assert.Len(t, cat.Teachers, 2)

		group, ok := cat.Groups["btech_1_a"]
		require.True(t, ok)
		assert.Equal(t, 50, group.Strength)
		assert.Equal(t, 2, group.NumBatches)
		assert.Equal(t, 25, group.BatchStrength)
	})

	t.Run("derives missing group from course enrollment", func(t *testing.T) {
		// Arrange
		rec := testRecords()
		rec.Groups = nil

		// Act
		cat, diags, err := Build(rec, DefaultGrid(), DefaultBatchSize)

		// Assert
		require.NoError(t, err)
		group, ok := cat.Groups["btech_1_a"]
		require.True(t, ok)
		assert.Equal(t, 50, group.Strength)

		warnings := 0
		for _, d := range diags {
			if d.Severity == SeverityWarning {
				warnings++
			}
		}
		assert.Positive(t, warnings)
	})

	t.Run("rejects non-positive group strength", func(t *testing.T) {
		// Arrange
		rec := testRecords()
		rec.Groups[0].Strength = 0
		rec.Courses = rec.Courses[:1]
		rec.Courses[0].Students = 0

		// Act
		_, diags, err := Build(rec, DefaultGrid(), DefaultBatchSize)

		// Assert
		require.Error(t, err)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.NotEmpty(t, diags)
	})

	t.Run("rejects duplicate room codes", func(t *testing.T) {
		// Arrange
		rec := testRecords()
		rec.Rooms = append(rec.Rooms, RoomRecord{Code: "r1", Capacity: 10})

		// Act
		cat, diags, err := Build(rec, DefaultGrid(), DefaultBatchSize)

		// Assert
		require.NoError(t, err)
		assert.Len(t, cat.Rooms, 2)
		found := false
		for _, d := range diags {
			var verr *ValidationError
			if d.Severity == SeverityError && errors.As(d.Err, &verr) && verr.Field == "room_code" {
				found = true
			}
		}
		assert.True(t, found, "expected a duplicate room_code diagnostic")
	})

	t.Run("defaults blank room department to general", func(t *testing.T) {
		// Act
		cat, _, err := Build(testRecords(), DefaultGrid(), DefaultBatchSize)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, GeneralDepartment, cat.Rooms[0].Department)
		assert.Equal(t, "cse", cat.Rooms[1].Department)
	})

	t.Run("drops unknown forced practical room with a warning", func(t *testing.T) {
		// Arrange
		rec := testRecords()
		rec.Courses[0].ForcedPracticalRoom = "NOPE"

		// Act
		cat, diags, err := Build(rec, DefaultGrid(), DefaultBatchSize)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, -1, cat.Courses[0].ForcedRoom)
		assert.NotEmpty(t, diags)
	})

	t.Run("resolves forced practical room case-insensitively", func(t *testing.T) {
		// Arrange
		rec := testRecords()
		rec.Courses[0].ForcedPracticalRoom = "l1"

		// Act
		cat, _, err := Build(rec, DefaultGrid(), DefaultBatchSize)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, cat.Courses[0].ForcedRoom)
	})
}

func TestGroupID(t *testing.T) {
	t.Run("normalizes identity components", func(t *testing.T) {
		assert.Equal(t, "btech_1_a", GroupID(" BTech", "1 ", "A"))
		assert.Equal(t, GroupID("BTECH", "1", "a"), GroupID("btech", "1", "A"))
	})
}

func TestQualifiedTeachers(t *testing.T) {
	t.Run("matches mapped courses only", func(t *testing.T) {
		// Arrange
		cat, _, err := Build(testRecords(), DefaultGrid(), DefaultBatchSize)
		require.NoError(t, err)

		// Act / Assert
		assert.Equal(t, []int{0}, cat.QualifiedTeachers("cs101"))
		assert.Equal(t, []int{1}, cat.QualifiedTeachers("MA101"))
	})

	t.Run("teacher without a mapping qualifies for every course", func(t *testing.T) {
		// Arrange
		rec := testRecords()
		rec.Teachers = append(rec.Teachers, TeacherRecord{Name: "Guest"})
		cat, _, err := Build(rec, DefaultGrid(), DefaultBatchSize)
		require.NoError(t, err)

		// Act / Assert
		assert.Contains(t, cat.QualifiedTeachers("CS101"), 2)
		assert.Contains(t, cat.QualifiedTeachers("MA101"), 2)
	})
}

func TestGrid(t *testing.T) {
	t.Run("splits absolute slots into day and offset", func(t *testing.T) {
		grid := DefaultGrid()
		day, slot := grid.Split(13)
		assert.Equal(t, 1, day)
		assert.Equal(t, 4, slot)
	})

	t.Run("renders time ranges from the slot geometry", func(t *testing.T) {
		grid := DefaultGrid()
		assert.Equal(t, "09:00 - 10:00", grid.TimeRange(0, 1))
		assert.Equal(t, "13:00 - 15:00", grid.TimeRange(4, 2))
	})

	t.Run("rejects a lunch slot outside the day", func(t *testing.T) {
		grid := DefaultGrid()
		grid.LunchSlot = grid.SlotsPerDay
		assert.Error(t, grid.Validate())
	})
}
