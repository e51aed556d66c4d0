package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/schedulify/engine/internal/catalog"
)

var (
	courseSchema = Schema{
		{Name: "course_code", Aliases: []string{"course code", "courseid", "course id", "code"}, Required: true},
		{Name: "course_name", Aliases: []string{"course name", "name", "title"}},
		{Name: "department", Aliases: []string{"dept"}},
		{Name: "degree"},
		{Name: "semester", Aliases: []string{"sem"}},
		{Name: "group", Aliases: []string{"group name", "group_name"}},
		{Name: "students", Aliases: []string{"enrolled_students", "enrollment", "strength"}},
		{Name: "weekly_hours", Aliases: []string{"no_of_hours", "hours", "lecture_hours", "hrs"}, Required: true},
		{Name: "practical", Aliases: []string{"is_there_a_practical", "is_practical", "has_practical"}},
		{Name: "practical_room", Aliases: []string{"forced_practical_room", "lab_room", "lab"}},
	}
	groupSchema = Schema{
		{Name: "group_name", Aliases: []string{"group name", "group", "name"}, Required: true},
		{Name: "semester", Aliases: []string{"sem"}},
		{Name: "degree"},
		{Name: "strength", Aliases: []string{"students", "size"}, Required: true},
	}
	roomSchema = Schema{
		{Name: "room_code", Aliases: []string{"room no.", "room no", "room code", "room", "code"}, Required: true},
		{Name: "capacity", Aliases: []string{"cap", "seats"}, Required: true},
		{Name: "kind", Aliases: []string{"type", "room_type"}},
		{Name: "department", Aliases: []string{"dept"}},
	}
	teacherSchema = Schema{
		{Name: "teacher_name", Aliases: []string{"teacher name", "teacher", "name"}, Required: true},
		{Name: "courses", Aliases: []string{"course_codes"}},
		{Name: "course_code", Aliases: []string{"course code", "course"}},
	}
)

type table struct {
	cols map[string]int
	rows [][]string
}

func readTable(path, record string, schema Schema) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %v: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %v: %w", path, err)
	}
	if len(all) == 0 {
		return nil, &catalog.ValidationError{Record: record, Field: "header", Reason: "empty file"}
	}

	cols, err := schema.Resolve(record, all[0])
	if err != nil {
		return nil, err
	}
	return &table{cols: cols, rows: all[1:]}, nil
}

func (t *table) cell(row []string, field string) string {
	i := t.cols[field]
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// intCell coerces numeric cells the way spreadsheets emit them; unparsable
// values degrade to zero and surface later as catalog diagnostics.
func (t *table) intCell(row []string, field string) int {
	raw := t.cell(row, field)
	if raw == "" {
		return 0
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return 0
}

func (t *table) boolCell(row []string, field string) bool {
	switch catalog.Normalize(t.cell(row, field)) {
	case "yes", "y", "true", "1":
		return true
	}
	return false
}

func LoadCourses(path string) ([]catalog.CourseRecord, error) {
	t, err := readTable(path, "courses", courseSchema)
	if err != nil {
		return nil, err
	}
	courses := make([]catalog.CourseRecord, 0, len(t.rows))
	for _, row := range t.rows {
		if t.cell(row, "course_code") == "" {
			continue
		}
		courses = append(courses, catalog.CourseRecord{
			Code:                t.cell(row, "course_code"),
			Name:                t.cell(row, "course_name"),
			Department:          t.cell(row, "department"),
			Degree:              t.cell(row, "degree"),
			Semester:            t.cell(row, "semester"),
			Group:               t.cell(row, "group"),
			Students:            t.intCell(row, "students"),
			WeeklyHours:         t.intCell(row, "weekly_hours"),
			Practical:           t.boolCell(row, "practical"),
			ForcedPracticalRoom: t.cell(row, "practical_room"),
		})
	}
	return courses, nil
}

func LoadGroups(path string) ([]catalog.GroupRecord, error) {
	t, err := readTable(path, "groups", groupSchema)
	if err != nil {
		return nil, err
	}
	groups := make([]catalog.GroupRecord, 0, len(t.rows))
	for _, row := range t.rows {
		if t.cell(row, "group_name") == "" {
			continue
		}
		groups = append(groups, catalog.GroupRecord{
			Name:     strings.ToUpper(t.cell(row, "group_name")),
			Semester: t.cell(row, "semester"),
			Degree:   t.cell(row, "degree"),
			Strength: t.intCell(row, "strength"),
		})
	}
	return groups, nil
}

func LoadRooms(path string) ([]catalog.RoomRecord, error) {
	t, err := readTable(path, "rooms", roomSchema)
	if err != nil {
		return nil, err
	}
	rooms := make([]catalog.RoomRecord, 0, len(t.rows))
	for _, row := range t.rows {
		if t.cell(row, "room_code") == "" {
			continue
		}
		rooms = append(rooms, catalog.RoomRecord{
			Code:       t.cell(row, "room_code"),
			Capacity:   t.intCell(row, "capacity"),
			Kind:       t.cell(row, "kind"),
			Department: t.cell(row, "department"),
		})
	}
	return rooms, nil
}

// LoadTeachers accepts either a comma-separated courses column or one
// course mapping per row; rows sharing a teacher name merge into one record. A
// file carrying only names yields teachers qualified for every course.
func LoadTeachers(path string) ([]catalog.TeacherRecord, error) {
	t, err := readTable(path, "teachers", teacherSchema)
	if err != nil {
		return nil, err
	}

	order := []string{}
	byName := map[string]*catalog.TeacherRecord{}
	for _, row := range t.rows {
		name := t.cell(row, "teacher_name")
		if name == "" {
			continue
		}
		rec, ok := byName[name]
		if !ok {
			rec = &catalog.TeacherRecord{Name: name}
			byName[name] = rec
			order = append(order, name)
		}

		var codes []string
		if multi := t.cell(row, "courses"); multi != "" {
			codes = strings.Split(multi, ",")
		} else if single := t.cell(row, "course_code"); single != "" {
			codes = []string{single}
		}
		for _, code := range codes {
			if code = strings.TrimSpace(code); code != "" {
				rec.Courses = append(rec.Courses, code)
			}
		}
	}

	return lo.Map(order, func(name string, _ int) catalog.TeacherRecord {
		return *byName[name]
	}), nil
}
