package catalog

import "fmt"

// DefaultBatchSize caps a lab sub-batch; a group is split into
// ceil(strength / DefaultBatchSize) batches.
const DefaultBatchSize = 30

// Raw records as produced by the external loader (schema-level contract).

type CourseRecord struct {
	Code               string
	Name               string
	Department         string
	Degree             string
	Semester           string
	Group              string
	Students           int
	WeeklyHours        int
	Practical          bool
	ForcedPracticalRoom string
}

type GroupRecord struct {
	Name     string
	Semester string
	Degree   string
	Strength int
}

type RoomRecord struct {
	Code       string
	Capacity   int
	Kind       string // classroom/lab, blank defaults to classroom
	Department string // blank/common defaults to general
}

type TeacherRecord struct {
	Name    string
	Courses []string
}

type Records struct {
	Courses     []CourseRecord
	Groups      []GroupRecord
	Rooms       []RoomRecord
	Teachers    []TeacherRecord
	Constraints []UserConstraint

	// Optional per-teacher soft preferences, keyed by teacher name.
	PreferredRooms map[string][]string
	PreferredSlots map[string][]int
}

// Build assembles an immutable catalog from raw records. Malformed records are
// reported through the diagnostics list; the returned error is non-nil only
// when no usable catalog can be produced at all.
func Build(rec Records, grid Grid, batchSize int) (*Catalog, []Diagnostic, error) {
	if err := grid.Validate(); err != nil {
		return nil, nil, err
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	cat := &Catalog{
		Grid:      grid,
		BatchSize: batchSize,
		Groups:    map[string]*Group{},
		roomByKey: map[string]int{},
	}
	var diags []Diagnostic

	for _, g := range rec.Groups {
		if g.Name == "" {
			diags = append(diags, failure(&ValidationError{Record: "group", Field: "group_name", Reason: "missing"}))
			continue
		}
		if g.Strength <= 0 {
			diags = append(diags, failure(&ValidationError{Record: "group " + g.Name, Field: "strength", Reason: "must be positive"}))
			continue
		}
		id := GroupID(g.Degree, g.Semester, g.Name)
		numBatches := ceilDiv(g.Strength, batchSize)
		cat.Groups[id] = &Group{
			ID:            id,
			Label:         g.Name,
			Degree:        g.Degree,
			Semester:      g.Semester,
			Department:    Normalize(g.Degree),
			Strength:      g.Strength,
			NumBatches:    numBatches,
			BatchStrength: ceilDiv(g.Strength, numBatches),
		}
	}

	for _, r := range rec.Rooms {
		if r.Code == "" {
			diags = append(diags, failure(&ValidationError{Record: "room", Field: "room_code", Reason: "missing"}))
			continue
		}
		key := Normalize(r.Code)
		if _, dup := cat.roomByKey[key]; dup {
			diags = append(diags, failure(&ValidationError{Record: "room " + r.Code, Field: "room_code", Reason: "duplicate id"}))
			continue
		}
		kind := RoomClassroom
		if k := Normalize(r.Kind); k == "lab" || k == "practical" {
			kind = RoomLab
		}
		dept := Normalize(r.Department)
		if dept == "" || dept == "common" {
			dept = GeneralDepartment
		}
		capacity := r.Capacity
		if capacity < 0 {
			diags = append(diags, warning(&ValidationError{Record: "room " + r.Code, Field: "capacity", Reason: "negative, defaulting to 0"}))
			capacity = 0
		}
		cat.roomByKey[key] = len(cat.Rooms)
		cat.Rooms = append(cat.Rooms, Room{ID: r.Code, Key: key, Capacity: capacity, Department: dept, Kind: kind})
	}

	for _, t := range rec.Teachers {
		if t.Name == "" {
			diags = append(diags, failure(&ValidationError{Record: "teacher", Field: "teacher_name", Reason: "missing"}))
			continue
		}
		teacher := Teacher{Name: t.Name}
		for _, code := range t.Courses {
			if code != "" {
				teacher.Courses = append(teacher.Courses, Normalize(code))
			}
		}
		for _, room := range rec.PreferredRooms[t.Name] {
			teacher.PreferredRooms = append(teacher.PreferredRooms, Normalize(room))
		}
		teacher.PreferredSlots = append(teacher.PreferredSlots, rec.PreferredSlots[t.Name]...)
		cat.Teachers = append(cat.Teachers, teacher)
	}

	for _, c := range rec.Courses {
		if c.Code == "" {
			diags = append(diags, failure(&ValidationError{Record: "course", Field: "course_code", Reason: "missing"}))
			continue
		}
		if c.WeeklyHours <= 0 {
			diags = append(diags, failure(&ValidationError{Record: "course " + c.Code, Field: "weekly_hours", Reason: "must be positive"}))
			continue
		}
		degree := c.Degree
		if degree == "" {
			degree = "BTech"
		}
		groupID := GroupID(degree, c.Semester, c.Group)
		group, ok := cat.Groups[groupID]
		if !ok {
			// A course referencing an unlisted group derives one from its own
			// enrollment instead of dropping the course.
			strength := c.Students
			if strength <= 0 {
				diags = append(diags, failure(&ValidationError{Record: "course " + c.Code, Field: "group", Reason: fmt.Sprintf("unknown group %q and no enrolled_students to derive it from", c.Group)}))
				continue
			}
			numBatches := ceilDiv(strength, batchSize)
			group = &Group{
				ID:            groupID,
				Label:         c.Group,
				Degree:        degree,
				Semester:      c.Semester,
				Department:    Normalize(degree),
				Strength:      strength,
				NumBatches:    numBatches,
				BatchStrength: ceilDiv(strength, numBatches),
			}
			cat.Groups[groupID] = group
			diags = append(diags, warning(fmt.Errorf("course %v: group %v not listed, derived with strength %d", c.Code, groupID, strength)))
		}

		dept := Normalize(c.Department)
		if dept == "" {
			dept = group.Department
		}

		forced := -1
		if c.ForcedPracticalRoom != "" {
			if i, ok := cat.RoomIndex(c.ForcedPracticalRoom); ok {
				forced = i
			} else {
				diags = append(diags, warning(fmt.Errorf("course %v: forced practical room %q not in catalog, lock dropped", c.Code, c.ForcedPracticalRoom)))
			}
		}

		cat.Courses = append(cat.Courses, Course{
			Code:        c.Code,
			Name:        c.Name,
			Department:  dept,
			Degree:      degree,
			Semester:    c.Semester,
			GroupID:     groupID,
			GroupLabel:  c.Group,
			Students:    c.Students,
			WeeklyHours: c.WeeklyHours,
			Practical:   c.Practical,
			ForcedRoom:  forced,
		})
	}

	cat.Constraints = rec.Constraints

	if len(cat.Courses) == 0 {
		return nil, diags, &ValidationError{Record: "catalog", Field: "courses", Reason: "no valid course records"}
	}
	return cat, diags, nil
}
