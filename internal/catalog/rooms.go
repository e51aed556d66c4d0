package catalog

// Needed returns the seat count a session requires: the full group strength
// for AllBatch sessions, the sub-batch strength otherwise.
func (c *Catalog) Needed(s Session) int {
	group := c.Groups[s.GroupID]
	if s.SubBatch == AllBatch {
		return group.Strength
	}
	return group.BatchStrength
}

// AdmissibleRooms computes the room indexes a session may use. A forced room
// short-circuits everything. The strict pass filters on capacity, room kind
// and department affinity; if it comes up empty for a practical, the relaxed
// pass accepts any lab with sufficient capacity regardless of department. An
// empty result means the session is unplaceable.
func (c *Catalog) AdmissibleRooms(s Session) []int {
	if s.ForcedRoom >= 0 {
		return []int{s.ForcedRoom}
	}
	needed := c.Needed(s)

	var valid []int
	for i, r := range c.Rooms {
		if r.Capacity < needed {
			continue
		}
		if s.Type == Practical {
			if r.Kind != RoomLab {
				continue
			}
			if r.Department != GeneralDepartment && r.Department != s.Department {
				continue
			}
		} else if r.Kind == RoomLab {
			continue
		}
		valid = append(valid, i)
	}

	if len(valid) == 0 && s.Type == Practical {
		for i, r := range c.Rooms {
			if r.Kind == RoomLab && r.Capacity >= needed {
				valid = append(valid, i)
			}
		}
	}

	return valid
}

// ResolveRooms resolves the admissible set for every session, reporting an
// UnplaceableSessionError diagnostic for each empty one.
func (c *Catalog) ResolveRooms(sessions []Session) ([][]int, []Diagnostic) {
	rooms := make([][]int, len(sessions))
	var diags []Diagnostic
	for i, s := range sessions {
		rooms[i] = c.AdmissibleRooms(s)
		if len(rooms[i]) == 0 {
			diags = append(diags, failure(&UnplaceableSessionError{
				Course:   s.Course,
				Group:    s.GroupID,
				SubBatch: s.SubBatch,
				Needed:   c.Needed(s),
			}))
		}
	}
	return rooms, diags
}
