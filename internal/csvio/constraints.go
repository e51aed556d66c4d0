package csvio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"

	"github.com/schedulify/engine/internal/catalog"
)

// SideInput carries the optional JSON companion file: course-scoped user
// constraints plus per-teacher soft preferences.
type SideInput struct {
	Constraints []struct {
		Course        string `mapstructure:"course"`
		Group         string `mapstructure:"group"`
		PreferredRoom string `mapstructure:"preferred_room"`
		PreferredTime string `mapstructure:"preferred_time"`
	} `mapstructure:"constraints"`
	TeacherPreferences map[string]struct {
		Rooms []string `mapstructure:"preferred_rooms"`
		Slots []int    `mapstructure:"preferred_slots"`
	} `mapstructure:"teacher_preferences"`
}

// LoadSideInput parses the companion JSON. A missing file is not an error; the
// run simply carries no extra constraints.
func LoadSideInput(path string) (SideInput, error) {
	var side SideInput
	if path == "" {
		return side, nil
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return side, nil
		}
		return side, fmt.Errorf("read %v: %w", path, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return side, fmt.Errorf("parse %v: %w", path, err)
	}
	if err := mapstructure.Decode(raw, &side); err != nil {
		return side, fmt.Errorf("decode %v: %w", path, err)
	}
	return side, nil
}

// Apply folds the side input into the raw record set.
func (side SideInput) Apply(rec *catalog.Records) {
	for _, c := range side.Constraints {
		rec.Constraints = append(rec.Constraints, catalog.UserConstraint{
			Course:        c.Course,
			Group:         c.Group,
			PreferredRoom: c.PreferredRoom,
			PreferredTime: c.PreferredTime,
		})
	}
	if len(side.TeacherPreferences) > 0 {
		if rec.PreferredRooms == nil {
			rec.PreferredRooms = map[string][]string{}
		}
		if rec.PreferredSlots == nil {
			rec.PreferredSlots = map[string][]int{}
		}
		for name, pref := range side.TeacherPreferences {
			rec.PreferredRooms[name] = append(rec.PreferredRooms[name], pref.Rooms...)
			rec.PreferredSlots[name] = append(rec.PreferredSlots[name], pref.Slots...)
		}
	}
}
