// Package csvio loads catalog input files and writes timetable output files.
// Input headers are matched against ranked alias lists, so common spreadsheet
// spellings ("Course Code", "course_code", "code") all resolve to the same
// field.
package csvio

import "github.com/schedulify/engine/internal/catalog"

type Field struct {
	Name     string
	Aliases  []string
	Required bool
}

// Schema is an ordered field list for one input file.
type Schema []Field

// Resolve maps every schema field to a column index in the header, trying the
// canonical name first and then each alias in rank order. Optional fields that
// match nothing resolve to -1; a missing required field fails with a
// ValidationError naming it.
func (s Schema) Resolve(record string, header []string) (map[string]int, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		key := catalog.Normalize(h)
		if _, seen := byName[key]; !seen {
			byName[key] = i
		}
	}

	cols := make(map[string]int, len(s))
	for _, f := range s {
		cols[f.Name] = -1
		for _, candidate := range append([]string{f.Name}, f.Aliases...) {
			if i, ok := byName[catalog.Normalize(candidate)]; ok {
				cols[f.Name] = i
				break
			}
		}
		if cols[f.Name] < 0 && f.Required {
			return nil, &catalog.ValidationError{Record: record, Field: f.Name, Reason: "required column missing"}
		}
	}
	return cols, nil
}
