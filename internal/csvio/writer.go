package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/schedulify/engine/internal/catalog"
	"github.com/schedulify/engine/internal/schedule"
)

type masterRow struct {
	Day        string `csv:"Day"`
	Time       string `csv:"Time"`
	Course     string `csv:"Course"`
	Group      string `csv:"Group"`
	SubBatch   string `csv:"SubBatch"`
	Teacher    string `csv:"Teacher"`
	Room       string `csv:"Room"`
	Type       string `csv:"Type"`
	Department string `csv:"Department"`
}

// WriteMaster writes the full timetable as one flat CSV, ordered by day then
// start slot.
func WriteMaster(path string, records []schedule.Record) error {
	sorted := make([]schedule.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].DayIndex != sorted[j].DayIndex {
			return sorted[i].DayIndex < sorted[j].DayIndex
		}
		if sorted[i].StartSlot != sorted[j].StartSlot {
			return sorted[i].StartSlot < sorted[j].StartSlot
		}
		return sorted[i].Group < sorted[j].Group
	})

	rows := make([]*masterRow, len(sorted))
	for i, r := range sorted {
		rows[i] = &masterRow{
			Day:        r.Day,
			Time:       r.Time,
			Course:     r.Course,
			Group:      r.Group,
			SubBatch:   r.SubBatch,
			Teacher:    r.Teacher,
			Room:       r.Room,
			Type:       r.Type,
			Department: r.Department,
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %v: %w", path, err)
	}
	defer out.Close()
	return gocsv.MarshalFile(&rows, out)
}

// WriteGroupGrids writes one day x slot matrix CSV per group under dir. Cells
// hold "COURSE (Room)" and multi-slot sessions fill every slot they occupy.
func WriteGroupGrids(dir string, grid catalog.Grid, records []schedule.Record) error {
	byGroup := map[string][]schedule.Record{}
	for _, r := range records {
		byGroup[r.Group] = append(byGroup[r.Group], r)
	}

	for group, recs := range byGroup {
		cells := make([][]string, len(grid.Days))
		for d := range cells {
			cells[d] = make([]string, grid.SlotsPerDay)
		}
		for _, r := range recs {
			label := r.Course
			if r.SubBatch != catalog.AllBatch && r.SubBatch != "" {
				label = fmt.Sprintf("%v [%v]", r.Course, r.SubBatch)
			}
			if r.Room != "" {
				label = fmt.Sprintf("%v (%v)", label, r.Room)
			}
			for s := r.StartSlot; s < r.StartSlot+r.Duration && s < grid.SlotsPerDay; s++ {
				if cells[r.DayIndex][s] != "" {
					cells[r.DayIndex][s] += " / "
				}
				cells[r.DayIndex][s] += label
			}
		}

		header := make([]string, 0, grid.SlotsPerDay+1)
		header = append(header, "Day")
		for s := 0; s < grid.SlotsPerDay; s++ {
			header = append(header, grid.TimeRange(s, 1))
		}

		path := filepath.Join(dir, "Group_"+fileSafe(group)+".csv")
		if err := writeMatrix(path, header, grid, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeMatrix(path string, header []string, grid catalog.Grid, cells [][]string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %v: %w", path, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return err
	}
	for d, row := range cells {
		if err := w.Write(append([]string{grid.DayName(d)}, row...)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '-'
		}
		return r
	}, name)
}
