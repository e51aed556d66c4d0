package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/schedulify/engine/internal/catalog"
	"github.com/schedulify/engine/internal/csvio"
	"github.com/schedulify/engine/internal/engine"
	"github.com/schedulify/engine/internal/exact"
	"github.com/schedulify/engine/internal/genetic"
	"github.com/schedulify/engine/internal/logging"
	"github.com/schedulify/engine/internal/sat"
	"github.com/schedulify/engine/internal/schedule"
)

var (
	coursesPath     string
	groupsPath      string
	roomsPath       string
	teachersPath    string
	constraintsPath string
	batchSize       int
	teacherMode     bool
	logLevel        string
	logJSON         bool

	strategyFlag string
	seed         int64
	generations  int
	population   int
	budget       time.Duration
	outDir       string
	dumpCNF      string
)

func main() {
	root := &cobra.Command{
		Use:           "schedulify",
		Short:         "Academic timetable generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&coursesPath, "courses", "courses.csv", "courses CSV path")
	root.PersistentFlags().StringVar(&groupsPath, "groups", "", "groups CSV path (optional, groups derive from courses otherwise)")
	root.PersistentFlags().StringVar(&roomsPath, "rooms", "rooms.csv", "rooms CSV path")
	root.PersistentFlags().StringVar(&teachersPath, "teachers", "", "teachers CSV path (optional)")
	root.PersistentFlags().StringVar(&constraintsPath, "constraints", "", "constraints JSON path (optional)")
	root.PersistentFlags().IntVar(&batchSize, "batch-size", catalog.DefaultBatchSize, "lab sub-batch size cap")
	root.PersistentFlags().BoolVar(&teacherMode, "teacher-mode", false, "assign concrete teachers instead of deferring to departments")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	root.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit JSON log lines instead of console output")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the input files without solving",
		RunE:  runValidate,
	}

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "Generate a timetable",
		RunE:  runSolve,
	}
	solveCmd.Flags().StringVar(&strategyFlag, "strategy", "genetic", `"genetic" or "exact"`)
	solveCmd.Flags().Int64Var(&seed, "seed", 0, "random seed for the genetic strategy")
	solveCmd.Flags().IntVar(&generations, "generations", 0, "genetic generation budget (0 uses the default)")
	solveCmd.Flags().IntVar(&population, "population", 0, "genetic population size (0 uses the default)")
	solveCmd.Flags().DurationVar(&budget, "budget", sat.DefaultBudget, "exact strategy wall-clock budget")
	solveCmd.Flags().StringVar(&outDir, "out", ".", "output directory for timetable CSVs")
	solveCmd.Flags().StringVar(&dumpCNF, "dump-cnf", "", "write the exact strategy's DIMACS encoding to this path")

	root.AddCommand(validateCmd, solveCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	return logging.New(logLevel, !logJSON).With().Str("run_id", uuid.NewString()).Logger()
}

func loadInputs(log zerolog.Logger) (*catalog.Catalog, []catalog.Session, []catalog.Diagnostic, error) {
	var rec catalog.Records
	var err error

	if rec.Courses, err = csvio.LoadCourses(coursesPath); err != nil {
		return nil, nil, nil, err
	}
	if rec.Rooms, err = csvio.LoadRooms(roomsPath); err != nil {
		return nil, nil, nil, err
	}
	if groupsPath != "" {
		if rec.Groups, err = csvio.LoadGroups(groupsPath); err != nil {
			return nil, nil, nil, err
		}
	}
	if teachersPath != "" {
		if rec.Teachers, err = csvio.LoadTeachers(teachersPath); err != nil {
			return nil, nil, nil, err
		}
	}
	side, err := csvio.LoadSideInput(constraintsPath)
	if err != nil {
		return nil, nil, nil, err
	}
	side.Apply(&rec)

	cat, diags, err := catalog.Build(rec, catalog.DefaultGrid(), batchSize)
	if err != nil {
		logDiagnostics(log, diags)
		return nil, nil, nil, err
	}

	sessions, expandDiags := catalog.ExpandSessions(cat, teacherMode)
	diags = append(diags, expandDiags...)
	return cat, sessions, diags, nil
}

func logDiagnostics(log zerolog.Logger, diags []catalog.Diagnostic) {
	for _, d := range diags {
		if d.Severity == catalog.SeverityError {
			log.Error().Msg(d.Err.Error())
		} else {
			log.Warn().Msg(d.Err.Error())
		}
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := newLogger()
	cat, sessions, diags, err := loadInputs(log)
	if err != nil {
		return err
	}
	_, roomDiags := cat.ResolveRooms(sessions)
	diags = append(diags, roomDiags...)
	logDiagnostics(log, diags)

	errors := 0
	for _, d := range diags {
		if d.Severity == catalog.SeverityError {
			errors++
		}
	}
	log.Info().
		Int("courses", len(cat.Courses)).
		Int("groups", len(cat.Groups)).
		Int("rooms", len(cat.Rooms)).
		Int("teachers", len(cat.Teachers)).
		Int("sessions", len(sessions)).
		Int("errors", errors).
		Msg("validation finished")
	if errors > 0 {
		return fmt.Errorf("input has %d blocking issues", errors)
	}
	return nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	log := newLogger()
	cat, sessions, diags, err := loadInputs(log)
	if err != nil {
		return err
	}
	logDiagnostics(log, diags)
	if len(sessions) == 0 {
		return fmt.Errorf("no schedulable sessions after validation")
	}

	if dumpCNF != "" {
		instance, _ := exact.New(sat.NewGophersatSolver(), budget).Instance(cat, sessions)
		if err := os.WriteFile(dumpCNF, []byte(instance.ToDIMACS()), 0o644); err != nil {
			return err
		}
		log.Info().Str("path", dumpCNF).Int("variables", instance.Variables).Int("clauses", len(instance.Clauses)).Msg("wrote DIMACS encoding")
	}

	cfg := genetic.DefaultConfig()
	if population > 0 {
		cfg.Population = population
	}
	if generations > 0 {
		cfg.Generations = generations
	}

	result, err := engine.Solve(cmd.Context(), cat, sessions, engine.Options{
		Strategy:    engine.Strategy(strategyFlag),
		Seed:        seed,
		Genetic:     cfg,
		Budget:      budget,
		TeacherMode: teacherMode,
		Logger:      log,
	})
	if err != nil {
		return err
	}
	logDiagnostics(log, result.Diagnostics)

	switch result.Status {
	case schedule.StatusInfeasible:
		return fmt.Errorf("instance is infeasible")
	case schedule.StatusUnknown:
		log.Warn().Msg("no proven solution within the budget; writing best effort output")
	}

	if len(result.Records) == 0 {
		return nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	masterPath := outDir + "/Master_Timetable.csv"
	if err := csvio.WriteMaster(masterPath, result.Records); err != nil {
		return err
	}
	if err := csvio.WriteGroupGrids(outDir, cat.Grid, result.Records); err != nil {
		return err
	}
	log.Info().
		Str("master", masterPath).
		Str("status", string(result.Status)).
		Int("hard", result.Hard).
		Int("soft", result.Soft).
		Msg("timetable written")
	return nil
}
