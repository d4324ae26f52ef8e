// Command autograde seeds a classroom, grades every submission and prints
// the roster before and after grading.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Reaishma/Automated-grading-app/internal/app"
	"github.com/Reaishma/Automated-grading-app/internal/config"
	"github.com/Reaishma/Automated-grading-app/internal/logging"
	"github.com/Reaishma/Automated-grading-app/internal/report"
)

func main() {
	fixtures := flag.String("fixtures", "", "YAML fixture file (default: built-in sample data)")
	xlsxOut := flag.String("xlsx", "", "write the graded roster to this .xlsx file")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	cfg := config.FromEnv()
	cfg.SeedSample = true
	if *fixtures != "" {
		cfg.FixturesFile = *fixtures
	}
	if os.Getenv("LOG_FORMAT") == "" {
		cfg.LogFormat = "console"
	}
	if os.Getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = "warn"
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(context.Background(), cfg, *xlsxOut, logger); err != nil {
		logger.Error("autograde failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, xlsxOut string, logger *zap.Logger) error {
	core, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer core.Close()

	students, err := core.Service.Store().ListStudents(ctx)
	if err != nil {
		return err
	}
	assignments, err := core.Service.Store().ListAssignments(ctx)
	if err != nil {
		return err
	}
	fmt.Println(report.Classroom(students, assignments))
	fmt.Println()

	before, err := core.Service.Roster(ctx)
	if err != nil {
		return err
	}
	fmt.Println(report.Submissions("Submissions before grading", before, true))

	res, err := core.Service.GradeAll(ctx)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(report.Batch(res))

	after, err := core.Service.Roster(ctx)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(report.Submissions("Submissions after grading", after, false))

	if xlsxOut == "" {
		return nil
	}
	f, err := os.Create(xlsxOut)
	if err != nil {
		return err
	}
	if err := report.WriteXLSX(f, after, time.Now()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("\nwrote %s\n", xlsxOut)
	return nil
}
