package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/codelish/institute/internal/repository"
	"github.com/codelish/institute/internal/service"
	"github.com/codelish/institute/pkg/config"
	"github.com/codelish/institute/pkg/kv"
	"github.com/codelish/institute/pkg/logger"
	"github.com/codelish/institute/pkg/metrics"
	"github.com/codelish/institute/pkg/persist"
)

func main() {
	exportFormat := flag.String("export", "", "render an attendance report (csv or pdf) and exit")
	exportCourse := flag.String("course", "", "restrict the report to one course id")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	store, closeStore, err := newStore(cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to open storage", "backend", cfg.Storage.Backend, "error", err)
	}
	defer closeStore()

	m := metrics.New()
	writer := persist.NewWriter(store, logr, m)
	writer.Start(context.Background())
	defer writer.Stop()

	repo := repository.New(nil)
	data := service.NewDataService(repo, store, writer, logr, m)
	data.Initialize(context.Background())

	logr.Sugar().Infow("institute data ready",
		"backend", cfg.Storage.Backend,
		"courses", len(data.Courses()),
		"groups", len(data.Groups()),
		"students", len(data.Students()))

	if *exportFormat != "" {
		if err := writeReport(cfg, data, logr, *exportCourse, *exportFormat); err != nil {
			logr.Sugar().Fatalw("report export failed", "error", err)
		}
	}
}

func newStore(cfg *config.Config) (kv.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		store, err := kv.NewRedisStore(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case config.BackendPostgres:
		store, err := kv.NewPostgresStore(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		store, err := kv.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

func writeReport(cfg *config.Config, data *service.DataService, logr *zap.Logger, courseID, format string) error {
	reports := service.NewReportService(data, logr)
	payload, err := reports.RenderAttendance(courseID, format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	name := fmt.Sprintf("attendance-%s.%s", time.Now().Format("2006-01-02"), format)
	path := filepath.Join(cfg.Export.Dir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	logr.Sugar().Infow("report written", "path", path, "format", format)
	return nil
}
