package telemetry

import (
	"fmt"
	"time"

	"github.com/erpsuite/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const startedAtKey = "telemetry:started_at"

// InstrumentDB registers the otelgorm plugin and a slow query logger when
// database tracing is enabled. Query variables never reach the spans.
func InstrumentDB(db *gorm.DB, cfg config.TelemetryConfig, logger *zap.Logger) error {
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		return nil
	}
	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName(db.Dialector.Name()),
		otelgorm.WithoutQueryVariables(),
	)
	if err := db.Use(plugin); err != nil {
		return fmt.Errorf("register otelgorm plugin: %w", err)
	}
	if cfg.DBSlowQueryThresh > 0 {
		if err := registerSlowQueryLog(db, cfg.DBSlowQueryThresh, logger); err != nil {
			return err
		}
	}
	logger.Info("database tracing enabled", zap.Duration("slow_query_threshold", cfg.DBSlowQueryThresh))
	return nil
}

func registerSlowQueryLog(db *gorm.DB, threshold time.Duration, logger *zap.Logger) error {
	start := func(tx *gorm.DB) {
		tx.InstanceSet(startedAtKey, time.Now())
	}
	finish := func(tx *gorm.DB) {
		v, ok := tx.InstanceGet(startedAtKey)
		if !ok {
			return
		}
		elapsed := time.Since(v.(time.Time))
		if elapsed < threshold {
			return
		}
		logger.Warn("slow query",
			zap.String("table", tx.Statement.Table),
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", tx.RowsAffected),
		)
	}

	cb := db.Callback()
	steps := []struct {
		name   string
		before func(string) error
		after  func(string) error
	}{
		{"create", func(n string) error { return cb.Create().Before("gorm:create").Register(n, start) }, func(n string) error { return cb.Create().After("gorm:create").Register(n, finish) }},
		{"query", func(n string) error { return cb.Query().Before("gorm:query").Register(n, start) }, func(n string) error { return cb.Query().After("gorm:query").Register(n, finish) }},
		{"update", func(n string) error { return cb.Update().Before("gorm:update").Register(n, start) }, func(n string) error { return cb.Update().After("gorm:update").Register(n, finish) }},
		{"delete", func(n string) error { return cb.Delete().Before("gorm:delete").Register(n, start) }, func(n string) error { return cb.Delete().After("gorm:delete").Register(n, finish) }},
		{"row", func(n string) error { return cb.Row().Before("gorm:row").Register(n, start) }, func(n string) error { return cb.Row().After("gorm:row").Register(n, finish) }},
		{"raw", func(n string) error { return cb.Raw().Before("gorm:raw").Register(n, start) }, func(n string) error { return cb.Raw().After("gorm:raw").Register(n, finish) }},
	}
	for _, s := range steps {
		if err := s.before("telemetry:before_" + s.name); err != nil {
			return fmt.Errorf("register slow query callback: %w", err)
		}
		if err := s.after("telemetry:after_" + s.name); err != nil {
			return fmt.Errorf("register slow query callback: %w", err)
		}
	}
	return nil
}
