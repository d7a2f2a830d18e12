package database

import (
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

const startTimeKey = "query_start_time"

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats sql.DBStats)
}

func markStart(db *gorm.DB) {
	db.InstanceSet(startTimeKey, time.Now())
}

func recordAfter(recorder MetricsRecorder, operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		startTime, ok := db.InstanceGet(startTimeKey)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		recorder.RecordDBQuery(operation, table, time.Since(startTime.(time.Time)), db.Error)
	}
}

// RegisterMetricsCallbacks times every query, create, update, delete and raw statement.
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) error {
	cb := db.Callback()

	return errors.Join(
		cb.Query().Before("gorm:query").Register("metrics:query_before", markStart),
		cb.Query().After("gorm:query").Register("metrics:query_after", recordAfter(recorder, "select")),
		cb.Create().Before("gorm:create").Register("metrics:create_before", markStart),
		cb.Create().After("gorm:create").Register("metrics:create_after", recordAfter(recorder, "insert")),
		cb.Update().Before("gorm:update").Register("metrics:update_before", markStart),
		cb.Update().After("gorm:update").Register("metrics:update_after", recordAfter(recorder, "update")),
		cb.Delete().Before("gorm:delete").Register("metrics:delete_before", markStart),
		cb.Delete().After("gorm:delete").Register("metrics:delete_after", recordAfter(recorder, "delete")),
		cb.Raw().Before("gorm:raw").Register("metrics:raw_before", markStart),
		cb.Raw().After("gorm:raw").Register("metrics:raw_after", recordAfter(recorder, "raw")),
	)
}

// StartDBStatsCollector publishes pool stats every interval until done is closed.
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder, interval time.Duration) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
