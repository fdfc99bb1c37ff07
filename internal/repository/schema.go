package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema 启动时建表（幂等）
// 两张表都是只追加的：temperature_readings 存读数，alerts 存阈值告警
func Schema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS temperature_readings (
			id BIGSERIAL PRIMARY KEY,
			sensor_id TEXT NOT NULL,
			temperature DOUBLE PRECISION NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			location TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_readings_sensor_ts
			ON temperature_readings (sensor_id, timestamp DESC)`,
		`CREATE TABLE IF NOT EXISTS alerts (
			alert_id UUID PRIMARY KEY,
			sensor_id TEXT NOT NULL,
			alert_type TEXT NOT NULL,
			temperature DOUBLE PRECISION NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			resolved BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_resolved_ts
			ON alerts (resolved, timestamp DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
