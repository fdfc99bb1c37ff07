package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"warehouse-monitor/internal/domain"

	"go.uber.org/zap"
)

// PostgresReadingRepository 温度读数Repository实现
type PostgresReadingRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresReadingRepository 创建温度读数Repository
func NewPostgresReadingRepository(db *sql.DB, logger *zap.Logger) *PostgresReadingRepository {
	return &PostgresReadingRepository{db: db, logger: logger}
}

// 确保实现了接口
var _ ReadingRepository = (*PostgresReadingRepository)(nil)

// Append 追加一条读数
func (r *PostgresReadingRepository) Append(ctx context.Context, reading domain.Reading) error {
	query := `
		INSERT INTO temperature_readings (sensor_id, temperature, timestamp, location)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.db.ExecContext(ctx, query,
		reading.SensorID, reading.Temperature, reading.Timestamp, reading.Location,
	); err != nil {
		return fmt.Errorf("failed to insert reading: %w", err)
	}
	return nil
}

// Current 每个传感器时间戳最大的那条读数
func (r *PostgresReadingRepository) Current(ctx context.Context) ([]domain.Reading, error) {
	query := `
		SELECT DISTINCT ON (sensor_id)
			sensor_id, temperature, timestamp, location
		FROM temperature_readings
		ORDER BY sensor_id, timestamp DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query current readings: %w", err)
	}
	defer rows.Close()

	return scanReadings(rows)
}

// History 某传感器自 since 起的读数，按时间戳升序
func (r *PostgresReadingRepository) History(ctx context.Context, sensorID string, since time.Time) ([]domain.Reading, error) {
	query := `
		SELECT sensor_id, temperature, timestamp, location
		FROM temperature_readings
		WHERE sensor_id = $1 AND timestamp >= $2
		ORDER BY timestamp ASC
	`

	rows, err := r.db.QueryContext(ctx, query, sensorID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query reading history: %w", err)
	}
	defer rows.Close()

	return scanReadings(rows)
}

// scanReadings 扫描多行读数
func scanReadings(rows *sql.Rows) ([]domain.Reading, error) {
	var results []domain.Reading
	for rows.Next() {
		var reading domain.Reading
		if err := rows.Scan(
			&reading.SensorID,
			&reading.Temperature,
			&reading.Timestamp,
			&reading.Location,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		results = append(results, reading)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return results, nil
}
