package repository

import (
	"context"
	"database/sql"
	"fmt"

	"warehouse-monitor/internal/domain"

	"go.uber.org/zap"
)

// PostgresAlertRepository 告警Repository实现
type PostgresAlertRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresAlertRepository 创建告警Repository
func NewPostgresAlertRepository(db *sql.DB, logger *zap.Logger) *PostgresAlertRepository {
	return &PostgresAlertRepository{db: db, logger: logger}
}

// 确保实现了接口
var _ AlertRepository = (*PostgresAlertRepository)(nil)

// Append 追加一条告警记录
func (r *PostgresAlertRepository) Append(ctx context.Context, alert domain.Alert) error {
	query := `
		INSERT INTO alerts (alert_id, sensor_id, alert_type, temperature, timestamp, resolved)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := r.db.ExecContext(ctx, query,
		alert.AlertID, alert.SensorID, string(alert.AlertType),
		alert.Temperature, alert.Timestamp, alert.Resolved,
	); err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}
	return nil
}

// Active 所有未解决的告警，按时间戳降序
func (r *PostgresAlertRepository) Active(ctx context.Context) ([]domain.Alert, error) {
	query := `
		SELECT alert_id, sensor_id, alert_type, temperature, timestamp, resolved
		FROM alerts
		WHERE resolved = FALSE
		ORDER BY timestamp DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active alerts: %w", err)
	}
	defer rows.Close()

	var results []domain.Alert
	for rows.Next() {
		var alert domain.Alert
		var alertType string
		if err := rows.Scan(
			&alert.AlertID,
			&alert.SensorID,
			&alertType,
			&alert.Temperature,
			&alert.Timestamp,
			&alert.Resolved,
		); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alert.AlertType = domain.AlertType(alertType)
		results = append(results, alert)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return results, nil
}
