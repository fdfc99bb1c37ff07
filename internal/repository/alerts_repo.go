package repository

import (
	"context"

	"warehouse-monitor/internal/domain"
)

// AlertRepository 告警仓储（追加写 + 上报层查询）
// resolved 的 false→true 翻转留给未来的外部协作方，这里不提供写路径
type AlertRepository interface {
	// Append 追加一条告警记录
	Append(ctx context.Context, alert domain.Alert) error

	// Active 所有未解决的告警，按时间戳降序
	Active(ctx context.Context) ([]domain.Alert, error)
}
