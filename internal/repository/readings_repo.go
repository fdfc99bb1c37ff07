package repository

import (
	"context"
	"time"

	"warehouse-monitor/internal/domain"
)

// ReadingRepository 温度读数仓储（追加写 + 上报层查询）
// 表是只追加的：本核心不存在更新或删除路径
type ReadingRepository interface {
	// Append 追加一条读数（单条写入原子可见）
	Append(ctx context.Context, reading domain.Reading) error

	// Current 每个传感器时间戳最大的那条读数
	Current(ctx context.Context) ([]domain.Reading, error)

	// History 某传感器自 since 起的全部读数，按时间戳升序
	History(ctx context.Context, sensorID string, since time.Time) ([]domain.Reading, error)
}
