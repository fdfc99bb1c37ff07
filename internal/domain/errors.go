package domain

import "errors"

// ErrUnknownSensor 未注册的传感器ID（调度器只应使用 Registry 枚举出的ID，出现即为逻辑缺陷）
var ErrUnknownSensor = errors.New("unknown sensor id")
