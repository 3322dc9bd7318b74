package model

import "errors"

// 业务错误
var (
	ErrDuplicateReaction   = errors.New("该反应已存在")
	ErrReactionNotFound    = errors.New("反应记录不存在")
	ErrStreakNotFound      = errors.New("连续记录不存在")
	ErrConcurrencyConflict = errors.New("并发冲突，请重试")
	ErrInvalidReactionType = errors.New("无效的反应类型")
	ErrInvalidTargetType   = errors.New("无效的目标类型")
)
