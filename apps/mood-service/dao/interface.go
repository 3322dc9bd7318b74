package dao

import (
	"context"

	"mindcare-social/apps/mood-service/model"
)

// MoodDAO 心情数据访问接口
type MoodDAO interface {
	// UpsertEntry 按 (userID, date) 插入或覆盖当日记录
	UpsertEntry(ctx context.Context, entry *model.MoodEntry) error
	// GetRecentEntries 按日期倒序返回最近的记录
	GetRecentEntries(ctx context.Context, userID string, limit int) ([]*model.MoodEntry, error)
}
