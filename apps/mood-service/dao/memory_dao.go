package dao

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"mindcare-social/apps/mood-service/model"
)

// memoryMoodDAO 内存实现，用于本地演示和测试
type memoryMoodDAO struct {
	mu      sync.RWMutex
	entries map[string]*model.MoodEntry // userID:day -> 记录
}

// NewMemoryMoodDAO 创建内存心情DAO实例
func NewMemoryMoodDAO() MoodDAO {
	return &memoryMoodDAO{
		entries: make(map[string]*model.MoodEntry),
	}
}

func entryKey(userID string, date time.Time) string {
	return fmt.Sprintf("%s:%s", userID, date.Format("2006-01-02"))
}

// UpsertEntry 按 (userID, date) 插入或覆盖当日记录
func (d *memoryMoodDAO) UpsertEntry(ctx context.Context, entry *model.MoodEntry) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := entryKey(entry.UserID, entry.Date)
	if existing, ok := d.entries[key]; ok {
		// 保留首次创建信息
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	}
	entry.UpdatedAt = time.Now()

	stored := *entry
	d.entries[key] = &stored
	return nil
}

// GetRecentEntries 按日期倒序返回最近的记录
func (d *memoryMoodDAO) GetRecentEntries(ctx context.Context, userID string, limit int) ([]*model.MoodEntry, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	entries := make([]*model.MoodEntry, 0)
	for _, e := range d.entries {
		if e.UserID == userID {
			copied := *e
			entries = append(entries, &copied)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
