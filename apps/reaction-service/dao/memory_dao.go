package dao

import (
	"context"
	"sync"

	"mindcare-social/apps/reaction-service/model"
)

// memoryReactionDAO 内存实现，用于本地演示和测试
type memoryReactionDAO struct {
	mu        sync.RWMutex
	reactions map[string]*model.Reaction // 反应唯一键 -> 记录
}

// NewMemoryReactionDAO 创建内存反应DAO实例
func NewMemoryReactionDAO() ReactionDAO {
	return &memoryReactionDAO{
		reactions: make(map[string]*model.Reaction),
	}
}

// CreateReaction 创建反应记录
func (d *memoryReactionDAO) CreateReaction(ctx context.Context, reaction *model.Reaction) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := model.GetReactionKey(reaction.UserID, reaction.TargetType, reaction.TargetID, reaction.Type)
	if _, exists := d.reactions[key]; exists {
		return model.ErrDuplicateReaction
	}

	stored := *reaction
	d.reactions[key] = &stored
	return nil
}

// DeleteReaction 删除反应记录
func (d *memoryReactionDAO) DeleteReaction(ctx context.Context, userID, targetType, targetID, reactionType string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := model.GetReactionKey(userID, targetType, targetID, reactionType)
	if _, exists := d.reactions[key]; !exists {
		return model.ErrReactionNotFound
	}

	delete(d.reactions, key)
	return nil
}

// GetReactionCounts 按类型统计目标的反应数量
func (d *memoryReactionDAO) GetReactionCounts(ctx context.Context, targetType, targetID string) (map[string]int64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	counts := make(map[string]int64)
	for _, r := range d.reactions {
		if r.TargetType == targetType && r.TargetID == targetID {
			counts[r.Type]++
		}
	}
	return counts, nil
}

// GetUserReactions 查询用户对目标已应用的反应类型
func (d *memoryReactionDAO) GetUserReactions(ctx context.Context, userID, targetType, targetID string) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	types := make([]string, 0)
	for _, r := range d.reactions {
		if r.UserID == userID && r.TargetType == targetType && r.TargetID == targetID {
			types = append(types, r.Type)
		}
	}
	return types, nil
}

// memoryStreakDAO 连续记录内存实现
type memoryStreakDAO struct {
	mu      sync.RWMutex
	streaks map[string]*model.ReactionStreak
}

// NewMemoryStreakDAO 创建内存连续记录DAO实例
func NewMemoryStreakDAO() StreakDAO {
	return &memoryStreakDAO{
		streaks: make(map[string]*model.ReactionStreak),
	}
}

// GetStreak 查询连续记录
func (d *memoryStreakDAO) GetStreak(ctx context.Context, userID string) (*model.ReactionStreak, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	streak, exists := d.streaks[userID]
	if !exists {
		return nil, model.ErrStreakNotFound
	}

	copied := *streak
	return &copied, nil
}

// GetOrCreateStreak 查询连续记录，不存在时创建零值行
func (d *memoryStreakDAO) GetOrCreateStreak(ctx context.Context, userID string) (*model.ReactionStreak, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	streak, exists := d.streaks[userID]
	if !exists {
		streak = &model.ReactionStreak{UserID: userID}
		d.streaks[userID] = streak
	}

	copied := *streak
	return &copied, nil
}

// SaveStreak 带乐观锁保存连续记录
func (d *memoryStreakDAO) SaveStreak(ctx context.Context, streak *model.ReactionStreak) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	current, exists := d.streaks[streak.UserID]
	if !exists {
		return model.ErrStreakNotFound
	}
	if current.Version != streak.Version {
		return model.ErrConcurrencyConflict
	}

	stored := *streak
	stored.Version++
	d.streaks[streak.UserID] = &stored

	streak.Version++
	return nil
}
