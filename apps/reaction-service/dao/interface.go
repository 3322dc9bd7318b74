package dao

import (
	"context"

	"mindcare-social/apps/reaction-service/model"
)

// ReactionDAO 反应数据访问接口
type ReactionDAO interface {
	// 基础反应操作
	CreateReaction(ctx context.Context, reaction *model.Reaction) error
	DeleteReaction(ctx context.Context, userID, targetType, targetID, reactionType string) error

	// 查询操作
	GetReactionCounts(ctx context.Context, targetType, targetID string) (map[string]int64, error)
	GetUserReactions(ctx context.Context, userID, targetType, targetID string) ([]string, error)
}

// StreakDAO 连续记录数据访问接口
type StreakDAO interface {
	// GetStreak 查询连续记录，不存在时返回ErrStreakNotFound
	GetStreak(ctx context.Context, userID string) (*model.ReactionStreak, error)
	// GetOrCreateStreak 查询连续记录，不存在时创建零值行
	GetOrCreateStreak(ctx context.Context, userID string) (*model.ReactionStreak, error)
	// SaveStreak 保存连续记录，版本不匹配时返回ErrConcurrencyConflict
	SaveStreak(ctx context.Context, streak *model.ReactionStreak) error
}
