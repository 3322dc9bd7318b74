package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mindcare-social/apps/reaction-service/model"
	"mindcare-social/pkg/database"
)

// streakDAO 连续记录数据访问实现
type streakDAO struct {
	db *database.PostgreSQL
}

// NewStreakDAO 创建连续记录DAO实例
func NewStreakDAO(db *database.PostgreSQL) StreakDAO {
	return &streakDAO{db: db}
}

// GetStreak 查询连续记录
func (d *streakDAO) GetStreak(ctx context.Context, userID string) (*model.ReactionStreak, error) {
	var streak model.ReactionStreak
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&streak).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrStreakNotFound
		}
		return nil, err
	}
	return &streak, nil
}

// GetOrCreateStreak 查询连续记录，不存在时创建零值行
func (d *streakDAO) GetOrCreateStreak(ctx context.Context, userID string) (*model.ReactionStreak, error) {
	streak := &model.ReactionStreak{UserID: userID}
	err := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(streak).Error
	if err != nil {
		return nil, err
	}
	return d.GetStreak(ctx, userID)
}

// SaveStreak 带乐观锁保存连续记录
// 仅当行版本仍等于读取时的版本才更新，版本号随之递增
func (d *streakDAO) SaveStreak(ctx context.Context, streak *model.ReactionStreak) error {
	result := d.db.WithContext(ctx).
		Model(&model.ReactionStreak{}).
		Where("user_id = ? AND version = ?", streak.UserID, streak.Version).
		Updates(map[string]interface{}{
			"current_streak":    streak.CurrentStreak,
			"longest_streak":    streak.LongestStreak,
			"last_reaction_at":  streak.LastReactionAt,
			"total_reactions":   streak.TotalReactions,
			"weekly_reactions":  streak.WeeklyReactions,
			"weekly_anchor":     streak.WeeklyAnchor,
			"monthly_reactions": streak.MonthlyReactions,
			"monthly_anchor":    streak.MonthlyAnchor,
			"reactions_by_type": streak.ReactionsByType,
			"achievements":      streak.Achievements,
			"version":           streak.Version + 1,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrConcurrencyConflict
	}

	streak.Version++
	return nil
}
