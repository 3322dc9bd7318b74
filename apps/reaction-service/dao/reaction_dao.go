package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mindcare-social/apps/reaction-service/model"
	"mindcare-social/pkg/database"
)

// reactionDAO 反应数据访问实现
type reactionDAO struct {
	db *database.PostgreSQL
}

// NewReactionDAO 创建反应DAO实例
func NewReactionDAO(db *database.PostgreSQL) ReactionDAO {
	return &reactionDAO{db: db}
}

// CreateReaction 创建反应记录
// 四元组唯一索引负责去重，唯一约束冲突翻译为ErrDuplicateReaction
func (d *reactionDAO) CreateReaction(ctx context.Context, reaction *model.Reaction) error {
	if err := d.db.WithContext(ctx).Create(reaction).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return model.ErrDuplicateReaction
		}
		return err
	}
	return nil
}

// DeleteReaction 删除反应记录
func (d *reactionDAO) DeleteReaction(ctx context.Context, userID, targetType, targetID, reactionType string) error {
	result := d.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ? AND type = ?",
			userID, targetType, targetID, reactionType).
		Delete(&model.Reaction{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrReactionNotFound
	}
	return nil
}

// GetReactionCounts 按类型统计目标的反应数量
func (d *reactionDAO) GetReactionCounts(ctx context.Context, targetType, targetID string) (map[string]int64, error) {
	var rows []struct {
		Type  string
		Count int64
	}
	err := d.db.WithContext(ctx).
		Model(&model.Reaction{}).
		Select("type, COUNT(*) as count").
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Type] = row.Count
	}
	return counts, nil
}

// GetUserReactions 查询用户对目标已应用的反应类型
func (d *reactionDAO) GetUserReactions(ctx context.Context, userID, targetType, targetID string) ([]string, error) {
	var types []string
	err := d.db.WithContext(ctx).
		Model(&model.Reaction{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Pluck("type", &types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}
