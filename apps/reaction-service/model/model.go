package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Reaction 反应记录表
type Reaction struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string    `json:"user_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_reaction_unique;index:idx_user_target"`
	TargetType string    `json:"target_type" gorm:"type:varchar(20);not null;uniqueIndex:idx_reaction_unique;index:idx_target"`
	TargetID   string    `json:"target_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_reaction_unique;index:idx_target"`
	Type       string    `json:"type" gorm:"type:varchar(20);not null;uniqueIndex:idx_reaction_unique"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

// TableName .
func (Reaction) TableName() string {
	return "reactions"
}

// ReactionStreak 用户连续反应记录表，每个用户一行
type ReactionStreak struct {
	UserID           string    `json:"user_id" gorm:"primaryKey;type:varchar(64)"`
	CurrentStreak    int       `json:"current_streak" gorm:"default:0"`
	LongestStreak    int       `json:"longest_streak" gorm:"default:0"`
	LastReactionAt   time.Time `json:"last_reaction_at"`
	TotalReactions   int64     `json:"total_reactions" gorm:"default:0"`
	WeeklyReactions  int64     `json:"weekly_reactions" gorm:"default:0"`
	WeeklyAnchor     time.Time `json:"weekly_anchor"`
	MonthlyReactions int64     `json:"monthly_reactions" gorm:"default:0"`
	MonthlyAnchor    time.Time `json:"monthly_anchor"`
	ReactionsByType  string    `json:"-" gorm:"type:text"` // JSON: type -> count
	Achievements     string    `json:"-" gorm:"type:text"` // JSON: 已解锁成就key列表
	Version          int64     `json:"-" gorm:"default:0"` // 乐观锁版本号
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName .
func (ReactionStreak) TableName() string {
	return "reaction_streaks"
}

// TypeCounts 解析按类型计数
func (s *ReactionStreak) TypeCounts() map[string]int64 {
	counts := make(map[string]int64)
	if s.ReactionsByType != "" {
		// 解析失败时按空计数处理
		_ = json.Unmarshal([]byte(s.ReactionsByType), &counts)
	}
	return counts
}

// SetTypeCounts 序列化按类型计数
func (s *ReactionStreak) SetTypeCounts(counts map[string]int64) {
	data, err := json.Marshal(counts)
	if err != nil {
		return
	}
	s.ReactionsByType = string(data)
}

// AchievementSet 解析已解锁成就集合
func (s *ReactionStreak) AchievementSet() map[string]bool {
	set := make(map[string]bool)
	if s.Achievements == "" {
		return set
	}
	var keys []string
	if err := json.Unmarshal([]byte(s.Achievements), &keys); err != nil {
		return set
	}
	for _, k := range keys {
		set[k] = true
	}
	return set
}

// SetAchievementSet 序列化已解锁成就集合，保持规则表顺序
func (s *ReactionStreak) SetAchievementSet(set map[string]bool) {
	keys := make([]string, 0, len(set))
	for _, rule := range AchievementRules {
		if set[rule.Key] {
			keys = append(keys, rule.Key)
		}
	}
	data, err := json.Marshal(keys)
	if err != nil {
		return
	}
	s.Achievements = string(data)
}

// ValidateReactionType 验证反应类型
func ValidateReactionType(reactionType string) bool {
	for _, t := range ValidReactionTypes {
		if t == reactionType {
			return true
		}
	}
	return false
}

// ValidateTargetType 验证目标类型
func ValidateTargetType(targetType string) bool {
	for _, t := range ValidTargetTypes {
		if t == targetType {
			return true
		}
	}
	return false
}

// GetReactionKey 生成反应的唯一键
func GetReactionKey(userID, targetType, targetID, reactionType string) string {
	return fmt.Sprintf("%s:%s:%s:%s", userID, targetType, targetID, reactionType)
}

// GetCountsCacheKey 生成目标计数的缓存键
func GetCountsCacheKey(targetType, targetID string) string {
	return fmt.Sprintf("%s:%s:%s", CacheKeyReactionCounts, targetType, targetID)
}

// GetUserReactionsCacheKey 生成用户反应状态的缓存键
func GetUserReactionsCacheKey(userID, targetType, targetID string) string {
	return fmt.Sprintf("%s:%s:%s:%s", CacheKeyUserReactions, userID, targetType, targetID)
}

// GetStreakCacheKey 生成连续记录的缓存键
func GetStreakCacheKey(userID string) string {
	return fmt.Sprintf("%s:%s", CacheKeyStreak, userID)
}

// ReactionEvent 反应事件（用于消息队列）
type ReactionEvent struct {
	EventType  string    `json:"event_type"` // "create" or "delete"
	UserID     string    `json:"user_id"`
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id"`
	Type       string    `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
}

// StreakView 连续记录视图（用于API响应）
type StreakView struct {
	UserID           string           `json:"user_id"`
	CurrentStreak    int              `json:"current_streak"`
	LongestStreak    int              `json:"longest_streak"`
	LastReactionAt   *time.Time       `json:"last_reaction_at,omitempty"`
	TotalReactions   int64            `json:"total_reactions"`
	WeeklyReactions  int64            `json:"weekly_reactions"`
	MonthlyReactions int64            `json:"monthly_reactions"`
	ReactionsByType  map[string]int64 `json:"reactions_by_type"`
	Achievements     []string         `json:"achievements"`
	IsActive         bool             `json:"is_active"`
	NextMilestone    int              `json:"next_milestone"`
}

// AddReactionResult 添加反应的结果
type AddReactionResult struct {
	Reaction        *Reaction       `json:"reaction"`
	Streak          *ReactionStreak `json:"streak"`
	NewAchievements []string        `json:"new_achievements"`
}
