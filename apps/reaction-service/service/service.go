package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mindcare-social/apps/reaction-service/dao"
	"mindcare-social/apps/reaction-service/model"
	"mindcare-social/pkg/kafka"
	"mindcare-social/pkg/logger"
	"mindcare-social/pkg/redis"
)

// Service 反应服务
type Service struct {
	reactionDAO dao.ReactionDAO
	streakDAO   dao.StreakDAO
	redis       *redis.RedisClient
	kafka       *kafka.Producer
	logger      logger.Logger
	now         func() time.Time
}

// NewService 创建反应服务实例
func NewService(reactionDAO dao.ReactionDAO, streakDAO dao.StreakDAO, redisClient *redis.RedisClient, kafkaProducer *kafka.Producer, log logger.Logger) *Service {
	return &Service{
		reactionDAO: reactionDAO,
		streakDAO:   streakDAO,
		redis:       redisClient,
		kafka:       kafkaProducer,
		logger:      log,
		now:         time.Now,
	}
}

// AddReaction 添加反应并同步推进连续记录
func (s *Service) AddReaction(ctx context.Context, userID, targetType, targetID, reactionType string) (*model.AddReactionResult, error) {
	if userID == "" || targetID == "" {
		return nil, fmt.Errorf("参数无效")
	}
	if !model.ValidateTargetType(targetType) {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidTargetType, targetType)
	}
	if !model.ValidateReactionType(reactionType) {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidReactionType, reactionType)
	}

	now := s.now()
	reaction := &model.Reaction{
		ID:         uuid.New().String(),
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
		Type:       reactionType,
		CreatedAt:  now,
	}

	// 四元组去重由存储层唯一索引保证
	if err := s.reactionDAO.CreateReaction(ctx, reaction); err != nil {
		if errors.Is(err, model.ErrDuplicateReaction) {
			return nil, err
		}
		return nil, fmt.Errorf("创建反应失败: %w", err)
	}

	// 推进连续记录，乐观锁冲突时有限重试
	streak, newAchievements, err := s.advanceStreak(ctx, userID, reactionType, now)
	if err != nil {
		return nil, err
	}

	s.clearReactionCache(ctx, userID, targetType, targetID)
	s.publishReactionEvent(ctx, model.EventTypeCreate, reaction)

	return &model.AddReactionResult{
		Reaction:        reaction,
		Streak:          streak,
		NewAchievements: newAchievements,
	}, nil
}

// advanceStreak 读取-迁移-写回连续记录，版本冲突时重试
func (s *Service) advanceStreak(ctx context.Context, userID, reactionType string, now time.Time) (*model.ReactionStreak, []string, error) {
	var lastErr error
	for attempt := 0; attempt < model.MaxSaveRetries; attempt++ {
		streak, err := s.streakDAO.GetOrCreateStreak(ctx, userID)
		if err != nil {
			return nil, nil, fmt.Errorf("读取连续记录失败: %w", err)
		}

		newAchievements := applyReaction(streak, reactionType, now)

		if err := s.streakDAO.SaveStreak(ctx, streak); err != nil {
			if errors.Is(err, model.ErrConcurrencyConflict) {
				lastErr = err
				continue
			}
			return nil, nil, fmt.Errorf("保存连续记录失败: %w", err)
		}
		return streak, newAchievements, nil
	}

	s.logger.Warn(ctx, "Streak update exhausted retries",
		logger.F("userID", userID),
		logger.F("retries", model.MaxSaveRetries))
	return nil, nil, lastErr
}

// RemoveReaction 删除反应记录
// 只删除事实，不回滚连续记录和计数
func (s *Service) RemoveReaction(ctx context.Context, userID, targetType, targetID, reactionType string) error {
	if userID == "" || targetID == "" {
		return fmt.Errorf("参数无效")
	}
	if !model.ValidateTargetType(targetType) {
		return fmt.Errorf("%w: %s", model.ErrInvalidTargetType, targetType)
	}
	if !model.ValidateReactionType(reactionType) {
		return fmt.Errorf("%w: %s", model.ErrInvalidReactionType, reactionType)
	}

	if err := s.reactionDAO.DeleteReaction(ctx, userID, targetType, targetID, reactionType); err != nil {
		return err
	}

	s.clearReactionCache(ctx, userID, targetType, targetID)
	s.publishReactionEvent(ctx, model.EventTypeDelete, &model.Reaction{
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
		Type:       reactionType,
	})

	return nil
}

// GetReactionCounts 按类型统计目标的反应数量
func (s *Service) GetReactionCounts(ctx context.Context, targetType, targetID string) (map[string]int64, error) {
	if !model.ValidateTargetType(targetType) {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidTargetType, targetType)
	}

	// 先尝试从缓存获取
	cacheKey := model.GetCountsCacheKey(targetType, targetID)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey); err == nil && cached != "" {
			var counts map[string]int64
			if err := json.Unmarshal([]byte(cached), &counts); err == nil {
				return counts, nil
			}
		}
	}

	counts, err := s.reactionDAO.GetReactionCounts(ctx, targetType, targetID)
	if err != nil {
		return nil, fmt.Errorf("查询反应计数失败: %w", err)
	}

	// 缓存结果
	if s.redis != nil {
		if data, err := json.Marshal(counts); err == nil {
			s.redis.Set(ctx, cacheKey, string(data), time.Duration(model.CacheExpireCounts)*time.Second)
		}
	}

	return counts, nil
}

// GetUserReactions 查询用户对目标已应用的反应类型
func (s *Service) GetUserReactions(ctx context.Context, userID, targetType, targetID string) ([]string, error) {
	if userID == "" {
		return nil, fmt.Errorf("参数无效")
	}
	if !model.ValidateTargetType(targetType) {
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidTargetType, targetType)
	}

	// 先尝试从缓存获取
	cacheKey := model.GetUserReactionsCacheKey(userID, targetType, targetID)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey); err == nil && cached != "" {
			var types []string
			if err := json.Unmarshal([]byte(cached), &types); err == nil {
				return types, nil
			}
		}
	}

	types, err := s.reactionDAO.GetUserReactions(ctx, userID, targetType, targetID)
	if err != nil {
		return nil, fmt.Errorf("查询用户反应失败: %w", err)
	}

	// 缓存结果
	if s.redis != nil {
		if data, err := json.Marshal(types); err == nil {
			s.redis.Set(ctx, cacheKey, string(data), time.Duration(model.CacheExpireUser)*time.Second)
		}
	}

	return types, nil
}

// GetStreak 查询用户连续记录视图
// 纯读取，从不创建行；无记录时返回零值视图
func (s *Service) GetStreak(ctx context.Context, userID string) (*model.StreakView, error) {
	if userID == "" {
		return nil, fmt.Errorf("参数无效")
	}

	streak, err := s.streakDAO.GetStreak(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrStreakNotFound) {
			streak = &model.ReactionStreak{UserID: userID}
		} else {
			return nil, fmt.Errorf("查询连续记录失败: %w", err)
		}
	}

	return s.buildStreakView(streak), nil
}

// IsStreakActive 判断用户连续记录是否仍在活跃窗口内
func (s *Service) IsStreakActive(ctx context.Context, userID string) (bool, error) {
	streak, err := s.streakDAO.GetStreak(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrStreakNotFound) {
			return false, nil
		}
		return false, err
	}
	return isStreakActive(streak, s.now()), nil
}

// ListAchievements 返回成就规则表的key和标题
func (s *Service) ListAchievements() []map[string]string {
	rules := make([]map[string]string, 0, len(model.AchievementRules))
	for _, rule := range model.AchievementRules {
		rules = append(rules, map[string]string{
			"key":   rule.Key,
			"title": rule.Title,
		})
	}
	return rules
}

// buildStreakView 组装连续记录视图
func (s *Service) buildStreakView(streak *model.ReactionStreak) *model.StreakView {
	view := &model.StreakView{
		UserID:           streak.UserID,
		CurrentStreak:    streak.CurrentStreak,
		LongestStreak:    streak.LongestStreak,
		TotalReactions:   streak.TotalReactions,
		WeeklyReactions:  streak.WeeklyReactions,
		MonthlyReactions: streak.MonthlyReactions,
		ReactionsByType:  streak.TypeCounts(),
		Achievements:     make([]string, 0),
		IsActive:         isStreakActive(streak, s.now()),
		NextMilestone:    model.NextMilestone(streak.CurrentStreak),
	}

	if !streak.LastReactionAt.IsZero() {
		last := streak.LastReactionAt
		view.LastReactionAt = &last
	}

	unlocked := streak.AchievementSet()
	for _, rule := range model.AchievementRules {
		if unlocked[rule.Key] {
			view.Achievements = append(view.Achievements, rule.Key)
		}
	}

	return view
}

// clearReactionCache 清除反应相关缓存
func (s *Service) clearReactionCache(ctx context.Context, userID, targetType, targetID string) {
	if s.redis == nil {
		return
	}

	s.redis.Del(ctx, model.GetCountsCacheKey(targetType, targetID))
	s.redis.Del(ctx, model.GetUserReactionsCacheKey(userID, targetType, targetID))
	s.redis.Del(ctx, model.GetStreakCacheKey(userID))
}

// publishReactionEvent 发布反应事件到消息队列
func (s *Service) publishReactionEvent(ctx context.Context, eventType string, reaction *model.Reaction) {
	if s.kafka == nil {
		return
	}

	event := &model.ReactionEvent{
		EventType:  eventType,
		UserID:     reaction.UserID,
		TargetType: reaction.TargetType,
		TargetID:   reaction.TargetID,
		Type:       reaction.Type,
		Timestamp:  s.now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		s.logger.Error(ctx, "Failed to marshal reaction event",
			logger.F("error", err.Error()),
			logger.F("event", event))
		return
	}

	// 异步发送事件
	go func() {
		key := model.GetReactionKey(event.UserID, event.TargetType, event.TargetID, event.Type)
		if err := s.kafka.SendMessage(model.TopicReactionEvents, []byte(key), eventData); err != nil {
			s.logger.Error(context.Background(), "Failed to send reaction event",
				logger.F("error", err.Error()),
				logger.F("topic", model.TopicReactionEvents),
				logger.F("key", key))
		}
	}()
}
