package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mindcare-social/apps/mood-service/dao"
	"mindcare-social/apps/mood-service/model"
	"mindcare-social/pkg/kafka"
	"mindcare-social/pkg/logger"
	"mindcare-social/pkg/utils"
)

// Service 心情服务
type Service struct {
	dao    dao.MoodDAO
	kafka  *kafka.Producer
	logger logger.Logger
	now    func() time.Time
}

// NewService 创建心情服务实例
func NewService(moodDAO dao.MoodDAO, kafkaProducer *kafka.Producer, log logger.Logger) *Service {
	return &Service{
		dao:    moodDAO,
		kafka:  kafkaProducer,
		logger: log,
		now:    time.Now,
	}
}

// RecordMood 记录当日心情，同一自然日重复记录覆盖
func (s *Service) RecordMood(ctx context.Context, userID string, entry *model.MoodEntry) (*model.MoodEntry, error) {
	if userID == "" {
		return nil, fmt.Errorf("参数无效")
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	entry.ID = uuid.New().String()
	entry.UserID = userID
	entry.Date = utils.StartOfDay(now)
	entry.CreatedAt = now
	entry.UpdatedAt = now

	if err := s.dao.UpsertEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("保存心情记录失败: %w", err)
	}

	s.publishMoodEvent(ctx, entry)

	return entry, nil
}

// GetMoodSummary 返回最近的心情记录和连续打卡天数
func (s *Service) GetMoodSummary(ctx context.Context, userID string, limit int) (*model.MoodSummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("参数无效")
	}
	if limit <= 0 {
		limit = model.DefaultEntryLimit
	}
	if limit > model.MaxEntryLimit {
		limit = model.MaxEntryLimit
	}

	entries, err := s.dao.GetRecentEntries(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("查询心情记录失败: %w", err)
	}

	streak, err := s.GetMoodStreak(ctx, userID)
	if err != nil {
		return nil, err
	}

	if entries == nil {
		entries = make([]*model.MoodEntry, 0)
	}
	return &model.MoodSummary{
		Entries: entries,
		Streak:  streak,
	}, nil
}

// GetMoodStreak 计算从今天往回连续记录心情的天数
func (s *Service) GetMoodStreak(ctx context.Context, userID string) (int, error) {
	entries, err := s.dao.GetRecentEntries(ctx, userID, model.MaxEntryLimit)
	if err != nil {
		return 0, fmt.Errorf("查询心情记录失败: %w", err)
	}

	days := make(map[time.Time]bool, len(entries))
	for _, e := range entries {
		days[utils.StartOfDay(e.Date)] = true
	}

	streak := 0
	check := utils.StartOfDay(s.now())
	for days[check] {
		streak++
		check = check.AddDate(0, 0, -1)
	}
	return streak, nil
}

// publishMoodEvent 发布心情事件到消息队列
func (s *Service) publishMoodEvent(ctx context.Context, entry *model.MoodEntry) {
	if s.kafka == nil {
		return
	}

	event := &model.MoodEvent{
		EventType: "record",
		UserID:    entry.UserID,
		MoodValue: entry.MoodValue,
		Date:      entry.Date,
		Timestamp: s.now(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		s.logger.Error(ctx, "Failed to marshal mood event",
			logger.F("error", err.Error()),
			logger.F("event", event))
		return
	}

	// 异步发送事件
	go func() {
		key := fmt.Sprintf("%s:%s", event.UserID, event.Date.Format("2006-01-02"))
		if err := s.kafka.SendMessage(model.TopicMoodEvents, []byte(key), eventData); err != nil {
			s.logger.Error(context.Background(), "Failed to send mood event",
				logger.F("error", err.Error()),
				logger.F("topic", model.TopicMoodEvents),
				logger.F("key", key))
		}
	}()
}
