package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mindcare-social/apps/reaction-service/dao"
	"mindcare-social/apps/reaction-service/model"
	"mindcare-social/pkg/logger"
)

// newTestService 用内存DAO构造服务，缓存和消息队列留空
func newTestService() *Service {
	return NewService(dao.NewMemoryReactionDAO(), dao.NewMemoryStreakDAO(), nil, nil, logger.GetLogger())
}

// TestAddReactionDuplicate 测试重复反应被拒绝且计数不变
func TestAddReactionDuplicate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	result, err := svc.AddReaction(ctx, "u1", model.TargetTypePost, "p1", model.ReactionTypeLike)
	if err != nil {
		t.Fatalf("AddReaction: %v", err)
	}
	if result.Streak.TotalReactions != 1 {
		t.Fatalf("TotalReactions = %d, want 1", result.Streak.TotalReactions)
	}

	_, err = svc.AddReaction(ctx, "u1", model.TargetTypePost, "p1", model.ReactionTypeLike)
	if !errors.Is(err, model.ErrDuplicateReaction) {
		t.Fatalf("err = %v, want ErrDuplicateReaction", err)
	}

	// 重复请求不能推进连续记录
	view, err := svc.GetStreak(ctx, "u1")
	if err != nil {
		t.Fatalf("GetStreak: %v", err)
	}
	if view.TotalReactions != 1 {
		t.Errorf("TotalReactions = %d, want 1", view.TotalReactions)
	}

	counts, err := svc.GetReactionCounts(ctx, model.TargetTypePost, "p1")
	if err != nil {
		t.Fatalf("GetReactionCounts: %v", err)
	}
	if counts[model.ReactionTypeLike] != 1 {
		t.Errorf("counts[like] = %d, want 1", counts[model.ReactionTypeLike])
	}
}

// TestAddReactionDistinctTypes 测试同一目标的不同类型各计一次
func TestAddReactionDistinctTypes(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.AddReaction(ctx, "u1", model.TargetTypePost, "p1", model.ReactionTypeLike); err != nil {
		t.Fatalf("AddReaction like: %v", err)
	}
	if _, err := svc.AddReaction(ctx, "u1", model.TargetTypePost, "p1", model.ReactionTypeHeart); err != nil {
		t.Fatalf("AddReaction heart: %v", err)
	}

	view, err := svc.GetStreak(ctx, "u1")
	if err != nil {
		t.Fatalf("GetStreak: %v", err)
	}
	if view.TotalReactions != 2 {
		t.Errorf("TotalReactions = %d, want 2", view.TotalReactions)
	}
	if view.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", view.CurrentStreak)
	}

	types, err := svc.GetUserReactions(ctx, "u1", model.TargetTypePost, "p1")
	if err != nil {
		t.Fatalf("GetUserReactions: %v", err)
	}
	if len(types) != 2 {
		t.Errorf("user reaction types = %v, want 2 entries", types)
	}
}

// TestAddReactionValidation 测试类型校验
func TestAddReactionValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.AddReaction(ctx, "u1", "unknown", "p1", model.ReactionTypeLike); !errors.Is(err, model.ErrInvalidTargetType) {
		t.Errorf("err = %v, want ErrInvalidTargetType", err)
	}
	if _, err := svc.AddReaction(ctx, "u1", model.TargetTypePost, "p1", "wave"); !errors.Is(err, model.ErrInvalidReactionType) {
		t.Errorf("err = %v, want ErrInvalidReactionType", err)
	}
}

// TestRemoveReactionKeepsStreak 测试删除反应不回滚连续记录
func TestRemoveReactionKeepsStreak(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.AddReaction(ctx, "u1", model.TargetTypePost, "p1", model.ReactionTypeLike); err != nil {
		t.Fatalf("AddReaction: %v", err)
	}
	if err := svc.RemoveReaction(ctx, "u1", model.TargetTypePost, "p1", model.ReactionTypeLike); err != nil {
		t.Fatalf("RemoveReaction: %v", err)
	}

	// 事实已删除
	counts, _ := svc.GetReactionCounts(ctx, model.TargetTypePost, "p1")
	if counts[model.ReactionTypeLike] != 0 {
		t.Errorf("counts[like] = %d, want 0", counts[model.ReactionTypeLike])
	}

	// 连续记录保持不变
	view, err := svc.GetStreak(ctx, "u1")
	if err != nil {
		t.Fatalf("GetStreak: %v", err)
	}
	if view.TotalReactions != 1 || view.CurrentStreak != 1 {
		t.Errorf("streak = %d/%d, want 1/1", view.CurrentStreak, view.TotalReactions)
	}
}

// TestRemoveReactionNotFound 测试删除不存在的反应
func TestRemoveReactionNotFound(t *testing.T) {
	svc := newTestService()

	err := svc.RemoveReaction(context.Background(), "u1", model.TargetTypePost, "p1", model.ReactionTypeLike)
	if !errors.Is(err, model.ErrReactionNotFound) {
		t.Errorf("err = %v, want ErrReactionNotFound", err)
	}
}

// TestGetStreakZeroValue 测试无记录用户返回零值视图且不创建行
func TestGetStreakZeroValue(t *testing.T) {
	streakDAO := dao.NewMemoryStreakDAO()
	svc := NewService(dao.NewMemoryReactionDAO(), streakDAO, nil, nil, logger.GetLogger())
	ctx := context.Background()

	view, err := svc.GetStreak(ctx, "nobody")
	if err != nil {
		t.Fatalf("GetStreak: %v", err)
	}
	if view.CurrentStreak != 0 || view.TotalReactions != 0 {
		t.Errorf("zero view = %+v", view)
	}
	if view.IsActive {
		t.Error("zero streak should not be active")
	}
	if view.NextMilestone != 3 {
		t.Errorf("NextMilestone = %d, want 3", view.NextMilestone)
	}
	if view.LastReactionAt != nil {
		t.Error("LastReactionAt should be nil")
	}

	// 读取不能产生行
	if _, err := streakDAO.GetStreak(ctx, "nobody"); !errors.Is(err, model.ErrStreakNotFound) {
		t.Errorf("GetStreak created a row: %v", err)
	}
}

// TestGetStreakView 测试写入后的视图字段
func TestGetStreakView(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.AddReaction(ctx, "u1", model.TargetTypeJournal, "j1", model.ReactionTypeSupport); err != nil {
		t.Fatalf("AddReaction: %v", err)
	}

	view, err := svc.GetStreak(ctx, "u1")
	if err != nil {
		t.Fatalf("GetStreak: %v", err)
	}
	if !view.IsActive {
		t.Error("streak just written should be active")
	}
	if view.NextMilestone != 3 {
		t.Errorf("NextMilestone = %d, want 3", view.NextMilestone)
	}
	if view.ReactionsByType[model.ReactionTypeSupport] != 1 {
		t.Errorf("ReactionsByType = %v", view.ReactionsByType)
	}
	if len(view.Achievements) != 1 || view.Achievements[0] != model.AchievementFirstReaction {
		t.Errorf("Achievements = %v, want [firstReaction]", view.Achievements)
	}
}

// TestIsStreakActiveExpiry 测试活跃状态过期
func TestIsStreakActiveExpiry(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	if _, err := svc.AddReaction(ctx, "u1", model.TargetTypePost, "p1", model.ReactionTypeLike); err != nil {
		t.Fatalf("AddReaction: %v", err)
	}

	active, err := svc.IsStreakActive(ctx, "u1")
	if err != nil || !active {
		t.Errorf("active = %v, err = %v, want true", active, err)
	}

	svc.now = func() time.Time { return start.Add(60 * time.Hour) }
	active, err = svc.IsStreakActive(ctx, "u1")
	if err != nil || active {
		t.Errorf("active = %v, err = %v, want false", active, err)
	}
}
