package service

import (
	"testing"
	"time"

	"mindcare-social/apps/reaction-service/model"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// TestApplyReactionFirstEvent 测试首次反应
func TestApplyReactionFirstEvent(t *testing.T) {
	streak := &model.ReactionStreak{UserID: "u1"}

	newKeys := applyReaction(streak, model.ReactionTypeLike, baseTime)

	if streak.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", streak.CurrentStreak)
	}
	if streak.LongestStreak != 1 {
		t.Errorf("LongestStreak = %d, want 1", streak.LongestStreak)
	}
	if streak.TotalReactions != 1 {
		t.Errorf("TotalReactions = %d, want 1", streak.TotalReactions)
	}
	if streak.WeeklyReactions != 1 || streak.MonthlyReactions != 1 {
		t.Errorf("window counts = %d/%d, want 1/1", streak.WeeklyReactions, streak.MonthlyReactions)
	}
	if streak.TypeCounts()[model.ReactionTypeLike] != 1 {
		t.Errorf("TypeCounts[like] = %d, want 1", streak.TypeCounts()[model.ReactionTypeLike])
	}
	if len(newKeys) != 1 || newKeys[0] != model.AchievementFirstReaction {
		t.Errorf("newKeys = %v, want [firstReaction]", newKeys)
	}
}

// TestApplyReactionSameDay 测试同一自然日内重复反应不增加天数
func TestApplyReactionSameDay(t *testing.T) {
	streak := &model.ReactionStreak{UserID: "u1"}
	applyReaction(streak, model.ReactionTypeLike, baseTime)
	applyReaction(streak, model.ReactionTypeHeart, baseTime.Add(5*time.Hour))

	if streak.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", streak.CurrentStreak)
	}
	if streak.TotalReactions != 2 {
		t.Errorf("TotalReactions = %d, want 2", streak.TotalReactions)
	}
}

// TestApplyReactionGraceWindow 测试次日宽限窗口内加一
func TestApplyReactionGraceWindow(t *testing.T) {
	streak := &model.ReactionStreak{UserID: "u1"}
	applyReaction(streak, model.ReactionTypeLike, baseTime)
	// 间隔30小时，跨自然日且小于48小时
	applyReaction(streak, model.ReactionTypeLike, baseTime.Add(30*time.Hour))

	if streak.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", streak.CurrentStreak)
	}
}

// TestApplyReactionStreakReset 测试超过宽限窗口重置
func TestApplyReactionStreakReset(t *testing.T) {
	streak := &model.ReactionStreak{UserID: "u1"}
	applyReaction(streak, model.ReactionTypeLike, baseTime)
	applyReaction(streak, model.ReactionTypeLike, baseTime.Add(30*time.Hour))
	// 间隔50小时，连续中断
	applyReaction(streak, model.ReactionTypeLike, baseTime.Add(80*time.Hour))

	if streak.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", streak.CurrentStreak)
	}
	if streak.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d, want 2", streak.LongestStreak)
	}
}

// TestApplyReactionClockSkew 测试时间回拨按同一天处理
func TestApplyReactionClockSkew(t *testing.T) {
	streak := &model.ReactionStreak{UserID: "u1"}
	applyReaction(streak, model.ReactionTypeLike, baseTime)
	applyReaction(streak, model.ReactionTypeLike, baseTime.Add(-2*time.Hour))

	if streak.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", streak.CurrentStreak)
	}
}

// TestApplyReactionThreeDayStreak 测试连续3天解锁streak3Days
func TestApplyReactionThreeDayStreak(t *testing.T) {
	streak := &model.ReactionStreak{UserID: "u1"}
	applyReaction(streak, model.ReactionTypeLike, baseTime)
	applyReaction(streak, model.ReactionTypeLike, baseTime.Add(24*time.Hour))
	newKeys := applyReaction(streak, model.ReactionTypeLike, baseTime.Add(48*time.Hour))

	if streak.CurrentStreak != 3 {
		t.Fatalf("CurrentStreak = %d, want 3", streak.CurrentStreak)
	}
	found := false
	for _, k := range newKeys {
		if k == model.AchievementStreak3Days {
			found = true
		}
	}
	if !found {
		t.Errorf("newKeys = %v, want to contain streak3Days", newKeys)
	}
}

// TestApplyReactionWeeklyWindowReset 测试周滚动窗口重置
func TestApplyReactionWeeklyWindowReset(t *testing.T) {
	streak := &model.ReactionStreak{UserID: "u1"}
	applyReaction(streak, model.ReactionTypeLike, baseTime)
	applyReaction(streak, model.ReactionTypeLike, baseTime.Add(24*time.Hour))

	if streak.WeeklyReactions != 2 {
		t.Fatalf("WeeklyReactions = %d, want 2", streak.WeeklyReactions)
	}

	// 超过7天窗口，周计数重置为1并重新锚定，月计数继续累积
	applyReaction(streak, model.ReactionTypeLike, baseTime.Add(8*24*time.Hour))

	if streak.WeeklyReactions != 1 {
		t.Errorf("WeeklyReactions = %d, want 1", streak.WeeklyReactions)
	}
	if streak.MonthlyReactions != 3 {
		t.Errorf("MonthlyReactions = %d, want 3", streak.MonthlyReactions)
	}
}

// TestApplyReactionCurrentNeverExceedsLongest 测试任意序列下current不超过longest
func TestApplyReactionCurrentNeverExceedsLongest(t *testing.T) {
	streak := &model.ReactionStreak{UserID: "u1"}
	gaps := []time.Duration{0, 26 * time.Hour, 30 * time.Hour, 72 * time.Hour, 24 * time.Hour, 5 * time.Hour, 49 * time.Hour}

	now := baseTime
	for _, gap := range gaps {
		now = now.Add(gap)
		applyReaction(streak, model.ReactionTypeLike, now)
		if streak.CurrentStreak > streak.LongestStreak {
			t.Fatalf("CurrentStreak %d > LongestStreak %d", streak.CurrentStreak, streak.LongestStreak)
		}
	}
}

// TestUnlockAchievementsMonotone 测试成就解锁后不回收
func TestUnlockAchievementsMonotone(t *testing.T) {
	streak := &model.ReactionStreak{UserID: "u1"}
	applyReaction(streak, model.ReactionTypeLike, baseTime)
	applyReaction(streak, model.ReactionTypeLike, baseTime.Add(24*time.Hour))
	applyReaction(streak, model.ReactionTypeLike, baseTime.Add(48*time.Hour))

	if !streak.AchievementSet()[model.AchievementStreak3Days] {
		t.Fatal("streak3Days not unlocked")
	}

	// 连续中断后成就保留，且不重复返回
	newKeys := applyReaction(streak, model.ReactionTypeLike, baseTime.Add(200*time.Hour))
	if !streak.AchievementSet()[model.AchievementStreak3Days] {
		t.Error("streak3Days lost after reset")
	}
	for _, k := range newKeys {
		if k == model.AchievementStreak3Days || k == model.AchievementFirstReaction {
			t.Errorf("achievement %s returned again", k)
		}
	}
}

// TestUnlockHelpfulMemberExactly100 测试helpful恰好达到100时解锁一次
func TestUnlockHelpfulMemberExactly100(t *testing.T) {
	streak := &model.ReactionStreak{UserID: "u1"}

	now := baseTime
	for i := 0; i < 99; i++ {
		applyReaction(streak, model.ReactionTypeHelpful, now)
	}
	if streak.AchievementSet()[model.AchievementHelpfulMember] {
		t.Fatal("helpfulMember unlocked before 100")
	}

	newKeys := applyReaction(streak, model.ReactionTypeHelpful, now)
	found := false
	for _, k := range newKeys {
		if k == model.AchievementHelpfulMember {
			found = true
		}
	}
	if !found {
		t.Errorf("newKeys = %v, want to contain helpfulMember", newKeys)
	}

	// 101次不再返回
	newKeys = applyReaction(streak, model.ReactionTypeHelpful, now)
	for _, k := range newKeys {
		if k == model.AchievementHelpfulMember {
			t.Error("helpfulMember returned twice")
		}
	}
}

// TestIsStreakActive 测试活跃窗口判断
func TestIsStreakActive(t *testing.T) {
	streak := &model.ReactionStreak{UserID: "u1"}
	if isStreakActive(streak, baseTime) {
		t.Error("empty streak should not be active")
	}

	streak.LastReactionAt = baseTime
	if !isStreakActive(streak, baseTime.Add(47*time.Hour)) {
		t.Error("streak within 48h should be active")
	}
	if isStreakActive(streak, baseTime.Add(48*time.Hour)) {
		t.Error("streak at 48h should not be active")
	}
}
