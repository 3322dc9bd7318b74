package service

import (
	"time"

	"mindcare-social/apps/reaction-service/model"
	"mindcare-social/pkg/utils"
)

// applyReaction 把一次反应事件应用到连续记录上，返回本次新解锁的成就key
// 纯状态迁移，不触碰存储
func applyReaction(streak *model.ReactionStreak, reactionType string, now time.Time) []string {
	last := streak.LastReactionAt

	switch {
	case streak.TotalReactions == 0 || last.IsZero():
		// 首次反应
		streak.CurrentStreak = 1
	case now.Before(last):
		// 时钟回拨按同一天处理，连续天数不变
	case utils.SameDay(last, now):
		// 同一自然日内的重复反应不增加天数
	case now.Sub(last) < model.GraceWindow:
		// 新的一天且仍在宽限窗口内
		streak.CurrentStreak++
	default:
		// 超过宽限窗口，连续中断
		streak.CurrentStreak = 1
	}

	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}

	streak.LastReactionAt = now
	streak.TotalReactions++

	// 滚动窗口计数，各自独立锚点
	if streak.WeeklyAnchor.IsZero() || now.Sub(streak.WeeklyAnchor) > model.WeeklyWindow {
		streak.WeeklyReactions = 1
		streak.WeeklyAnchor = now
	} else {
		streak.WeeklyReactions++
	}
	if streak.MonthlyAnchor.IsZero() || now.Sub(streak.MonthlyAnchor) > model.MonthlyWindow {
		streak.MonthlyReactions = 1
		streak.MonthlyAnchor = now
	} else {
		streak.MonthlyReactions++
	}

	counts := streak.TypeCounts()
	counts[reactionType]++
	streak.SetTypeCounts(counts)

	return unlockAchievements(streak)
}

// unlockAchievements 评估成就规则表，返回本次新解锁的成就key
// 已解锁的成就永不回收
func unlockAchievements(streak *model.ReactionStreak) []string {
	unlocked := streak.AchievementSet()
	newKeys := make([]string, 0)

	for _, rule := range model.AchievementRules {
		if unlocked[rule.Key] {
			continue
		}
		if rule.Predicate(streak) {
			unlocked[rule.Key] = true
			newKeys = append(newKeys, rule.Key)
		}
	}

	if len(newKeys) > 0 {
		streak.SetAchievementSet(unlocked)
	}
	return newKeys
}

// isStreakActive 判断连续记录是否仍在活跃窗口内
func isStreakActive(streak *model.ReactionStreak, now time.Time) bool {
	if streak.LastReactionAt.IsZero() {
		return false
	}
	return now.Sub(streak.LastReactionAt) < model.GraceWindow
}
