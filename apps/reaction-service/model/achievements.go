package model

// 成就key
const (
	AchievementFirstReaction         = "firstReaction"
	AchievementStreak3Days           = "streak3Days"
	AchievementStreak7Days           = "streak7Days"
	AchievementStreak30Days          = "streak30Days"
	AchievementStreak100Days         = "streak100Days"
	AchievementSocialButterflyWeekly = "socialButterflyWeekly"
	AchievementHelpfulMember         = "helpfulMember"
	AchievementSupportiveUser        = "supportiveUser"
)

// AchievementRule 成就规则，谓词作用于更新后的连续记录
type AchievementRule struct {
	Key       string
	Title     string
	Predicate func(s *ReactionStreak) bool
}

// AchievementRules 成就规则表，按解锁评估顺序排列
var AchievementRules = []AchievementRule{
	{
		Key:   AchievementFirstReaction,
		Title: "初次反应",
		Predicate: func(s *ReactionStreak) bool {
			return s.TotalReactions >= 1
		},
	},
	{
		Key:   AchievementStreak3Days,
		Title: "连续3天",
		Predicate: func(s *ReactionStreak) bool {
			return s.CurrentStreak >= 3
		},
	},
	{
		Key:   AchievementStreak7Days,
		Title: "连续7天",
		Predicate: func(s *ReactionStreak) bool {
			return s.CurrentStreak >= 7
		},
	},
	{
		Key:   AchievementStreak30Days,
		Title: "连续30天",
		Predicate: func(s *ReactionStreak) bool {
			return s.CurrentStreak >= 30
		},
	},
	{
		Key:   AchievementStreak100Days,
		Title: "连续100天",
		Predicate: func(s *ReactionStreak) bool {
			return s.CurrentStreak >= 100
		},
	},
	{
		Key:   AchievementSocialButterflyWeekly,
		Title: "社交达人",
		Predicate: func(s *ReactionStreak) bool {
			return s.WeeklyReactions >= 50
		},
	},
	{
		Key:   AchievementHelpfulMember,
		Title: "乐于助人",
		Predicate: func(s *ReactionStreak) bool {
			return s.TypeCounts()[ReactionTypeHelpful] >= 100
		},
	},
	{
		Key:   AchievementSupportiveUser,
		Title: "温暖支持者",
		Predicate: func(s *ReactionStreak) bool {
			return s.TypeCounts()[ReactionTypeSupport] >= 100
		},
	},
}

// 连续天数里程碑
var streakMilestones = []int{3, 7, 30, 100}

// NextMilestone 返回当前连续天数之后的下一个里程碑
func NextMilestone(currentStreak int) int {
	for _, m := range streakMilestones {
		if m > currentStreak {
			return m
		}
	}
	return currentStreak + 50
}
